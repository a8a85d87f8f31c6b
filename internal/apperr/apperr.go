// Package apperr classifies the failures shopfront surfaces to the user.
//
// Every error that crosses the collaborator boundary or comes out of form
// validation is an *Error carrying a Kind. Callers branch on the kind with
// KindOf instead of matching error strings.
package apperr

import (
	"errors"
	"fmt"
)

// Kind tags the category of an Error.
type Kind int

const (
	// KindUnknown is reported for errors that were never classified.
	KindUnknown Kind = iota
	// KindValidation marks bad user input.
	KindValidation
	// KindNotFound marks an unknown route or missing resource.
	KindNotFound
	// KindNetwork marks a collaborator that could not be reached.
	KindNetwork
	// KindAPI marks a collaborator that answered with a non-success status.
	KindAPI
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not found"
	case KindNetwork:
		return "network"
	case KindAPI:
		return "api"
	default:
		return "unknown"
	}
}

// Error is a classified failure. Status is only set for KindAPI and
// KindNotFound errors that came from an HTTP response.
type Error struct {
	Kind    Kind
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Status > 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports bad user input.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NotFound reports a missing route or resource.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Network wraps a transport failure.
func Network(message string, err error) *Error {
	return &Error{Kind: KindNetwork, Message: message, Err: err}
}

// API reports a non-success response from the collaborator.
func API(message string, status int) *Error {
	return &Error{Kind: KindAPI, Message: message, Status: status}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// StatusOf returns the HTTP status carried by err, or zero.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Describe turns err into a short sentence suitable for an inline error state.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if !errors.As(err, &e) {
		return "Something went wrong. Please try again."
	}
	switch e.Kind {
	case KindValidation:
		return e.Message
	case KindNotFound:
		return "We couldn't find what you were looking for."
	case KindNetwork:
		return "The store is unreachable right now. Check your connection."
	case KindAPI:
		return fmt.Sprintf("The store returned an error (status %d).", e.Status)
	default:
		return e.Message
	}
}
