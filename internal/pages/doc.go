// Package pages renders the storefront's routes.
//
// Every page is a router.Page: it may fetch from the store API, reads and
// writes the shared state.Store, and always returns a View, turning
// collaborator failures into an inline error state with a retry hint.
// Register installs the route table on a router.
//
// Pages with input (sign-in, register, contact, checkout) describe their
// fields and submit actions through Forms; the UI draws the inputs.
package pages
