package router

// Entry is the state carried by one history slot.
type Entry struct {
	Path string
}

// History is the session history the router drives. Implementations are not
// required to be safe for concurrent use; the router serializes access.
type History interface {
	Push(Entry)
	Replace(Entry)
	Back() (Entry, bool)
	Forward() (Entry, bool)
	Location() string
	Len() int
}

// Stack is an in-memory History with browser semantics: pushing after going
// back discards the forward entries.
type Stack struct {
	entries []Entry
	index   int
}

// NewStack returns an empty history.
func NewStack() *Stack {
	return &Stack{index: -1}
}

// Push appends e after the current entry.
func (s *Stack) Push(e Entry) {
	s.entries = append(s.entries[:s.index+1], e)
	s.index = len(s.entries) - 1
}

// Replace overwrites the current entry, or pushes when history is empty.
func (s *Stack) Replace(e Entry) {
	if s.index < 0 {
		s.Push(e)
		return
	}
	s.entries[s.index] = e
}

// Back moves to the previous entry.
func (s *Stack) Back() (Entry, bool) {
	if s.index <= 0 {
		return Entry{}, false
	}
	s.index--
	return s.entries[s.index], true
}

// Forward moves to the next entry.
func (s *Stack) Forward() (Entry, bool) {
	if s.index+1 >= len(s.entries) {
		return Entry{}, false
	}
	s.index++
	return s.entries[s.index], true
}

// Location returns the current entry's path.
func (s *Stack) Location() string {
	if s.index < 0 {
		return ""
	}
	return s.entries[s.index].Path
}

// Len returns the number of entries, including forward ones.
func (s *Stack) Len() int {
	return len(s.entries)
}
