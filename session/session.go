// Package session keeps per-user conversation state. Sessions live in
// memory only and do not survive a restart.
package session

import "sync"

// Step is the position in the reminder-creation dialogue.
type Step int

const (
	StepIdle Step = iota
	StepTitle
	StepText
	StepDate
)

// Draft is a reminder being collected across the dialogue. It is a value:
// each transition produces an updated copy, and the draft only leaves the
// session when it is committed to storage.
type Draft struct {
	Owner int64
	Title string
	Text  string
}

// WithTitle returns a copy of the draft with the title set.
func (d Draft) WithTitle(title string) Draft {
	d.Title = title
	return d
}

// WithText returns a copy of the draft with the body text set.
func (d Draft) WithText(text string) Draft {
	d.Text = text
	return d
}

// Session is one user's conversation state. The draft is meaningful only
// while Step is not StepIdle; the zero value is the idle session.
type Session struct {
	Step  Step
	Draft Draft
}

// Store holds sessions keyed by user ID and is safe for concurrent use.
// Each operation is individually atomic; in-order processing of one user's
// messages is enforced by the dispatch loop upstream.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[int64]Session)}
}

// Get returns the user's session, lazily treating an absent entry as the
// idle session.
func (s *Store) Get(usr int64) Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sessions[usr]
}

// Put replaces the user's session.
func (s *Store) Put(usr int64, sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[usr] = sess
}

// Clear resets the user's session to idle, discarding any draft.
func (s *Store) Clear(usr int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, usr)
}
