// Package session tracks the authenticated identity and the user's
// currency preference, and notifies subscribers when either changes.
package session

import (
	"sync"

	"github.com/google/uuid"
)

const defaultCurrencySymbol = "€"

// User is the authenticated identity. Nil means signed out.
type User struct {
	ID    uuid.UUID
	Email string
}

// State is a snapshot of the session handed to subscribers.
type State struct {
	User           *User
	CurrencySymbol string
}

type Session struct {
	mu        sync.Mutex
	user      *User
	currency  string
	nextID    int
	listeners map[int]func(State)
}

func New() *Session {
	return &Session{
		currency:  defaultCurrencySymbol,
		listeners: make(map[int]func(State)),
	}
}

// Current returns a snapshot of the session state.
func (s *Session) Current() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot()
}

// SetUser records a sign-in (or sign-out with nil) and notifies subscribers.
func (s *Session) SetUser(u *User) {
	s.mu.Lock()
	s.user = u
	state, listeners := s.snapshot(), s.listenerList()
	s.mu.Unlock()

	notify(listeners, state)
}

// SetCurrencySymbol updates the display currency and notifies subscribers.
// An empty symbol resets to the default.
func (s *Session) SetCurrencySymbol(symbol string) {
	if symbol == "" {
		symbol = defaultCurrencySymbol
	}

	s.mu.Lock()
	s.currency = symbol
	state, listeners := s.snapshot(), s.listenerList()
	s.mu.Unlock()

	notify(listeners, state)
}

// Subscribe registers a listener for state changes and returns its
// unsubscribe function. Unsubscribing is idempotent and safe to call
// during teardown.
func (s *Session) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// snapshot and listenerList must be called with the lock held.
func (s *Session) snapshot() State {
	state := State{CurrencySymbol: s.currency}

	if s.user != nil {
		u := *s.user
		state.User = &u
	}

	return state
}

func (s *Session) listenerList() []func(State) {
	listeners := make([]func(State), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}

	return listeners
}

// notify runs outside the lock so listeners can call back into the session.
func notify(listeners []func(State), state State) {
	for _, fn := range listeners {
		fn(state)
	}
}
