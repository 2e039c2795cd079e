// Package session keeps per-session state in memory and issues the signed
// tokens that identify a session.
package session

import (
	"sync"
	"time"
)

type entry[T any] struct {
	mu      sync.Mutex
	value   T
	touched time.Time
	closed  bool
}

// Store maps session IDs to values created on first use. Callbacks for the
// same session run one at a time; different sessions do not block each
// other.
type Store[T any] struct {
	mu       sync.RWMutex
	entries  map[string]*entry[T]
	newValue func() T
	ttl      time.Duration
	now      func() time.Time
}

// NewStore returns a store whose idle entries become eligible for Sweep
// after ttl. A ttl of zero disables expiry.
func NewStore[T any](newValue func() T, ttl time.Duration) *Store[T] {
	return &Store[T]{
		entries:  make(map[string]*entry[T]),
		newValue: newValue,
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *Store[T]) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Store[T]) lookup(id string) *entry[T] {
	s.mu.RLock()
	e := s.entries[id]
	s.mu.RUnlock()
	return e
}

func (s *Store[T]) lookupOrCreate(id string) *entry[T] {
	if e := s.lookup(id); e != nil {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[id]; ok {
		return e
	}
	e := &entry[T]{value: s.newValue(), touched: s.now()}
	s.entries[id] = e
	return e
}

// lockLive returns the session's entry locked, creating it if needed. An
// entry closed by Finish or Sweep while we waited is replaced.
func (s *Store[T]) lockLive(id string) *entry[T] {
	for {
		e := s.lookupOrCreate(id)
		e.mu.Lock()
		if !e.closed {
			return e
		}
		e.mu.Unlock()
		s.remove(id, e)
	}
}

func (s *Store[T]) remove(id string, e *entry[T]) {
	s.mu.Lock()
	if s.entries[id] == e {
		delete(s.entries, id)
	}
	s.mu.Unlock()
}

// Update runs fn against the session's value, creating it first if the
// session is new.
func (s *Store[T]) Update(id string, fn func(T) error) error {
	e := s.lockLive(id)
	defer e.mu.Unlock()

	e.touched = s.now()
	return fn(e.value)
}

// View runs fn against the session's value. An unknown session is shown a
// fresh value that is not stored.
func (s *Store[T]) View(id string, fn func(T)) {
	e := s.lookup(id)
	if e == nil {
		fn(s.newValue())
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		fn(s.newValue())
		return
	}
	fn(e.value)
}

// Finish runs fn and discards the session if fn returns nil. On error the
// session is kept as it was.
func (s *Store[T]) Finish(id string, fn func(T) error) error {
	e := s.lockLive(id)

	if err := fn(e.value); err != nil {
		e.touched = s.now()
		e.mu.Unlock()
		return err
	}
	e.closed = true
	e.mu.Unlock()

	s.remove(id, e)
	return nil
}

// Sweep drops sessions idle for longer than the ttl and returns how many
// were removed.
func (s *Store[T]) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}

	s.mu.RLock()
	candidates := make(map[string]*entry[T], len(s.entries))
	for id, e := range s.entries {
		candidates[id] = e
	}
	s.mu.RUnlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, e := range candidates {
		e.mu.Lock()
		expired := !e.closed && e.touched.Before(cutoff)
		if expired {
			e.closed = true
		}
		e.mu.Unlock()

		if expired {
			s.remove(id, e)
			removed++
		}
	}
	return removed
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
