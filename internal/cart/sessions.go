package cart

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("cart session not found")
)

type session struct {
	mu      sync.Mutex
	ledger  Ledger
	touched time.Time
}

// Sessions is the process-local registry of open carts. Carts are never
// persisted and vanish on restart or after sitting idle.
type Sessions struct {
	mu   sync.RWMutex
	byID map[string]*session
	now  func() time.Time
}

func NewSessions() *Sessions {
	return &Sessions{byID: map[string]*session{}, now: time.Now}
}

// Open starts an empty cart and returns its session id.
func (s *Sessions) Open() string {
	id := uuid.NewString()
	s.mu.Lock()
	s.byID[id] = &session{touched: s.now()}
	s.mu.Unlock()
	return id
}

// With runs fn on the session's ledger while holding the session lock.
// Errors from fn are returned as is.
func (s *Sessions) With(id string, fn func(l *Ledger) error) error {
	s.mu.RLock()
	sess, ok := s.byID[id]
	s.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.touched = s.now()
	return fn(&sess.ledger)
}

// Snapshot copies the current lines of a session.
func (s *Sessions) Snapshot(id string) ([]Line, error) {
	var lines []Line
	err := s.With(id, func(l *Ledger) error {
		lines = l.Lines()
		return nil
	})
	return lines, err
}

func (s *Sessions) Discard(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.byID, id)
	return nil
}

// ExpireIdle drops sessions untouched for longer than ttl and reports how
// many were removed.
func (s *Sessions) ExpireIdle(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.byID {
		if !sess.mu.TryLock() {
			// in use right now
			continue
		}
		idle := sess.touched.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			delete(s.byID, id)
			n++
		}
	}
	return n
}

func (s *Sessions) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
