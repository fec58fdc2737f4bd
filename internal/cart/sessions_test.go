package cart

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessions_Lifecycle(t *testing.T) {
	s := NewSessions()
	id := s.Open()

	require.NoError(t, s.With(id, func(l *Ledger) error {
		l.Add(item("A", "100"))
		l.Add(item("A", "100"))
		return nil
	}))
	lines, err := s.Snapshot(id)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)

	boom := errors.New("boom")
	assert.ErrorIs(t, s.With(id, func(*Ledger) error { return boom }), boom)

	require.NoError(t, s.Discard(id))
	assert.ErrorIs(t, s.Discard(id), ErrSessionNotFound)
	_, err = s.Snapshot(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessions_ExpireIdle(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewSessions()
	s.now = func() time.Time { return now }

	stale := s.Open()
	now = now.Add(90 * time.Minute)
	fresh := s.Open()
	now = now.Add(45 * time.Minute)

	assert.Equal(t, 1, s.ExpireIdle(2*time.Hour))
	assert.Equal(t, 1, s.Count())
	_, err := s.Snapshot(stale)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = s.Snapshot(fresh)
	assert.NoError(t, err)
}

func TestSessions_ConcurrentAdds(t *testing.T) {
	s := NewSessions()
	id := s.Open()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.With(id, func(l *Ledger) error {
				l.Add(item("A", "1"))
				return nil
			})
		}()
	}
	wg.Wait()

	lines, err := s.Snapshot(id)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 50, lines[0].Quantity)
}
