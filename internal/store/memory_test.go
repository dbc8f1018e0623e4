package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-proxy/internal/weather"
)

func TestLatestEmpty(t *testing.T) {
	s := NewMemoryStore(3)
	_, err := s.Latest()
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRetentionByCount(t *testing.T) {
	s := NewMemoryStore(3)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		s.SaveResult(weather.ProbeResult{CheckedAt: base.Add(time.Duration(i) * time.Minute), OK: i%2 == 0})
	}

	history := s.History()
	require.Len(t, history, 3)
	assert.Equal(t, base.Add(2*time.Minute), history[0].CheckedAt)

	latest, err := s.Latest()
	require.NoError(t, err)
	assert.Equal(t, base.Add(4*time.Minute), latest.CheckedAt)
	assert.True(t, latest.OK)
}

func TestUnlimitedHistory(t *testing.T) {
	s := NewMemoryStore(0)
	for i := 0; i < 50; i++ {
		s.SaveResult(weather.ProbeResult{OK: true})
	}
	assert.Len(t, s.History(), 50)
}

func TestConcurrentSaves(t *testing.T) {
	s := NewMemoryStore(10)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.SaveResult(weather.ProbeResult{OK: true})
			_, _ = s.Latest()
		}()
	}
	wg.Wait()

	assert.Len(t, s.History(), 10)
}
