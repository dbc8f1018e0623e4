package store

import (
	"errors"
	"sync"

	"github.com/i474232898/weather-proxy/internal/weather"
)

var (
	// ErrNotFound is returned when no probe has been recorded yet.
	ErrNotFound = errors.New("no probe results recorded")
)

// MemoryStore is a concurrency-safe in-memory history of upstream probe results.
type MemoryStore struct {
	mu sync.RWMutex

	results []weather.ProbeResult

	// retention configuration
	maxHistory int // max number of results kept
}

// NewMemoryStore creates a new MemoryStore.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int) *MemoryStore {
	return &MemoryStore{
		maxHistory: maxHistory,
	}
}

// SaveResult appends a probe result and enforces retention.
func (s *MemoryStore) SaveResult(result weather.ProbeResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.results = append(s.results, result)

	if s.maxHistory > 0 && len(s.results) > s.maxHistory {
		over := len(s.results) - s.maxHistory
		s.results = append(s.results[:0:0], s.results[over:]...)
	}
}

// Latest returns the most recent probe result.
func (s *MemoryStore) Latest() (weather.ProbeResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.results) == 0 {
		return weather.ProbeResult{}, ErrNotFound
	}
	return s.results[len(s.results)-1], nil
}

// History returns a copy of the retained results, oldest first.
func (s *MemoryStore) History() []weather.ProbeResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]weather.ProbeResult, len(s.results))
	copy(out, s.results)
	return out
}
