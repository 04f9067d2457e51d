package store

import (
	"errors"
	"sync"

	"heatindex-alert/internal/runner"
)

// ErrNotFound is returned when no check has completed yet.
var ErrNotFound = errors.New("no checks recorded")

// ResultStore is a concurrency-safe, bounded in-memory history of check
// results. It exists for watch-mode diagnostics only; alert decisions never
// read it, so each check stays stateless.
type ResultStore struct {
	mu sync.RWMutex

	results []runner.Result
	maxSize int
}

// NewResultStore creates a store keeping at most maxSize results. maxSize <= 0
// is treated as unlimited.
func NewResultStore(maxSize int) *ResultStore {
	return &ResultStore{maxSize: maxSize}
}

// Save appends a result and enforces the size bound.
func (s *ResultStore) Save(res runner.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.results = append(s.results, res)
	if s.maxSize > 0 && len(s.results) > s.maxSize {
		over := len(s.results) - s.maxSize
		s.results = s.results[over:]
	}
}

// Latest returns the most recent result.
func (s *ResultStore) Latest() (runner.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.results) == 0 {
		return runner.Result{}, ErrNotFound
	}
	return s.results[len(s.results)-1], nil
}

// Recent returns up to n results, newest first.
func (s *ResultStore) Recent(n int) []runner.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 || n > len(s.results) {
		n = len(s.results)
	}

	out := make([]runner.Result, 0, n)
	for i := len(s.results) - 1; i >= len(s.results)-n; i-- {
		out = append(out, s.results[i])
	}
	return out
}
