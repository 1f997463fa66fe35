package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/godilite/team-scoring/internal/scoring"
)

// MockPublisher records published rankings.
type MockPublisher struct {
	PublishRankingFunc func(ctx context.Context, result scoring.Result) error

	mu        sync.Mutex
	published []scoring.Result
}

func (m *MockPublisher) PublishRanking(ctx context.Context, result scoring.Result) error {
	m.mu.Lock()
	m.published = append(m.published, result)
	m.mu.Unlock()
	if m.PublishRankingFunc != nil {
		return m.PublishRankingFunc(ctx, result)
	}
	return nil
}

func (m *MockPublisher) Published() []scoring.Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]scoring.Result(nil), m.published...)
}

// MockRecorder counts observations.
type MockRecorder struct {
	mu       sync.Mutex
	Runs     int
	Failures int
	Hits     int
	Misses   int
}

func (m *MockRecorder) ObserveRun(scoring.Result, time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Runs++
}

func (m *MockRecorder) RunFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Failures++
}

func (m *MockRecorder) CacheHit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Hits++
}

func (m *MockRecorder) CacheMiss() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Misses++
}

// Snapshot returns runs, failures, hits and misses.
func (m *MockRecorder) Snapshot() (int, int, int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Runs, m.Failures, m.Hits, m.Misses
}
