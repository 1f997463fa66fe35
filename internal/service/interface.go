package service

import (
	"context"
	"time"

	"github.com/godilite/team-scoring/internal/scoring"
)

// TicketRepository defines the storage reads the service needs.
type TicketRepository interface {
	ListTickets(ctx context.Context, start, end time.Time) ([]scoring.TicketRecord, error)
	ListTeams(ctx context.Context) ([]string, error)
}

// Cacher defines the interface for cache operations.
type Cacher interface {
	Close() error
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Recorder receives pipeline and cache observations.
type Recorder interface {
	ObserveRun(result scoring.Result, elapsed time.Duration)
	RunFailed()
	CacheHit()
	CacheMiss()
}

// EventPublisher announces freshly computed rankings.
type EventPublisher interface {
	PublishRanking(ctx context.Context, result scoring.Result) error
}

type nopRecorder struct{}

func (nopRecorder) ObserveRun(scoring.Result, time.Duration) {}
func (nopRecorder) RunFailed()                               {}
func (nopRecorder) CacheHit()                                {}
func (nopRecorder) CacheMiss()                               {}
