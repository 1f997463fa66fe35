package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/godilite/team-scoring/internal/scoring"
)

const (
	dbTimeout            = 2 * time.Second
	publishTimeout       = 2 * time.Second
	defaultCacheDuration = 10 * time.Minute
	resultKeyPrefix      = "scoring:result:"
)

var (
	ErrNoTickets      = errors.New("no tickets found")
	ErrTeamNotFound   = errors.New("team not found")
	ErrInvalidWindow  = errors.New("invalid time window")
	ErrStorageFailure = errors.New("storage failure")
)

// TeamScoringService loads tickets for a time window and runs them through
// the scoring engine. Results are cached by dataset fingerprint, so repeated
// requests over unchanged data never rerun the pipeline.
type TeamScoringService struct {
	storage   TicketRepository
	engine    *scoring.Engine
	cache     Cacher
	recorder  Recorder
	publisher EventPublisher
	logger    *zap.Logger
	sfGroup   singleflight.Group
	cacheTTL  time.Duration
}

type Option func(*TeamScoringService)

// WithCache enables result caching with the given TTL. A non-positive TTL
// uses the default.
func WithCache(c Cacher, ttl time.Duration) Option {
	return func(s *TeamScoringService) {
		s.cache = c
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(s *TeamScoringService) {
		if r != nil {
			s.recorder = r
		}
	}
}

func WithPublisher(p EventPublisher) Option {
	return func(s *TeamScoringService) { s.publisher = p }
}

// NewTeamScoringService creates a new TeamScoringService instance.
func NewTeamScoringService(storage TicketRepository, engine *scoring.Engine, logger *zap.Logger, opts ...Option) *TeamScoringService {
	if storage == nil {
		panic("storage must not be nil")
	}
	if engine == nil {
		panic("engine must not be nil")
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	s := &TeamScoringService{
		storage:  storage,
		engine:   engine,
		recorder: nopRecorder{},
		logger:   logger.Named("scoring-service"),
		cacheTTL: defaultCacheDuration,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// dayBounds widens [start, end] to whole UTC calendar days.
func dayBounds(start, end time.Time) (time.Time, time.Time) {
	s := start.UTC()
	e := end.UTC()
	s = time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, time.UTC)
	e = time.Date(e.Year(), e.Month(), e.Day(), 0, 0, 0, 0, time.UTC).Add(24*time.Hour - time.Second)
	return s, e
}

func resultKey(fingerprint string) string {
	return resultKeyPrefix + fingerprint
}

func (s *TeamScoringService) loadDataset(ctx context.Context, start, end time.Time) (scoring.Dataset, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	tickets, err := s.storage.ListTickets(dbCtx, start, end)
	if err != nil {
		return scoring.Dataset{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	roster, err := s.storage.ListTeams(dbCtx)
	if err != nil {
		return scoring.Dataset{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	if len(tickets) == 0 && len(roster) == 0 {
		return scoring.Dataset{}, ErrNoTickets
	}

	return scoring.Dataset{
		Tickets: tickets,
		Roster:  roster,
		Window:  scoring.Window{Start: start, End: end},
	}, nil
}

// RankTeams scores and ranks every team with activity, or on the roster,
// within the calendar days spanned by start and end.
func (s *TeamScoringService) RankTeams(ctx context.Context, start, end time.Time) (scoring.Result, error) {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return scoring.Result{}, fmt.Errorf("%w: %s to %s", ErrInvalidWindow, start, end)
	}
	start, end = dayBounds(start, end)

	ds, err := s.loadDataset(ctx, start, end)
	if err != nil {
		return scoring.Result{}, err
	}

	fingerprint, err := scoring.Fingerprint(ds, s.engine.Config())
	if err != nil {
		return scoring.Result{}, fmt.Errorf("fingerprint dataset: %w", err)
	}

	run := func(runCtx context.Context) (scoring.Result, error) {
		return s.run(runCtx, ds)
	}

	if s.cache == nil {
		return run(ctx)
	}

	result, hit, err := FindAndCache(ctx, s.cache, &s.sfGroup, resultKey(fingerprint), s.cacheTTL, s.logger, run)
	if err != nil {
		return scoring.Result{}, err
	}
	if hit {
		s.recorder.CacheHit()
	} else {
		s.recorder.CacheMiss()
	}
	return result, nil
}

func (s *TeamScoringService) run(ctx context.Context, ds scoring.Dataset) (scoring.Result, error) {
	started := time.Now()
	result, err := s.engine.Run(ctx, ds)
	if err != nil {
		s.recorder.RunFailed()
		return scoring.Result{}, err
	}
	s.recorder.ObserveRun(result, time.Since(started))

	s.logger.Info("ranked teams",
		zap.String("run_id", result.RunID),
		zap.String("fingerprint", result.Fingerprint),
		zap.Int("teams", len(result.Cards)),
		zap.Int("diagnostics", len(result.Diagnostics)),
		zap.Time("start", ds.Window.Start),
		zap.Time("end", ds.Window.End))

	s.publish(ctx, result)
	return result, nil
}

func (s *TeamScoringService) publish(ctx context.Context, result scoring.Result) {
	if s.publisher == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.publisher.PublishRanking(pubCtx, result); err != nil {
		s.logger.Warn("failed to publish ranking", zap.String("run_id", result.RunID), zap.Error(err))
	}
}

// TeamReport returns one team's card, insights and diagnostics from the
// same ranking RankTeams would produce for the window.
func (s *TeamScoringService) TeamReport(ctx context.Context, start, end time.Time, teamID string) (TeamReport, error) {
	if teamID == "" {
		return TeamReport{}, fmt.Errorf("%w: empty team id", ErrTeamNotFound)
	}

	result, err := s.RankTeams(ctx, start, end)
	if err != nil {
		return TeamReport{}, fmt.Errorf("rank teams: %w", err)
	}

	report := TeamReport{
		RunID:       result.RunID,
		Fingerprint: result.Fingerprint,
		TeamID:      teamID,
		CohortSize:  len(result.Cards),
		Insights:    []string{},
		Diagnostics: result.DiagnosticsFor(teamID),
		Benchmarks:  result.Benchmarks,
	}
	if card, ok := result.Card(teamID); ok {
		report.Card = &card
		if flags := result.Insights[teamID]; flags != nil {
			report.Insights = flags
		}
	}
	if report.Card == nil && len(report.Diagnostics) == 0 {
		return TeamReport{}, fmt.Errorf("%w: %q", ErrTeamNotFound, teamID)
	}
	return report, nil
}
