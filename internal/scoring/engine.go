package scoring

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Engine runs the aggregation, scoring, ranking and explanation stages.
// It holds only immutable configuration and is safe for concurrent use.
type Engine struct {
	cfg    Config
	logger *zap.Logger
}

// NewEngine validates cfg before anything is scored.
func NewEngine(cfg Config, logger *zap.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		cfg:    cfg,
		logger: logger.Named("scoring-engine"),
	}, nil
}

// Config returns the validated configuration the engine scores with.
func (e *Engine) Config() Config {
	return e.cfg
}

type teamOutcome struct {
	card        *TeamScoreCard
	diagnostics []Diagnostic
}

// Run scores every team of the dataset. Per-team work fans out in parallel;
// ranking happens once all teams are done. Cancelling ctx stops the fan-out.
func (e *Engine) Run(ctx context.Context, ds Dataset) (Result, error) {
	started := time.Now()

	if err := validateTickets(ds.Tickets); err != nil {
		return Result{}, err
	}

	fingerprint, err := Fingerprint(ds, e.cfg)
	if err != nil {
		return Result{}, err
	}

	byTeam := groupByTeam(ds.Tickets)
	teams := teamIDs(byTeam, ds.Roster)
	outcomes := make([]teamOutcome, len(teams))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism())
	for i, team := range teams {
		i, team := i, team
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = e.scoreTeam(team, byTeam[team], ds.Window)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, fmt.Errorf("score teams: %w", err)
	}

	cards := make([]TeamScoreCard, 0, len(teams))
	diagnostics := []Diagnostic{}
	for _, o := range outcomes {
		if o.card != nil {
			cards = append(cards, *o.card)
		}
		diagnostics = append(diagnostics, o.diagnostics...)
	}
	sort.SliceStable(diagnostics, func(i, j int) bool {
		if diagnostics[i].TeamID != diagnostics[j].TeamID {
			return diagnostics[i].TeamID < diagnostics[j].TeamID
		}
		return diagnostics[i].Reason < diagnostics[j].Reason
	})

	ranked := Rank(cards)
	result := Result{
		RunID:       uuid.New().String(),
		Fingerprint: fingerprint,
		Cards:       ranked,
		Diagnostics: diagnostics,
		Insights:    Explain(ranked, e.cfg),
		Benchmarks:  Benchmark(ranked),
	}

	e.logger.Info("scored teams",
		zap.String("run_id", result.RunID),
		zap.String("fingerprint", fingerprint),
		zap.Int("tickets", len(ds.Tickets)),
		zap.Int("ranked", len(ranked)),
		zap.Int("diagnostics", len(diagnostics)),
		zap.Duration("elapsed", time.Since(started)))

	return result, nil
}

func (e *Engine) scoreTeam(team string, tickets []TicketRecord, window Window) teamOutcome {
	summary, err := Aggregate(team, tickets, window, e.cfg)
	if err != nil {
		e.logger.Debug("team excluded", zap.String("team", team), zap.Error(err))
		return teamOutcome{diagnostics: []Diagnostic{{TeamID: team, Reason: ReasonInsufficientData}}}
	}

	components := ScoreComponents(summary, e.cfg.Curves)
	overall, tier := Composite(components, e.cfg)
	areas := ImprovementAreas(summary)

	var diagnostics []Diagnostic
	if components[DimensionQuality].Confidence == ConfidenceDefaulted {
		diagnostics = append(diagnostics, Diagnostic{TeamID: team, Reason: ReasonMissingSentiment})
	}
	if components[DimensionConsistency].Confidence == ConfidenceDefaulted {
		diagnostics = append(diagnostics, Diagnostic{TeamID: team, Reason: ReasonSingleTicket})
	}

	return teamOutcome{
		card: &TeamScoreCard{
			TeamID:           team,
			Metrics:          summary,
			Components:       components,
			OverallScore:     overall,
			Tier:             tier,
			Highlight:        HighlightNone,
			ImprovementAreas: areas,
			Priority:         PriorityFor(areas),
		},
		diagnostics: diagnostics,
	}
}

func (e *Engine) parallelism() int {
	if e.cfg.MaxParallelism > 0 {
		return e.cfg.MaxParallelism
	}
	return runtime.GOMAXPROCS(0)
}

func validateTickets(tickets []TicketRecord) error {
	for i, t := range tickets {
		switch {
		case strings.TrimSpace(t.Team) == "":
			return fmt.Errorf("%w: record %d has no team", ErrInvalidTicket, i)
		case math.IsNaN(t.ResponseTimeMinutes) || math.IsInf(t.ResponseTimeMinutes, 0) || t.ResponseTimeMinutes < 0:
			return fmt.Errorf("%w: record %d has response time %v", ErrInvalidTicket, i, t.ResponseTimeMinutes)
		case t.SentimentScore != nil && !(*t.SentimentScore >= -1 && *t.SentimentScore <= 1):
			return fmt.Errorf("%w: record %d has sentiment %v outside [-1,1]", ErrInvalidTicket, i, *t.SentimentScore)
		}
	}
	return nil
}

// groupByTeam splits tickets per team, each slice in canonical order so the
// summary does not depend on input order.
func groupByTeam(tickets []TicketRecord) map[string][]TicketRecord {
	byTeam := make(map[string][]TicketRecord)
	for _, t := range tickets {
		byTeam[t.Team] = append(byTeam[t.Team], t)
	}
	for _, ts := range byTeam {
		sort.Slice(ts, func(i, j int) bool { return ticketLess(ts[i], ts[j]) })
	}
	return byTeam
}

func teamIDs(byTeam map[string][]TicketRecord, roster []string) []string {
	seen := make(map[string]struct{}, len(byTeam)+len(roster))
	for team := range byTeam {
		seen[team] = struct{}{}
	}
	for _, team := range roster {
		if strings.TrimSpace(team) != "" {
			seen[team] = struct{}{}
		}
	}
	ids := make([]string, 0, len(seen))
	for team := range seen {
		ids = append(ids, team)
	}
	sort.Strings(ids)
	return ids
}
