package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/godilite/team-scoring/internal/scoring"
)

const subjectPrefix = "teamscoring.ranking"

// Subject returns the subject a ranking with the given fingerprint is
// announced on.
func Subject(fingerprint string) string {
	return fmt.Sprintf("%s.%s.published", subjectPrefix, fingerprint)
}

// RankingPublished announces a freshly computed ranking.
type RankingPublished struct {
	RunID         string    `json:"run_id"`
	Fingerprint   string    `json:"fingerprint"`
	TeamCount     int       `json:"team_count"`
	ExcludedCount int       `json:"excluded_count"`
	TopTeams      []string  `json:"top_teams"`
	BottomTeams   []string  `json:"bottom_teams"`
	PublishedAt   time.Time `json:"published_at"`
}

func NewRankingPublished(result scoring.Result, now time.Time) RankingPublished {
	ev := RankingPublished{
		RunID:       result.RunID,
		Fingerprint: result.Fingerprint,
		TeamCount:   len(result.Cards),
		TopTeams:    []string{},
		BottomTeams: []string{},
		PublishedAt: now.UTC(),
	}

	excluded := make(map[string]struct{})
	for _, d := range result.Diagnostics {
		if d.Reason == scoring.ReasonInsufficientData {
			excluded[d.TeamID] = struct{}{}
		}
	}
	ev.ExcludedCount = len(excluded)

	for _, c := range result.Cards {
		switch c.Highlight {
		case scoring.HighlightTop:
			ev.TopTeams = append(ev.TopTeams, c.TeamID)
		case scoring.HighlightBottom:
			ev.BottomTeams = append(ev.BottomTeams, c.TeamID)
		}
	}
	return ev
}

// conn is the subset of *nats.Conn the publisher needs.
type conn interface {
	Publish(subject string, data []byte) error
	Drain() error
	Close()
}

type NATSPublisher struct {
	conn   conn
	logger *zap.Logger
	now    func() time.Time
}

func NewNATSPublisher(url string, logger *zap.Logger) (*NATSPublisher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	nc, err := nats.Connect(url,
		nats.Name("team-scoring"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return newPublisher(nc, logger), nil
}

func newPublisher(c conn, logger *zap.Logger) *NATSPublisher {
	return &NATSPublisher{
		conn:   c,
		logger: logger.Named("events"),
		now:    time.Now,
	}
}

// PublishRanking announces result. ctx is only checked before publishing;
// core NATS publishes are fire-and-forget.
func (p *NATSPublisher) PublishRanking(ctx context.Context, result scoring.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(NewRankingPublished(result, p.now()))
	if err != nil {
		return fmt.Errorf("encode ranking event: %w", err)
	}
	subject := Subject(result.Fingerprint)
	if err := p.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	p.logger.Debug("ranking published", zap.String("subject", subject), zap.String("run_id", result.RunID))
	return nil
}

func (p *NATSPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.logger.Warn("nats drain failed", zap.Error(err))
		p.conn.Close()
	}
}
