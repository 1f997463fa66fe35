package grpc

import (
	"context"
	"time"

	"github.com/godilite/team-scoring/internal/scoring"
	"github.com/godilite/team-scoring/internal/service"
)

type ScoringService interface {
	RankTeams(ctx context.Context, start, end time.Time) (scoring.Result, error)
	TeamReport(ctx context.Context, start, end time.Time, teamID string) (service.TeamReport, error)
}
