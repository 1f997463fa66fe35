package mocks

import (
	"context"
	"errors"
	"time"

	"github.com/godilite/team-scoring/internal/scoring"
	"github.com/godilite/team-scoring/internal/service"
)

// MockScoringService is a mock implementation of the ScoringService interface
// for testing the handler layer. It uses function-based mocking for flexibility.
type MockScoringService struct {
	RankTeamsFunc  func(ctx context.Context, start, end time.Time) (scoring.Result, error)
	TeamReportFunc func(ctx context.Context, start, end time.Time, teamID string) (service.TeamReport, error)
}

// RankTeams implements the ScoringService interface
func (m *MockScoringService) RankTeams(ctx context.Context, start, end time.Time) (scoring.Result, error) {
	if m.RankTeamsFunc != nil {
		return m.RankTeamsFunc(ctx, start, end)
	}
	return scoring.Result{}, errors.New("RankTeamsFunc not implemented")
}

// TeamReport implements the ScoringService interface
func (m *MockScoringService) TeamReport(ctx context.Context, start, end time.Time, teamID string) (service.TeamReport, error) {
	if m.TeamReportFunc != nil {
		return m.TeamReportFunc(ctx, start, end, teamID)
	}
	return service.TeamReport{}, errors.New("TeamReportFunc not implemented")
}
