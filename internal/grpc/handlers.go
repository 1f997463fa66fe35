package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/godilite/team-scoring/internal/scoring"
	"github.com/godilite/team-scoring/internal/service"
)

const defaultGRPCTimeout = 10 * time.Second

const (
	fieldStartDate = "start_date"
	fieldEndDate   = "end_date"
	fieldTeamID    = "team_id"
)

// dateLayouts are tried in order when parsing request dates.
var dateLayouts = []string{time.RFC3339Nano, time.DateOnly}

type GRPCHandlers struct {
	scoring ScoringService
	logger  *zap.Logger
	timeout time.Duration
}

var _ TeamScoringServer = (*GRPCHandlers)(nil)

// NewGRPCHandlers initializes the gRPC handlers.
func NewGRPCHandlers(scoring ScoringService, logger *zap.Logger, timeout time.Duration) *GRPCHandlers {
	if scoring == nil {
		panic("nil ScoringService provided to NewGRPCHandlers")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = defaultGRPCTimeout
	}
	return &GRPCHandlers{
		scoring: scoring,
		logger:  logger.Named("grpc-handler"),
		timeout: timeout,
	}
}

type rankingResponse struct {
	RunID       string                  `json:"run_id"`
	Fingerprint string                  `json:"fingerprint"`
	StartDate   string                  `json:"start_date"`
	EndDate     string                  `json:"end_date"`
	Teams       []scoring.TeamScoreCard `json:"teams"`
	Highlighted []string                `json:"highlighted"`
	Insights    map[string][]string     `json:"insights"`
	Diagnostics []scoring.Diagnostic    `json:"diagnostics"`
	Benchmarks  scoring.Benchmarks      `json:"benchmarks"`
}

type teamReportResponse struct {
	RunID       string                 `json:"run_id"`
	Fingerprint string                 `json:"fingerprint"`
	TeamID      string                 `json:"team_id"`
	Ranked      bool                   `json:"ranked"`
	CohortSize  int                    `json:"cohort_size"`
	Card        *scoring.TeamScoreCard `json:"card"`
	Insights    []string               `json:"insights"`
	Diagnostics []scoring.Diagnostic   `json:"diagnostics"`
	Benchmarks  scoring.Benchmarks     `json:"benchmarks"`
}

func parseDate(req *structpb.Struct, field string) (time.Time, error) {
	v, ok := req.GetFields()[field]
	if !ok || strings.TrimSpace(v.GetStringValue()) == "" {
		return time.Time{}, fmt.Errorf("%s is required", field)
	}
	raw := strings.TrimSpace(v.GetStringValue())
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%s %q is not an RFC 3339 timestamp or date", field, raw)
}

func (s *GRPCHandlers) parseAndValidate(req *structpb.Struct) (start, end time.Time, err error) {
	if start, err = parseDate(req, fieldStartDate); err != nil {
		err = status.Error(codes.InvalidArgument, err.Error())
		return
	}
	if end, err = parseDate(req, fieldEndDate); err != nil {
		err = status.Error(codes.InvalidArgument, err.Error())
		return
	}

	if end.Before(start) {
		err = status.Error(codes.InvalidArgument, "end date must be after start date")
		return
	}

	return
}

// toStruct converts v to a Struct through its JSON form.
func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return structpb.NewStruct(m)
}

func (s *GRPCHandlers) handleError(ctx context.Context, op string, err error) error {
	switch ctx.Err() {
	case context.Canceled:
		s.logger.Warn("request canceled", zap.String("op", op))
		return status.Error(codes.Canceled, "request canceled")
	case context.DeadlineExceeded:
		s.logger.Warn("request timeout", zap.String("op", op))
		return status.Error(codes.DeadlineExceeded, "request timed out")
	}

	switch {
	case errors.Is(err, service.ErrInvalidWindow):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrNoTickets):
		s.logger.Info("no tickets found", zap.String("op", op))
		return status.Error(codes.NotFound, "no tickets found for the given period")
	case errors.Is(err, service.ErrTeamNotFound):
		s.logger.Info("team not found", zap.String("op", op), zap.Error(err))
		return status.Error(codes.NotFound, "team not found in the given period")
	case errors.Is(err, scoring.ErrInvalidTicket):
		s.logger.Error("invalid ticket data", zap.String("op", op), zap.Error(err))
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, service.ErrStorageFailure):
		s.logger.Error("storage failure", zap.String("op", op), zap.Error(err))
		return status.Error(codes.Internal, "database error")
	default:
		s.logger.Error("unexpected error", zap.String("op", op), zap.Error(err))
		return status.Errorf(codes.Internal, "%s failed: %v", op, err)
	}
}

// RankTeams expects start_date and end_date and returns the ranked cohort.
func (s *GRPCHandlers) RankTeams(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	start, end, err := s.parseAndValidate(req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.scoring.RankTeams(ctx, start, end)
	if err != nil {
		return nil, s.handleError(ctx, "RankTeams", err)
	}

	highlighted := scoring.Highlighted(result.Cards)
	ids := make([]string, len(highlighted))
	for i, c := range highlighted {
		ids[i] = c.TeamID
	}

	resp, err := toStruct(rankingResponse{
		RunID:       result.RunID,
		Fingerprint: result.Fingerprint,
		StartDate:   start.Format(time.RFC3339),
		EndDate:     end.Format(time.RFC3339),
		Teams:       result.Cards,
		Highlighted: ids,
		Insights:    result.Insights,
		Diagnostics: result.Diagnostics,
		Benchmarks:  result.Benchmarks,
	})
	if err != nil {
		return nil, s.handleError(ctx, "RankTeams", fmt.Errorf("encode response: %w", err))
	}
	return resp, nil
}

// GetTeamReport expects start_date, end_date and team_id.
func (s *GRPCHandlers) GetTeamReport(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	start, end, err := s.parseAndValidate(req)
	if err != nil {
		return nil, err
	}
	teamID := strings.TrimSpace(req.GetFields()[fieldTeamID].GetStringValue())
	if teamID == "" {
		return nil, status.Error(codes.InvalidArgument, "team_id is required")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	report, err := s.scoring.TeamReport(ctx, start, end, teamID)
	if err != nil {
		return nil, s.handleError(ctx, "GetTeamReport", err)
	}

	resp, err := toStruct(teamReportResponse{
		RunID:       report.RunID,
		Fingerprint: report.Fingerprint,
		TeamID:      report.TeamID,
		Ranked:      report.Ranked(),
		CohortSize:  report.CohortSize,
		Card:        report.Card,
		Insights:    report.Insights,
		Diagnostics: report.Diagnostics,
		Benchmarks:  report.Benchmarks,
	})
	if err != nil {
		return nil, s.handleError(ctx, "GetTeamReport", fmt.Errorf("encode response: %w", err))
	}
	return resp, nil
}
