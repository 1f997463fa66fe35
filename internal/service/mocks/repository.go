package mocks

import (
	"context"
	"errors"
	"time"

	"github.com/godilite/team-scoring/internal/scoring"
)

// MockTicketRepository is a mock implementation of the TicketRepository interface
// for testing the service layer.
type MockTicketRepository struct {
	ListTicketsFunc func(ctx context.Context, start, end time.Time) ([]scoring.TicketRecord, error)
	ListTeamsFunc   func(ctx context.Context) ([]string, error)
}

// ListTickets implements the TicketRepository interface
func (m *MockTicketRepository) ListTickets(ctx context.Context, start, end time.Time) ([]scoring.TicketRecord, error) {
	if m.ListTicketsFunc != nil {
		return m.ListTicketsFunc(ctx, start, end)
	}
	return nil, errors.New("ListTicketsFunc not implemented")
}

// ListTeams implements the TicketRepository interface. Without a stub it
// returns an empty roster.
func (m *MockTicketRepository) ListTeams(ctx context.Context) ([]string, error) {
	if m.ListTeamsFunc != nil {
		return m.ListTeamsFunc(ctx)
	}
	return nil, nil
}
