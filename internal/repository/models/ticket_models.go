package models

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/godilite/team-scoring/internal/scoring"
)

// TimeLayout is the fixed-width UTC layout tickets are stored with, so that
// created_at compares correctly as text.
const TimeLayout = "2006-01-02T15:04:05Z"

type TicketRow struct {
	ID                  int64
	TeamID              string
	ResponseTimeMinutes float64
	SentimentScore      sql.NullFloat64
	CreatedAt           string
}

// Record converts the row to the scoring engine's canonical ticket.
func (r TicketRow) Record() (scoring.TicketRecord, error) {
	ts, err := time.Parse(TimeLayout, r.CreatedAt)
	if err != nil {
		return scoring.TicketRecord{}, fmt.Errorf("ticket %d: parse created_at %q: %w", r.ID, r.CreatedAt, err)
	}
	rec := scoring.TicketRecord{
		Team:                r.TeamID,
		ResponseTimeMinutes: r.ResponseTimeMinutes,
		Timestamp:           ts,
	}
	if r.SentimentScore.Valid {
		v := r.SentimentScore.Float64
		rec.SentimentScore = &v
	}
	return rec, nil
}

type TeamRow struct {
	ID   string
	Name string
}

func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}
