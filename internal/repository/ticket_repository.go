package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/godilite/team-scoring/internal/repository/models"
	"github.com/godilite/team-scoring/internal/scoring"
)

// Schema creates the tables the repository reads from.
const Schema = `
	CREATE TABLE IF NOT EXISTS teams (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT ''
	);
	CREATE TABLE IF NOT EXISTS tickets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		team_id TEXT NOT NULL,
		response_time_minutes REAL NOT NULL,
		sentiment_score REAL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_tickets_created_at ON tickets (created_at);
`

type TicketRepository struct {
	db *sql.DB
}

func NewTicketRepository(db *sql.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// ListTickets returns every ticket created within [start, end].
func (r *TicketRepository) ListTickets(ctx context.Context, start, end time.Time) ([]scoring.TicketRecord, error) {
	const query = `
		SELECT id, team_id, response_time_minutes, sentiment_score, created_at
		FROM tickets
		WHERE created_at >= ? AND created_at <= ?
		ORDER BY team_id, created_at, id
	`

	rows, err := r.db.QueryContext(ctx, query, models.FormatTime(start), models.FormatTime(end))
	if err != nil {
		return nil, fmt.Errorf("query ListTickets: %w", err)
	}
	defer rows.Close()

	var results []scoring.TicketRecord
	for rows.Next() {
		var row models.TicketRow
		if err := rows.Scan(&row.ID, &row.TeamID, &row.ResponseTimeMinutes, &row.SentimentScore, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ListTickets row: %w", err)
		}
		rec, err := row.Record()
		if err != nil {
			return nil, fmt.Errorf("scan ListTickets row: %w", err)
		}
		results = append(results, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ListTickets: %w", err)
	}
	return results, nil
}

// ListTeams returns the roster of known team ids.
func (r *TicketRepository) ListTeams(ctx context.Context) ([]string, error) {
	const query = `SELECT id, name FROM teams ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query ListTeams: %w", err)
	}
	defer rows.Close()

	var teams []string
	for rows.Next() {
		var team models.TeamRow
		if err := rows.Scan(&team.ID, &team.Name); err != nil {
			return nil, fmt.Errorf("scan ListTeams row: %w", err)
		}
		teams = append(teams, team.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ListTeams: %w", err)
	}
	return teams, nil
}
