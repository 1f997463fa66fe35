package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/godilite/team-scoring/internal/repository"
	"github.com/godilite/team-scoring/internal/repository/models"
	"github.com/godilite/team-scoring/internal/service/mocks"
	dbbuilder "github.com/godilite/team-scoring/pkg/database"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

func setupRealDB(tb testing.TB) *repository.TicketRepository {
	tb.Helper()

	db, err := dbbuilder.New(
		dbbuilder.WithDriver("sqlite3"),
		dbbuilder.WithDataSource(":memory:"),
		dbbuilder.WithMaxOpenConns(1),
		dbbuilder.WithSchema(repository.Schema),
	)
	if err != nil {
		tb.Fatalf("failed to create db pool via builder: %v", err)
	}
	tb.Cleanup(func() { db.Close() })

	tx, err := db.Begin()
	if err != nil {
		tb.Fatalf("failed to begin seed: %v", err)
	}
	base := time.Date(2025, 10, 1, 8, 0, 0, 0, time.UTC)
	for team := 0; team < 20; team++ {
		id := fmt.Sprintf("team-%02d", team)
		if _, err := tx.Exec(`INSERT INTO teams (id, name) VALUES (?, ?)`, id, id); err != nil {
			tb.Fatalf("failed to seed team: %v", err)
		}
		for i := 0; i < 150; i++ {
			var s any
			if i%4 != 0 {
				s = float64(i%9)/10 - 0.3
			}
			_, err := tx.Exec(`INSERT INTO tickets (team_id, response_time_minutes, sentiment_score, created_at) VALUES (?, ?, ?, ?)`,
				id, float64(5+(i*(team+1))%120), s, models.FormatTime(base.Add(time.Duration(i)*3*time.Hour)))
			if err != nil {
				tb.Fatalf("failed to seed ticket: %v", err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		tb.Fatalf("failed to commit seed: %v", err)
	}

	return repository.NewTicketRepository(db)
}

func BenchmarkRankTeams(b *testing.B) {
	start := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 30)
	repo := setupRealDB(b)

	svc := NewTeamScoringService(repo, newEngine(b), zap.NewNop())

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := svc.RankTeams(context.Background(), start, end); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRankTeamsCached(b *testing.B) {
	start := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 30)
	repo := setupRealDB(b)
	cache := mocks.NewMemoryCache()

	svc := NewTeamScoringService(repo, newEngine(b), zap.NewNop(), WithCache(cache, time.Hour))
	if _, err := svc.RankTeams(context.Background(), start, end); err != nil {
		b.Fatal(err)
	}
	for len(cache.Keys()) == 0 {
		time.Sleep(time.Millisecond)
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := svc.RankTeams(context.Background(), start, end); err != nil {
			b.Fatal(err)
		}
	}
}
