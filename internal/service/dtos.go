package service

import "github.com/godilite/team-scoring/internal/scoring"

// TeamReport is one team's view of a ranking run. Card is nil when the
// team was excluded; Diagnostics then says why.
type TeamReport struct {
	RunID       string
	Fingerprint string
	TeamID      string
	CohortSize  int
	Card        *scoring.TeamScoreCard
	Insights    []string
	Diagnostics []scoring.Diagnostic
	Benchmarks  scoring.Benchmarks
}

// Ranked reports whether the team made it into the ranking.
func (r TeamReport) Ranked() bool {
	return r.Card != nil
}
