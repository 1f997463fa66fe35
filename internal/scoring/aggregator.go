package scoring

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Aggregate reduces one team's tickets into a TeamMetricsSummary.
// It returns ErrInsufficientData when tickets is empty. The caller's window
// drives tickets_per_day; an unset window falls back to cfg.WindowDays.
func Aggregate(team string, tickets []TicketRecord, window Window, cfg Config) (TeamMetricsSummary, error) {
	if len(tickets) == 0 {
		return TeamMetricsSummary{}, fmt.Errorf("%w: team %q has no tickets", ErrInsufficientData, team)
	}

	n := len(tickets)
	minutes := make([]float64, n)
	var (
		withinSLA  int
		sentiments []float64
		positives  int
	)
	for i, t := range tickets {
		minutes[i] = t.ResponseTimeMinutes
		if t.ResponseTimeMinutes <= cfg.SLAThresholdMinutes {
			withinSLA++
		}
		if t.SentimentScore != nil {
			sentiments = append(sentiments, *t.SentimentScore)
			if *t.SentimentScore > cfg.PositiveSentimentThreshold {
				positives++
			}
		}
	}
	sort.Float64s(minutes)

	summary := TeamMetricsSummary{
		TeamID:                team,
		TicketCount:           n,
		MedianResponseMinutes: quantile(minutes, 0.5),
		P90ResponseMinutes:    quantile(minutes, 0.9),
		MeanResponseMinutes:   stat.Mean(minutes, nil),
		SLAComplianceRate:     float64(withinSLA) / float64(n),
		TicketsPerDay:         float64(n) / float64(max(1, windowDays(window, cfg))),
	}
	if n > 1 {
		summary.ResponseTimeStdDev = stat.StdDev(minutes, nil)
	}

	if len(sentiments) > 0 {
		mean := stat.Mean(sentiments, nil)
		rate := float64(positives) / float64(len(sentiments))
		summary.SentimentMean = &mean
		summary.SentimentPositiveRate = &rate
	}

	return summary, nil
}

func windowDays(w Window, cfg Config) int {
	if d := w.Days(); d > 0 {
		return d
	}
	return cfg.WindowDays
}

// quantile returns the p-quantile of sorted using linear interpolation
// between closest ranks, matching the usual median for even lengths.
func quantile(sorted []float64, p float64) float64 {
	switch len(sorted) {
	case 0:
		return math.NaN()
	case 1:
		return sorted[0]
	}
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
