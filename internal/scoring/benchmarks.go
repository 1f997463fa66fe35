package scoring

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarises one metric across the cohort.
type Stats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stddev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Benchmarks describes the ranked cohort as a whole.
type Benchmarks struct {
	TeamCount        int                 `json:"team_count"`
	Overall          Stats               `json:"overall"`
	Dimensions       map[Dimension]Stats `json:"dimensions"`
	TopPerformer     string              `json:"top_performer,omitempty"`
	NeedsImprovement string              `json:"needs_improvement,omitempty"`
}

// Benchmark computes cohort statistics from ranked cards.
func Benchmark(ranked []TeamScoreCard) Benchmarks {
	b := Benchmarks{
		TeamCount:  len(ranked),
		Dimensions: make(map[Dimension]Stats, len(Dimensions)),
	}
	if len(ranked) == 0 {
		return b
	}

	overall := make([]float64, len(ranked))
	for i, c := range ranked {
		overall[i] = c.OverallScore
	}
	b.Overall = describe(overall)

	for _, d := range Dimensions {
		values := make([]float64, len(ranked))
		for i, c := range ranked {
			values[i] = c.Components[d].Value
		}
		b.Dimensions[d] = describe(values)
	}

	b.TopPerformer = ranked[0].TeamID
	b.NeedsImprovement = ranked[len(ranked)-1].TeamID
	return b
}

func describe(values []float64) Stats {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	s := Stats{
		Mean:   stat.Mean(sorted, nil),
		Median: quantile(sorted, 0.5),
		Min:    floats.Min(sorted),
		Max:    floats.Max(sorted),
	}
	if len(sorted) > 1 {
		s.StdDev = stat.StdDev(sorted, nil)
	}
	return s
}
