package scoring

import (
	"fmt"
	"sort"
)

const quartileMinTeams = 4

var dimensionLabels = map[Dimension]string{
	DimensionResponseTime: "response time",
	DimensionQuality:      "quality",
	DimensionEfficiency:   "efficiency",
	DimensionConsistency:  "consistency",
}

var leaderFlags = map[Dimension]string{
	DimensionResponseTime: "fastest response time in cohort",
	DimensionQuality:      "highest customer sentiment in cohort",
	DimensionEfficiency:   "highest ticket throughput in cohort",
	DimensionConsistency:  "most consistent response times in cohort",
}

var defaultedFlags = map[Dimension]string{
	DimensionQuality:     "quality defaulted: no sentiment data",
	DimensionConsistency: "consistency defaulted: single ticket",
}

// Explain derives ordered, rule-based flags for every ranked card by
// comparing it with its peers. The output depends only on the cards and cfg.
func Explain(ranked []TeamScoreCard, cfg Config) map[string][]string {
	out := make(map[string][]string, len(ranked))
	n := len(ranked)

	peers := make(map[Dimension][]float64, len(Dimensions))
	for _, d := range Dimensions {
		for _, c := range ranked {
			if cs := c.Components[d]; cs.Confidence == ConfidenceFull {
				peers[d] = append(peers[d], cs.Value)
			}
		}
		sort.Float64s(peers[d])
	}

	for _, c := range ranked {
		flags := []string{}
		if n > 1 && c.Rank == 1 {
			flags = append(flags, "highest overall score in cohort")
		}
		if n > 1 && c.Rank == n {
			flags = append(flags, "lowest overall score in cohort")
		}

		for _, d := range Dimensions {
			cs := c.Components[d]
			if cs.Confidence == ConfidenceDefaulted {
				if f, ok := defaultedFlags[d]; ok {
					flags = append(flags, f)
				}
				continue
			}
			flags = append(flags, peerFlags(d, cs.Value, peers[d])...)
			if cs.Value < cfg.Tiers.Average {
				flags = append(flags, fmt.Sprintf("%s needs improvement", dimensionLabels[d]))
			}
		}
		out[c.TeamID] = flags
	}
	return out
}

func peerFlags(d Dimension, value float64, sorted []float64) []string {
	if len(sorted) < 2 {
		return nil
	}
	top := sorted[len(sorted)-1]
	if value == top && sorted[len(sorted)-2] < top {
		return []string{leaderFlags[d]}
	}
	if len(sorted) < quartileMinTeams {
		return nil
	}
	q1, q3 := quantile(sorted, 0.25), quantile(sorted, 0.75)
	if q1 == q3 {
		return nil
	}
	switch {
	case value >= q3:
		return []string{fmt.Sprintf("%s in top quartile", dimensionLabels[d])}
	case value <= q1:
		return []string{fmt.Sprintf("%s in bottom quartile", dimensionLabels[d])}
	}
	return nil
}
