package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func card(team string, overall, rt, q, e, c float64, qualityDefaulted bool) TeamScoreCard {
	qc := ConfidenceFull
	if qualityDefaulted {
		qc = ConfidenceDefaulted
	}
	return TeamScoreCard{
		TeamID:       team,
		OverallScore: overall,
		Components: map[Dimension]ComponentScore{
			DimensionResponseTime: {Dimension: DimensionResponseTime, Value: rt, Confidence: ConfidenceFull},
			DimensionQuality:      {Dimension: DimensionQuality, Value: q, Confidence: qc},
			DimensionEfficiency:   {Dimension: DimensionEfficiency, Value: e, Confidence: ConfidenceFull},
			DimensionConsistency:  {Dimension: DimensionConsistency, Value: c, Confidence: ConfidenceFull},
		},
	}
}

func cohort() []TeamScoreCard {
	return Rank([]TeamScoreCard{
		card("alpha", 95, 95, 90, 80, 85, false),
		card("bravo", 85, 80, 70, 90, 80, false),
		card("charlie", 75, 70, 60, 70, 70, false),
		card("delta", 65, 60, 50, 60, 60, true),
		card("echo", 50, 40, 30, 50, 50, false),
	})
}

func TestExplainLeader(t *testing.T) {
	insights := Explain(cohort(), DefaultConfig())

	assert.Equal(t, []string{
		"highest overall score in cohort",
		"fastest response time in cohort",
		"highest customer sentiment in cohort",
		"efficiency in top quartile",
		"most consistent response times in cohort",
	}, insights["alpha"])
}

func TestExplainLaggard(t *testing.T) {
	insights := Explain(cohort(), DefaultConfig())

	assert.Equal(t, []string{
		"lowest overall score in cohort",
		"response time in bottom quartile",
		"response time needs improvement",
		"quality in bottom quartile",
		"quality needs improvement",
		"efficiency in bottom quartile",
		"efficiency needs improvement",
		"consistency in bottom quartile",
		"consistency needs improvement",
	}, insights["echo"])
}

func TestExplainDefaultedComponent(t *testing.T) {
	insights := Explain(cohort(), DefaultConfig())

	flags := insights["delta"]
	assert.Contains(t, flags, "quality defaulted: no sentiment data")
	assert.NotContains(t, flags, "quality needs improvement")
	assert.NotContains(t, flags, "quality in bottom quartile")
}

func TestExplainCoversEveryCard(t *testing.T) {
	ranked := cohort()
	insights := Explain(ranked, DefaultConfig())

	require.Len(t, insights, len(ranked))
	for _, c := range ranked {
		assert.NotNil(t, insights[c.TeamID], c.TeamID)
	}
}

func TestExplainSingleTeam(t *testing.T) {
	ranked := Rank([]TeamScoreCard{card("solo", 70, 70, 70, 70, 70, false)})

	insights := Explain(ranked, DefaultConfig())

	assert.Empty(t, insights["solo"])
}

func TestExplainSharedTopIsNotALeader(t *testing.T) {
	ranked := Rank([]TeamScoreCard{
		card("a", 80, 90, 70, 70, 70, false),
		card("b", 79, 90, 70, 70, 70, false),
	})

	insights := Explain(ranked, DefaultConfig())

	assert.NotContains(t, insights["a"], "fastest response time in cohort")
	assert.NotContains(t, insights["b"], "fastest response time in cohort")
}

func TestExplainIsDeterministic(t *testing.T) {
	first := Explain(cohort(), DefaultConfig())
	second := Explain(cohort(), DefaultConfig())
	assert.Equal(t, first, second)
}
