package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImprovementAreas(t *testing.T) {
	t.Run("healthy team", func(t *testing.T) {
		s := TeamMetricsSummary{
			TicketCount:           50,
			MedianResponseMinutes: 20,
			MeanResponseMinutes:   25,
			ResponseTimeStdDev:    10,
			SLAComplianceRate:     0.95,
			SentimentMean:         float64Ptr(0.4),
			SentimentPositiveRate: float64Ptr(0.7),
		}
		areas := ImprovementAreas(s)
		assert.Empty(t, areas)
		assert.Equal(t, PriorityLow, PriorityFor(areas))
	})

	t.Run("struggling team", func(t *testing.T) {
		s := TeamMetricsSummary{
			TicketCount:           4,
			MedianResponseMinutes: 90,
			MeanResponseMinutes:   100,
			ResponseTimeStdDev:    250,
			SLAComplianceRate:     0.3,
			SentimentMean:         float64Ptr(-0.1),
			SentimentPositiveRate: float64Ptr(0.2),
		}
		areas := ImprovementAreas(s)
		assert.Equal(t, []string{
			"response time: median response time is too high",
			"sla compliance: below 80% compliance rate",
			"customer satisfaction: low sentiment scores",
			"customer experience: low positive feedback rate",
			"ticket volume: low ticket processing volume",
			"consistency: high variability in response times",
		}, areas)
		assert.Equal(t, PriorityHigh, PriorityFor(areas))
	})

	t.Run("sentiment rules skipped without sentiment", func(t *testing.T) {
		s := TeamMetricsSummary{TicketCount: 50, MedianResponseMinutes: 10, SLAComplianceRate: 1}
		assert.Empty(t, ImprovementAreas(s))
	})
}

func TestPriorityFor(t *testing.T) {
	assert.Equal(t, PriorityLow, PriorityFor(nil))
	assert.Equal(t, PriorityLow, PriorityFor([]string{"a"}))
	assert.Equal(t, PriorityMedium, PriorityFor([]string{"a", "b"}))
	assert.Equal(t, PriorityMedium, PriorityFor([]string{"a", "b", "c"}))
	assert.Equal(t, PriorityHigh, PriorityFor([]string{"a", "b", "c", "d"}))
}

func TestTierFor(t *testing.T) {
	tiers := DefaultConfig().Tiers
	assert.Equal(t, TierExcellent, TierFor(100, tiers))
	assert.Equal(t, TierExcellent, TierFor(90, tiers))
	assert.Equal(t, TierGood, TierFor(89.99, tiers))
	assert.Equal(t, TierGood, TierFor(75, tiers))
	assert.Equal(t, TierAverage, TierFor(60, tiers))
	assert.Equal(t, TierNeedsImprovement, TierFor(59.9, tiers))
	assert.Equal(t, TierNeedsImprovement, TierFor(0, tiers))
}

func TestCompositeUsesConfiguredWeights(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weights = Weights{ResponseTime: 1}
	components := map[Dimension]ComponentScore{
		DimensionResponseTime: {Value: 77},
		DimensionQuality:      {Value: 10},
		DimensionEfficiency:   {Value: 10},
		DimensionConsistency:  {Value: 10},
	}

	overall, tier := Composite(components, cfg)

	assert.Equal(t, 77.0, overall)
	assert.Equal(t, TierGood, tier)
}
