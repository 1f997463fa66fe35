package scoring

const (
	improvementMedianMinutes   = 45
	improvementSLARate         = 0.8
	improvementSentimentMean   = 0.1
	improvementPositiveRate    = 0.4
	improvementMinTicketVolume = 10
	improvementMaxCV           = 1.0
)

// ImprovementAreas lists the concrete weaknesses visible in a team's raw
// metrics. Sentiment rules are skipped when the team has no sentiment data.
func ImprovementAreas(s TeamMetricsSummary) []string {
	areas := []string{}
	if s.MedianResponseMinutes > improvementMedianMinutes {
		areas = append(areas, "response time: median response time is too high")
	}
	if s.SLAComplianceRate < improvementSLARate {
		areas = append(areas, "sla compliance: below 80% compliance rate")
	}
	if s.SentimentMean != nil && *s.SentimentMean < improvementSentimentMean {
		areas = append(areas, "customer satisfaction: low sentiment scores")
	}
	if s.SentimentPositiveRate != nil && *s.SentimentPositiveRate < improvementPositiveRate {
		areas = append(areas, "customer experience: low positive feedback rate")
	}
	if s.TicketCount < improvementMinTicketVolume {
		areas = append(areas, "ticket volume: low ticket processing volume")
	}
	if s.CoefficientOfVariation() > improvementMaxCV {
		areas = append(areas, "consistency: high variability in response times")
	}
	return areas
}

// PriorityFor grades how urgently a team needs attention.
func PriorityFor(areas []string) Priority {
	switch n := len(areas); {
	case n > 3:
		return PriorityHigh
	case n > 1:
		return PriorityMedium
	default:
		return PriorityLow
	}
}
