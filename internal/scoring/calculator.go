package scoring

import "math"

// ResponseTimeScore maps the median response time onto the response-time
// curve and blends it with SLA compliance.
func ResponseTimeScore(s TeamMetricsSummary, c Curves) ComponentScore {
	curve := responseCurve(s.MedianResponseMinutes, c)
	value := curve*(1-c.SLABlend) + s.SLAComplianceRate*100*c.SLABlend
	return ComponentScore{Dimension: DimensionResponseTime, Value: clip(value), Confidence: ConfidenceFull}
}

func responseCurve(m float64, c Curves) float64 {
	e, g, a := c.ResponseExcellentMinutes, c.ResponseGoodMinutes, c.ResponseAcceptableMinutes
	switch {
	case m <= e:
		return 100
	case m <= g:
		return 90 - (m-e)/(g-e)*10
	case m <= a:
		return 80 - (m-g)/(a-g)*20
	default:
		return math.Max(c.ResponseFloor, 60-(m-a)/a*20)
	}
}

// EfficiencyScore maps ticket throughput onto the efficiency curve.
func EfficiencyScore(s TeamMetricsSummary, c Curves) ComponentScore {
	v := s.TicketsPerDay
	var value float64
	switch {
	case v >= c.EfficiencyExcellentPerDay:
		value = 100
	case v >= c.EfficiencyGoodPerDay:
		value = 80 + (v-c.EfficiencyGoodPerDay)/(c.EfficiencyExcellentPerDay-c.EfficiencyGoodPerDay)*20
	case v >= c.EfficiencyAveragePerDay:
		value = 60 + (v-c.EfficiencyAveragePerDay)/(c.EfficiencyGoodPerDay-c.EfficiencyAveragePerDay)*20
	case v >= c.EfficiencyLowPerDay:
		value = 40 + (v-c.EfficiencyLowPerDay)/(c.EfficiencyAveragePerDay-c.EfficiencyLowPerDay)*20
	default:
		value = math.Max(c.EfficiencyFloor, v/c.EfficiencyLowPerDay*40)
	}
	return ComponentScore{Dimension: DimensionEfficiency, Value: clip(value), Confidence: ConfidenceFull}
}

// QualityScore uses the positive sentiment rate. Missing sentiment yields
// the neutral value with defaulted confidence, never a low score.
func QualityScore(s TeamMetricsSummary, c Curves) ComponentScore {
	if !s.HasSentiment() {
		return ComponentScore{Dimension: DimensionQuality, Value: clip(c.NeutralQuality), Confidence: ConfidenceDefaulted}
	}
	return ComponentScore{Dimension: DimensionQuality, Value: clip(*s.SentimentPositiveRate * 100), Confidence: ConfidenceFull}
}

// ConsistencyScore maps the coefficient of variation of response times onto
// the consistency curve. Single-ticket teams are marked defaulted.
func ConsistencyScore(s TeamMetricsSummary, c Curves) ComponentScore {
	cv := s.CoefficientOfVariation()
	e, g, a := c.ConsistencyExcellentCV, c.ConsistencyGoodCV, c.ConsistencyAverageCV
	var value float64
	switch {
	case cv <= e:
		value = 90 + (e-cv)/e*10
	case cv <= g:
		value = 75 + (g-cv)/(g-e)*15
	case cv <= a:
		value = 60 + (a-cv)/(a-g)*15
	default:
		value = math.Max(c.ConsistencyFloor, 60-(cv-a)/(a-g)*10)
	}

	confidence := ConfidenceFull
	if s.TicketCount == 1 {
		confidence = ConfidenceDefaulted
	}
	return ComponentScore{Dimension: DimensionConsistency, Value: clip(value), Confidence: confidence}
}

// ScoreComponents computes all four dimensions for a summary.
func ScoreComponents(s TeamMetricsSummary, c Curves) map[Dimension]ComponentScore {
	return map[Dimension]ComponentScore{
		DimensionResponseTime: ResponseTimeScore(s, c),
		DimensionQuality:      QualityScore(s, c),
		DimensionEfficiency:   EfficiencyScore(s, c),
		DimensionConsistency:  ConsistencyScore(s, c),
	}
}

func clip(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(100, math.Max(0, v))
}
