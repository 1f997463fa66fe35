package scoring

// Composite combines the four component scores with the configured weights
// and selects the tier. Components are summed in canonical dimension order
// so the floating point result never depends on map iteration.
func Composite(components map[Dimension]ComponentScore, cfg Config) (float64, Tier) {
	var overall float64
	for _, d := range Dimensions {
		overall += cfg.Weights.For(d) * components[d].Value
	}
	overall = clip(overall)
	return overall, TierFor(overall, cfg.Tiers)
}

// TierFor returns the highest tier whose threshold score meets or exceeds.
func TierFor(score float64, t TierThresholds) Tier {
	switch {
	case score >= t.Excellent:
		return TierExcellent
	case score >= t.Good:
		return TierGood
	case score >= t.Average:
		return TierAverage
	default:
		return TierNeedsImprovement
	}
}
