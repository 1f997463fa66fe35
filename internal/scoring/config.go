package scoring

import (
	"errors"
	"fmt"
	"math"
)

const weightTolerance = 1e-6

var (
	ErrInvalidConfiguration = errors.New("invalid scoring configuration")
	ErrInsufficientData     = errors.New("insufficient data")
	ErrInvalidTicket        = errors.New("invalid ticket record")
)

// Weights defines the relative importance of each dimension in the composite.
// They must sum to 1.0.
type Weights struct {
	ResponseTime float64 `yaml:"response_time" json:"response_time"`
	Quality      float64 `yaml:"quality" json:"quality"`
	Efficiency   float64 `yaml:"efficiency" json:"efficiency"`
	Consistency  float64 `yaml:"consistency" json:"consistency"`
}

func (w Weights) Sum() float64 {
	return w.ResponseTime + w.Quality + w.Efficiency + w.Consistency
}

// For returns the weight of dimension d.
func (w Weights) For(d Dimension) float64 {
	switch d {
	case DimensionResponseTime:
		return w.ResponseTime
	case DimensionQuality:
		return w.Quality
	case DimensionEfficiency:
		return w.Efficiency
	case DimensionConsistency:
		return w.Consistency
	default:
		return 0
	}
}

func (w Weights) Validate() error {
	for _, d := range Dimensions {
		v := w.For(d)
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("negative weight for %s: %f", d, v)
		}
	}
	if math.Abs(w.Sum()-1.0) > weightTolerance {
		return fmt.Errorf("weights sum to %.6f, must sum to 1.0", w.Sum())
	}
	return nil
}

// TierThresholds are the minimum overall scores of each named tier.
type TierThresholds struct {
	Excellent float64 `yaml:"excellent" json:"excellent"`
	Good      float64 `yaml:"good" json:"good"`
	Average   float64 `yaml:"average" json:"average"`
}

func (t TierThresholds) Validate() error {
	if !(t.Excellent > t.Good && t.Good > t.Average) {
		return fmt.Errorf("tier thresholds must be strictly descending, got %.2f/%.2f/%.2f",
			t.Excellent, t.Good, t.Average)
	}
	if t.Average < 0 || t.Excellent > 100 {
		return fmt.Errorf("tier thresholds must lie within [0,100]")
	}
	return nil
}

// Curves holds the breakpoints of the piecewise scoring functions.
type Curves struct {
	// Median response minutes at which the response-time curve reaches
	// 90, 80 and 60 points.
	ResponseExcellentMinutes  float64 `yaml:"response_excellent_minutes" json:"response_excellent_minutes"`
	ResponseGoodMinutes       float64 `yaml:"response_good_minutes" json:"response_good_minutes"`
	ResponseAcceptableMinutes float64 `yaml:"response_acceptable_minutes" json:"response_acceptable_minutes"`
	ResponseFloor             float64 `yaml:"response_floor" json:"response_floor"`
	// Share of the response-time score taken from SLA compliance.
	SLABlend float64 `yaml:"sla_blend" json:"sla_blend"`

	// Tickets per day at which the efficiency curve reaches 100, 80, 60 and 40.
	EfficiencyExcellentPerDay float64 `yaml:"efficiency_excellent_per_day" json:"efficiency_excellent_per_day"`
	EfficiencyGoodPerDay      float64 `yaml:"efficiency_good_per_day" json:"efficiency_good_per_day"`
	EfficiencyAveragePerDay   float64 `yaml:"efficiency_average_per_day" json:"efficiency_average_per_day"`
	EfficiencyLowPerDay       float64 `yaml:"efficiency_low_per_day" json:"efficiency_low_per_day"`
	EfficiencyFloor           float64 `yaml:"efficiency_floor" json:"efficiency_floor"`

	// Coefficient-of-variation bands for the consistency curve.
	ConsistencyExcellentCV float64 `yaml:"consistency_excellent_cv" json:"consistency_excellent_cv"`
	ConsistencyGoodCV      float64 `yaml:"consistency_good_cv" json:"consistency_good_cv"`
	ConsistencyAverageCV   float64 `yaml:"consistency_average_cv" json:"consistency_average_cv"`
	ConsistencyFloor       float64 `yaml:"consistency_floor" json:"consistency_floor"`

	NeutralQuality float64 `yaml:"neutral_quality" json:"neutral_quality"`
}

func DefaultCurves() Curves {
	return Curves{
		ResponseExcellentMinutes:  15,
		ResponseGoodMinutes:       30,
		ResponseAcceptableMinutes: 60,
		ResponseFloor:             40,
		SLABlend:                  0.4,

		EfficiencyExcellentPerDay: 10,
		EfficiencyGoodPerDay:      5,
		EfficiencyAveragePerDay:   2,
		EfficiencyLowPerDay:       1,
		EfficiencyFloor:           20,

		ConsistencyExcellentCV: 0.5,
		ConsistencyGoodCV:      1.0,
		ConsistencyAverageCV:   1.5,
		ConsistencyFloor:       40,

		NeutralQuality: 50,
	}
}

func (c Curves) Validate() error {
	if !(0 < c.ResponseExcellentMinutes && c.ResponseExcellentMinutes < c.ResponseGoodMinutes &&
		c.ResponseGoodMinutes < c.ResponseAcceptableMinutes) {
		return fmt.Errorf("response-time breakpoints must be positive and ascending")
	}
	if !(c.EfficiencyExcellentPerDay > c.EfficiencyGoodPerDay && c.EfficiencyGoodPerDay > c.EfficiencyAveragePerDay &&
		c.EfficiencyAveragePerDay > c.EfficiencyLowPerDay && c.EfficiencyLowPerDay > 0) {
		return fmt.Errorf("efficiency breakpoints must be positive and descending")
	}
	if !(0 < c.ConsistencyExcellentCV && c.ConsistencyExcellentCV < c.ConsistencyGoodCV &&
		c.ConsistencyGoodCV < c.ConsistencyAverageCV) {
		return fmt.Errorf("consistency CV bands must be positive and ascending")
	}
	if c.SLABlend < 0 || c.SLABlend > 1 {
		return fmt.Errorf("sla blend %.2f outside [0,1]", c.SLABlend)
	}
	for name, v := range map[string]float64{
		"response_floor":    c.ResponseFloor,
		"efficiency_floor":  c.EfficiencyFloor,
		"consistency_floor": c.ConsistencyFloor,
		"neutral_quality":   c.NeutralQuality,
	} {
		if v < 0 || v > 100 {
			return fmt.Errorf("%s %.2f outside [0,100]", name, v)
		}
	}
	return nil
}

// Config parameterises the whole pipeline. Two runs with equal Config and
// equal Dataset produce identical cards.
type Config struct {
	SLAThresholdMinutes float64        `yaml:"sla_threshold_minutes" json:"sla_threshold_minutes"`
	Weights             Weights        `yaml:"weights" json:"weights"`
	Tiers               TierThresholds `yaml:"tier_thresholds" json:"tier_thresholds"`
	Curves              Curves         `yaml:"curves" json:"curves"`
	// WindowDays is used for tickets_per_day when the dataset carries no window.
	WindowDays int `yaml:"window_days" json:"window_days"`
	// A ticket counts as positive when its sentiment is strictly above this.
	PositiveSentimentThreshold float64 `yaml:"positive_sentiment_threshold" json:"positive_sentiment_threshold"`
	// MaxParallelism bounds the per-team fan-out. Zero means GOMAXPROCS.
	MaxParallelism int `yaml:"max_parallelism" json:"max_parallelism"`
}

func DefaultConfig() Config {
	return Config{
		SLAThresholdMinutes: 60,
		Weights: Weights{
			ResponseTime: 0.35,
			Quality:      0.25,
			Efficiency:   0.25,
			Consistency:  0.15,
		},
		Tiers: TierThresholds{
			Excellent: 90,
			Good:      75,
			Average:   60,
		},
		Curves:                     DefaultCurves(),
		WindowDays:                 30,
		PositiveSentimentThreshold: 0.05,
	}
}

// Validate reports every problem wrapped in ErrInvalidConfiguration.
func (c Config) Validate() error {
	var errs []error
	if !(c.SLAThresholdMinutes > 0) {
		errs = append(errs, fmt.Errorf("sla threshold must be positive, got %f", c.SLAThresholdMinutes))
	}
	if err := c.Weights.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Tiers.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Curves.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.WindowDays < 1 {
		errs = append(errs, fmt.Errorf("window days must be at least 1, got %d", c.WindowDays))
	}
	if c.PositiveSentimentThreshold < -1 || c.PositiveSentimentThreshold >= 1 {
		errs = append(errs, fmt.Errorf("positive sentiment threshold %.2f outside [-1,1)", c.PositiveSentimentThreshold))
	}
	if c.MaxParallelism < 0 {
		errs = append(errs, fmt.Errorf("max parallelism must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, errors.Join(errs...))
	}
	return nil
}
