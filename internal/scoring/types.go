package scoring

import "time"

type Dimension string

const (
	DimensionResponseTime Dimension = "response_time"
	DimensionQuality      Dimension = "quality"
	DimensionEfficiency   Dimension = "efficiency"
	DimensionConsistency  Dimension = "consistency"
)

// Dimensions lists every scored dimension in canonical order.
var Dimensions = []Dimension{
	DimensionResponseTime,
	DimensionQuality,
	DimensionEfficiency,
	DimensionConsistency,
}

type Confidence string

const (
	ConfidenceFull      Confidence = "full"
	ConfidenceDefaulted Confidence = "defaulted"
)

type Tier string

const (
	TierExcellent        Tier = "excellent"
	TierGood             Tier = "good"
	TierAverage          Tier = "average"
	TierNeedsImprovement Tier = "needs_improvement"
)

type Highlight string

const (
	HighlightTop    Highlight = "top"
	HighlightBottom Highlight = "bottom"
	HighlightNone   Highlight = "none"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type Reason string

const (
	ReasonInsufficientData Reason = "insufficient_data"
	ReasonMissingSentiment Reason = "missing_sentiment"
	ReasonSingleTicket     Reason = "single_ticket"
)

// TicketRecord is one ticket as delivered by the ingestion boundary.
// SentimentScore is nil when no sentiment was computed for the ticket.
type TicketRecord struct {
	Team                string    `json:"team"`
	ResponseTimeMinutes float64   `json:"response_time_minutes"`
	SentimentScore      *float64  `json:"sentiment_score,omitempty"`
	Timestamp           time.Time `json:"timestamp"`
}

// TeamMetricsSummary holds the reduced statistics of a single team.
// The sentiment fields stay nil when the team has no sentiment input.
type TeamMetricsSummary struct {
	TeamID                string   `json:"team_id"`
	TicketCount           int      `json:"ticket_count"`
	MedianResponseMinutes float64  `json:"median_response_minutes"`
	P90ResponseMinutes    float64  `json:"p90_response_minutes"`
	MeanResponseMinutes   float64  `json:"mean_response_minutes"`
	ResponseTimeStdDev    float64  `json:"response_time_stddev"`
	SLAComplianceRate     float64  `json:"sla_compliance_rate"`
	TicketsPerDay         float64  `json:"tickets_per_day"`
	SentimentMean         *float64 `json:"sentiment_mean,omitempty"`
	SentimentPositiveRate *float64 `json:"sentiment_positive_rate,omitempty"`
}

// HasSentiment reports whether any ticket of the team carried a sentiment score.
func (s TeamMetricsSummary) HasSentiment() bool {
	return s.SentimentPositiveRate != nil
}

// CoefficientOfVariation returns stddev / mean, or 0 when the mean is 0.
func (s TeamMetricsSummary) CoefficientOfVariation() float64 {
	if s.MeanResponseMinutes == 0 {
		return 0
	}
	return s.ResponseTimeStdDev / s.MeanResponseMinutes
}

type ComponentScore struct {
	Dimension  Dimension  `json:"dimension"`
	Value      float64    `json:"value"`
	Confidence Confidence `json:"confidence"`
}

// TeamScoreCard is the single published result for one team.
type TeamScoreCard struct {
	TeamID           string                       `json:"team_id"`
	Metrics          TeamMetricsSummary           `json:"metrics"`
	Components       map[Dimension]ComponentScore `json:"components"`
	OverallScore     float64                      `json:"overall_score"`
	Tier             Tier                         `json:"tier"`
	Rank             int                          `json:"rank"`
	Highlight        Highlight                    `json:"highlight"`
	ImprovementAreas []string                     `json:"improvement_areas"`
	Priority         Priority                     `json:"priority"`
}

// Component returns the score for d, or the zero value when absent.
func (c TeamScoreCard) Component(d Dimension) ComponentScore {
	return c.Components[d]
}

type Diagnostic struct {
	TeamID string `json:"team_id"`
	Reason Reason `json:"reason"`
}

// Window is the filtered time range the tickets were selected from.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Days returns the distinct calendar-day span of the window, inclusive of
// both ends, or 0 when the window is unset.
func (w Window) Days() int {
	if w.Start.IsZero() || w.End.IsZero() || w.End.Before(w.Start) {
		return 0
	}
	s := time.Date(w.Start.Year(), w.Start.Month(), w.Start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(w.End.Year(), w.End.Month(), w.End.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1
}

// Dataset is the input of one pipeline invocation.
type Dataset struct {
	Tickets []TicketRecord `json:"tickets"`
	// Roster lists teams expected in the cohort. Roster teams without
	// tickets are reported as insufficient_data instead of disappearing.
	Roster []string `json:"roster,omitempty"`
	Window Window   `json:"window"`
}

type Result struct {
	RunID       string              `json:"run_id"`
	Fingerprint string              `json:"fingerprint"`
	Cards       []TeamScoreCard     `json:"cards"`
	Diagnostics []Diagnostic        `json:"diagnostics"`
	Insights    map[string][]string `json:"insights"`
	Benchmarks  Benchmarks          `json:"benchmarks"`
}

// Card looks up a team's card in the ranked output.
func (r Result) Card(teamID string) (TeamScoreCard, bool) {
	for _, c := range r.Cards {
		if c.TeamID == teamID {
			return c, true
		}
	}
	return TeamScoreCard{}, false
}

// DiagnosticsFor returns the diagnostics recorded for teamID.
func (r Result) DiagnosticsFor(teamID string) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.TeamID == teamID {
			out = append(out, d)
		}
	}
	return out
}
