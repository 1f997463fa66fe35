package scoring

import "sort"

const (
	highlightMinTeams = 5
	highlightCount    = 2
)

// Rank orders cards by overall score, breaking ties by team id, assigns
// ranks 1..N and marks the top and bottom two when more than four teams
// compete. The input slice is not modified.
func Rank(cards []TeamScoreCard) []TeamScoreCard {
	ranked := make([]TeamScoreCard, len(cards))
	copy(ranked, cards)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].OverallScore != ranked[j].OverallScore {
			return ranked[i].OverallScore > ranked[j].OverallScore
		}
		return ranked[i].TeamID < ranked[j].TeamID
	})

	n := len(ranked)
	for i := range ranked {
		ranked[i].Rank = i + 1
		ranked[i].Highlight = HighlightNone
		if n < highlightMinTeams {
			continue
		}
		switch {
		case i < highlightCount:
			ranked[i].Highlight = HighlightTop
		case i >= n-highlightCount:
			ranked[i].Highlight = HighlightBottom
		}
	}
	return ranked
}

// Highlighted returns the cards marked top followed by those marked bottom.
// With four or fewer teams nothing is highlighted and every card is
// returned once in rank order.
func Highlighted(ranked []TeamScoreCard) []TeamScoreCard {
	if len(ranked) < highlightMinTeams {
		out := make([]TeamScoreCard, len(ranked))
		copy(out, ranked)
		return out
	}
	var top, bottom []TeamScoreCard
	for _, c := range ranked {
		switch c.Highlight {
		case HighlightTop:
			top = append(top, c)
		case HighlightBottom:
			bottom = append(bottom, c)
		}
	}
	return append(top, bottom...)
}
