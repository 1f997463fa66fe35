package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cardsWithScores(scores map[string]float64) []TeamScoreCard {
	cards := make([]TeamScoreCard, 0, len(scores))
	for team, s := range scores {
		cards = append(cards, TeamScoreCard{TeamID: team, OverallScore: s})
	}
	return cards
}

func TestRankSmallCohortHasNoHighlights(t *testing.T) {
	cards := cardsWithScores(map[string]float64{"alpha": 70, "bravo": 85, "charlie": 60})

	ranked := Rank(cards)

	require.Len(t, ranked, 3)
	assert.Equal(t, []string{"bravo", "alpha", "charlie"}, teamsOf(ranked))
	for i, c := range ranked {
		assert.Equal(t, i+1, c.Rank)
		assert.Equal(t, HighlightNone, c.Highlight)
	}

	shown := Highlighted(ranked)
	assert.Equal(t, []string{"bravo", "alpha", "charlie"}, teamsOf(shown))
}

func TestRankHighlightsTopAndBottomTwo(t *testing.T) {
	cards := cardsWithScores(map[string]float64{
		"a": 91, "b": 88, "c": 75, "d": 62, "e": 55, "f": 40,
	})

	ranked := Rank(cards)

	want := map[string]Highlight{
		"a": HighlightTop, "b": HighlightTop,
		"c": HighlightNone, "d": HighlightNone,
		"e": HighlightBottom, "f": HighlightBottom,
	}
	for _, c := range ranked {
		assert.Equal(t, want[c.TeamID], c.Highlight, c.TeamID)
	}
	assert.Equal(t, []string{"a", "b", "e", "f"}, teamsOf(Highlighted(ranked)))
}

func TestRankFiveTeamsNeverOverlaps(t *testing.T) {
	ranked := Rank(cardsWithScores(map[string]float64{"a": 5, "b": 4, "c": 3, "d": 2, "e": 1}))

	assert.Equal(t, HighlightNone, ranked[2].Highlight)
	assert.Len(t, Highlighted(ranked), 4)
}

func TestRankBreaksTiesByTeamID(t *testing.T) {
	cards := []TeamScoreCard{
		{TeamID: "zulu", OverallScore: 80},
		{TeamID: "alpha", OverallScore: 80},
		{TeamID: "mike", OverallScore: 90},
	}

	ranked := Rank(cards)

	assert.Equal(t, []string{"mike", "alpha", "zulu"}, teamsOf(ranked))
	assert.Equal(t, []int{1, 2, 3}, []int{ranked[0].Rank, ranked[1].Rank, ranked[2].Rank})
}

func TestRankDoesNotMutateInput(t *testing.T) {
	cards := []TeamScoreCard{{TeamID: "b", OverallScore: 1}, {TeamID: "a", OverallScore: 2}}

	_ = Rank(cards)

	assert.Equal(t, "b", cards[0].TeamID)
	assert.Zero(t, cards[0].Rank)
}

func TestRankEmpty(t *testing.T) {
	assert.Empty(t, Rank(nil))
	assert.Empty(t, Highlighted(nil))
}

func teamsOf(cards []TeamScoreCard) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.TeamID
	}
	return ids
}
