package recommend

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/game-guru/backend/internal/analysis/signals"
	"github.com/zhouzirui/game-guru/backend/internal/model/game"
)

func scenarioCatalog() []game.Game {
	return []game.Game{
		{ID: "A", Name: "Alpha", MinPlayers: 2, MaxPlayers: 4, PlayTime: 60, Difficulty: 2, Categories: []game.Category{game.Family}},
		{ID: "B", Name: "Bravo", MinPlayers: 1, MaxPlayers: 8, PlayTime: 120, Difficulty: 4, Categories: []game.Category{game.Strategy}},
		{ID: "C", Name: "Charlie", MinPlayers: 3, MaxPlayers: 6, PlayTime: 20, Difficulty: 1, Categories: []game.Category{game.Party}},
	}
}

func ids(games []game.Game) []string {
	out := make([]string, 0, len(games))
	for _, g := range games {
		out = append(out, g.ID)
	}
	return out
}

func largeCatalog(n int) []game.Game {
	games := make([]game.Game, n)
	for i := range games {
		games[i] = game.Game{
			ID:         fmt.Sprintf("g%02d", i),
			Name:       fmt.Sprintf("Game %d", i),
			MinPlayers: 1,
			MaxPlayers: 10,
			PlayTime:   30,
			Difficulty: 1 + i%5,
			Categories: []game.Category{game.Categories[i%len(game.Categories)]},
		}
	}
	return games
}

func TestFilterScenarioThreePlayersEasy(t *testing.T) {
	sig := signals.Extract("I want something for 3 players that's easy")
	res := Filter(ModeUnified, sig, scenarioCatalog())

	assert.Equal(t, PathStructured, res.Path)
	assert.Equal(t, []string{"A", "C"}, ids(res.Games))
	assert.Equal(t, 2, res.Total)
}

func TestFilterNeverReturnsMoreThanMax(t *testing.T) {
	catalog := largeCatalog(25)
	inputs := []string{
		"", "hello", "4 players", "2 hours", "easy", "party", "cards together",
		"quick", "for two", "strategy thinking", "10 people, 3 hours, hard, competitive",
	}
	for _, mode := range []Mode{ModeUnified, ModeMood} {
		for _, input := range inputs {
			res := Filter(mode, signals.Extract(input), catalog)
			assert.LessOrEqual(t, len(res.Games), MaxResults, "%s/%q", mode, input)
		}
	}
}

func TestFilterFallbackReturnsFirstThree(t *testing.T) {
	catalog := largeCatalog(10)
	res := Filter(ModeUnified, signals.Signals{}, catalog)

	assert.Equal(t, PathPopular, res.Path)
	assert.Equal(t, []string{"g00", "g01", "g02"}, ids(res.Games))

	res = Filter(ModeUnified, signals.Signals{}, catalog[:2])
	assert.Equal(t, []string{"g00", "g01"}, ids(res.Games))
}

func TestFilterEmptyCatalog(t *testing.T) {
	for _, input := range []string{"", "3 players easy", "party"} {
		res := Filter(ModeUnified, signals.Extract(input), nil)
		assert.Empty(t, res.Games)
		assert.Equal(t, PathPopular, res.Path)
	}
}

func TestFilterCategoriesAreOred(t *testing.T) {
	sig := signals.Extract("strategy or party")
	res := Filter(ModeUnified, sig, scenarioCatalog())

	assert.Equal(t, PathStructured, res.Path)
	assert.Equal(t, []string{"B", "C"}, ids(res.Games))
}

func TestFilterConstraintsAreAnded(t *testing.T) {
	sig := signals.Extract("5 players, under 30 minutes")
	res := Filter(ModeUnified, sig, scenarioCatalog())

	assert.Equal(t, PathStructured, res.Path)
	assert.Equal(t, []string{"C"}, ids(res.Games))
}

func TestFilterStructuredMissFallsThroughToMood(t *testing.T) {
	// 12 players fits nothing; "funny" still selects the party bucket.
	sig := signals.Extract("12 players, something funny")
	res := Filter(ModeUnified, sig, scenarioCatalog())

	assert.Equal(t, PathMood, res.Path)
	assert.Equal(t, signals.MoodParty, res.Mood)
	assert.Equal(t, []string{"C"}, ids(res.Games))
}

func TestFilterStructuredMissWithoutMoodIsPopular(t *testing.T) {
	res := Filter(ModeUnified, signals.Extract("11 people"), scenarioCatalog())

	assert.Equal(t, PathPopular, res.Path)
	assert.Equal(t, []string{"A", "B", "C"}, ids(res.Games))
}

func TestFilterTwelvePlayersHitsTwoPlayerKeyword(t *testing.T) {
	// "12 players" contains "2 player" as a substring.
	res := Filter(ModeUnified, signals.Extract("12 players"), scenarioCatalog())

	assert.Equal(t, PathMood, res.Path)
	assert.Equal(t, signals.MoodTwoPlayer, res.Mood)
	assert.Equal(t, []string{"A", "B"}, ids(res.Games))
}

func TestFilterMoodPredicates(t *testing.T) {
	catalog := game.Seed()
	cases := []struct {
		input string
		mood  signals.Mood
		check func(game.Game) bool
	}{
		{"funny", signals.MoodParty, func(g game.Game) bool { return g.HasCategory(game.Party) || g.HasCategory(game.Humor) }},
		{"thinking", signals.MoodStrategy, func(g game.Game) bool { return g.HasCategory(game.Strategy) && g.Difficulty >= 3 }},
		{"for the kids", signals.MoodFamily, func(g game.Game) bool { return g.HasCategory(game.Family) || g.Difficulty <= 2 }},
		{"short", signals.MoodQuick, func(g game.Game) bool { return g.PlayTime <= 45 }},
		{"team", signals.MoodCooperative, func(g game.Game) bool { return g.HasCategory(game.Cooperative) }},
		{"couple", signals.MoodTwoPlayer, func(g game.Game) bool { return g.SupportsPlayers(2) }},
	}
	for _, tc := range cases {
		t.Run(string(tc.mood), func(t *testing.T) {
			res := Filter(ModeMood, signals.Extract(tc.input), catalog)
			require.Equal(t, PathMood, res.Path)
			assert.Equal(t, tc.mood, res.Mood)
			require.NotEmpty(t, res.Games)
			for _, g := range res.Games {
				assert.True(t, tc.check(g), g.ID)
			}
		})
	}
}

func TestFilterMoodModeIgnoresStructuredSignals(t *testing.T) {
	sig := signals.Extract("3 players, something easy")
	res := Filter(ModeMood, sig, scenarioCatalog())

	assert.Equal(t, PathPopular, res.Path)
	assert.Equal(t, []string{"A", "B", "C"}, ids(res.Games))
}

func TestFilterTotalCountsBeforeTruncation(t *testing.T) {
	res := Filter(ModeUnified, signals.Extract("4 players"), largeCatalog(8))

	assert.Equal(t, 8, res.Total)
	assert.Len(t, res.Games, MaxResults)
}

func TestParseMode(t *testing.T) {
	mode, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeUnified, mode)

	mode, err = ParseMode(" MOOD ")
	require.NoError(t, err)
	assert.Equal(t, ModeMood, mode)

	_, err = ParseMode("fuzzy")
	assert.Error(t, err)
}
