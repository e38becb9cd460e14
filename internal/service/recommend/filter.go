package recommend

import (
	"fmt"
	"strings"

	"github.com/zhouzirui/game-guru/backend/internal/analysis/signals"
	"github.com/zhouzirui/game-guru/backend/internal/model/game"
)

// MaxResults caps every recommendation list.
const MaxResults = 3

// Path records which stage of the filter produced a result.
type Path string

const (
	PathStructured Path = "structured"
	PathMood       Path = "mood"
	PathPopular    Path = "popular"
)

// Mode selects which filter stages run.
type Mode string

const (
	// ModeUnified tries structured signals first, then mood buckets, then the popular default.
	ModeUnified Mode = "unified"
	// ModeMood skips structured signals, for surfaces that only understand mood buckets.
	ModeMood Mode = "mood"
)

// ParseMode validates a configured mode name. Empty means ModeUnified.
func ParseMode(raw string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ModeUnified:
		return ModeUnified, nil
	case ModeMood:
		return ModeMood, nil
	default:
		return "", fmt.Errorf("unknown match mode %q", raw)
	}
}

// Result is an ordered, truncated recommendation list.
type Result struct {
	Games []game.Game
	Total int // matches before truncation
	Path  Path
	Mood  signals.Mood
}

var moodPredicates = map[signals.Mood]func(game.Game) bool{
	signals.MoodParty: func(g game.Game) bool {
		return g.HasCategory(game.Party) || g.HasCategory(game.Humor)
	},
	signals.MoodStrategy: func(g game.Game) bool {
		return g.HasCategory(game.Strategy) && g.Difficulty >= 3
	},
	signals.MoodFamily: func(g game.Game) bool {
		return g.HasCategory(game.Family) || g.Difficulty <= 2
	},
	signals.MoodQuick: func(g game.Game) bool {
		return g.PlayTime <= 45
	},
	signals.MoodCooperative: func(g game.Game) bool {
		return g.HasCategory(game.Cooperative)
	},
	signals.MoodTwoPlayer: func(g game.Game) bool {
		return g.SupportsPlayers(2)
	},
}

// Filter applies sig to games in the given mode. Order is catalog order only.
func Filter(mode Mode, sig signals.Signals, games []game.Game) Result {
	if mode != ModeMood && sig.Structured() {
		if matched := filterStructured(sig, games); len(matched) > 0 {
			return truncate(matched, PathStructured, signals.MoodNone)
		}
	}

	if predicate, ok := moodPredicates[sig.Mood]; ok {
		if matched := keep(games, predicate); len(matched) > 0 {
			return truncate(matched, PathMood, sig.Mood)
		}
	}

	return truncate(games, PathPopular, signals.MoodNone)
}

func filterStructured(sig signals.Signals, games []game.Game) []game.Game {
	matched := games
	if sig.PlayerCount != nil {
		n := *sig.PlayerCount
		matched = keep(matched, func(g game.Game) bool { return g.SupportsPlayers(n) })
	}
	if sig.MaxDuration != nil {
		limit := *sig.MaxDuration
		matched = keep(matched, func(g game.Game) bool { return g.PlayTime <= limit })
	}
	if sig.DifficultyCeiling != nil {
		ceiling := *sig.DifficultyCeiling
		matched = keep(matched, func(g game.Game) bool { return g.Difficulty <= ceiling })
	}
	if len(sig.Categories) > 0 {
		matched = keep(matched, func(g game.Game) bool { return g.HasAnyCategory(sig.Categories) })
	}
	return matched
}

func keep(games []game.Game, predicate func(game.Game) bool) []game.Game {
	var out []game.Game
	for _, g := range games {
		if predicate(g) {
			out = append(out, g)
		}
	}
	return out
}

func truncate(games []game.Game, path Path, mood signals.Mood) Result {
	limit := len(games)
	if limit > MaxResults {
		limit = MaxResults
	}
	return Result{
		Games: append([]game.Game(nil), games[:limit]...),
		Total: len(games),
		Path:  path,
		Mood:  mood,
	}
}
