package game

import (
	"errors"
	"fmt"
	"strings"
)

// Category is a tag from the catalog's controlled vocabulary.
type Category string

const (
	Strategy    Category = "Strategy"
	Family      Category = "Family"
	Party       Category = "Party"
	Cooperative Category = "Cooperative"
	Card        Category = "Card"
	Competitive Category = "Competitive"
	Humor       Category = "Humor"
)

// Categories lists every known tag in display order.
var Categories = []Category{Strategy, Family, Party, Cooperative, Card, Competitive, Humor}

const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

var ErrInvalidGame = errors.New("invalid game")

// ParseCategory matches a tag case-insensitively against the vocabulary.
func ParseCategory(raw string) (Category, bool) {
	normalized := strings.TrimSpace(raw)
	for _, c := range Categories {
		if strings.EqualFold(string(c), normalized) {
			return c, true
		}
	}
	return "", false
}

// Game is one immutable catalog record.
type Game struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Categories  []Category `json:"category"`
	MinPlayers  int        `json:"minPlayers"`
	MaxPlayers  int        `json:"maxPlayers"`
	PlayTime    int        `json:"playTime"` // minutes
	Difficulty  int        `json:"difficulty"`
	FunFact     string     `json:"funFact,omitempty"`
}

// HasCategory reports exact tag membership.
func (g Game) HasCategory(c Category) bool {
	for _, own := range g.Categories {
		if own == c {
			return true
		}
	}
	return false
}

// HasAnyCategory reports whether g shares at least one tag with wanted.
func (g Game) HasAnyCategory(wanted []Category) bool {
	for _, c := range wanted {
		if g.HasCategory(c) {
			return true
		}
	}
	return false
}

// SupportsPlayers reports whether n falls within the inclusive player range.
func (g Game) SupportsPlayers(n int) bool {
	return g.MinPlayers <= n && n <= g.MaxPlayers
}

// Validate checks the record invariants a catalog relies on.
func (g Game) Validate() error {
	if strings.TrimSpace(g.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidGame)
	}
	if strings.TrimSpace(g.Name) == "" {
		return fmt.Errorf("%w: game %s: name is required", ErrInvalidGame, g.ID)
	}
	if g.MinPlayers < 1 || g.MinPlayers > g.MaxPlayers {
		return fmt.Errorf("%w: game %s: player range %d-%d", ErrInvalidGame, g.ID, g.MinPlayers, g.MaxPlayers)
	}
	if g.PlayTime <= 0 {
		return fmt.Errorf("%w: game %s: play time must be positive", ErrInvalidGame, g.ID)
	}
	if g.Difficulty < MinDifficulty || g.Difficulty > MaxDifficulty {
		return fmt.Errorf("%w: game %s: difficulty %d outside %d-%d", ErrInvalidGame, g.ID, g.Difficulty, MinDifficulty, MaxDifficulty)
	}
	for _, c := range g.Categories {
		if _, ok := ParseCategory(string(c)); !ok {
			return fmt.Errorf("%w: game %s: unknown category %q", ErrInvalidGame, g.ID, c)
		}
	}
	return nil
}
