package recommend

import (
	"fmt"
	"strings"

	"github.com/zhouzirui/game-guru/backend/internal/analysis/signals"
	"github.com/zhouzirui/game-guru/backend/internal/model/game"
)

// DefaultSynopsisLimit is the rune budget for a per-game synopsis.
const DefaultSynopsisLimit = 100

const (
	LeadStructured = "Based on what you're looking for, I recommend:"
	LeadPopular    = "Based on popular choices, here are some excellent games to consider:"
	LeadEmpty      = "I couldn't find any games in the catalog right now. Please check back later!"
	Greeting       = "Hi there! I'm your board game assistant. Tell me what kind of games you enjoy, how many players you have, or how much time you want to spend, and I'll recommend some great games for you!"
	Apology        = "Sorry, something went wrong while I was thinking. Could you tell me again what kind of game you'd like?"
)

var moodLeads = map[signals.Mood]string{
	signals.MoodParty:       "Perfect! For party games that guarantee laughs, I recommend:",
	signals.MoodStrategy:    "Excellent choice! For strategic games that challenge your mind, I suggest:",
	signals.MoodFamily:      "Great for family time! These games are perfect for all ages:",
	signals.MoodQuick:       "Perfect for shorter gaming sessions! These games are quick but engaging:",
	signals.MoodCooperative: "Love working together! These cooperative games are fantastic:",
	signals.MoodTwoPlayer:   "Perfect for two! These games are excellent for couples or pairs:",
}

// LeadFor picks the lead template matching how a result was produced.
func LeadFor(res Result) string {
	switch res.Path {
	case PathStructured:
		return LeadStructured
	case PathMood:
		if lead, ok := moodLeads[res.Mood]; ok {
			return lead
		}
		return LeadStructured
	default:
		if len(res.Games) == 0 {
			return LeadEmpty
		}
		return LeadPopular
	}
}

// Unit is one display-ready message body produced by the formatter.
type Unit struct {
	Text    string `json:"text"`
	GameRef string `json:"gameRef,omitempty"`
}

// Formatter renders recommendation results into message units.
type Formatter struct {
	SynopsisLimit int
}

// NewFormatter returns a Formatter; a non-positive limit falls back to DefaultSynopsisLimit.
func NewFormatter(synopsisLimit int) Formatter {
	if synopsisLimit <= 0 {
		synopsisLimit = DefaultSynopsisLimit
	}
	return Formatter{SynopsisLimit: synopsisLimit}
}

// Format returns the lead unit followed by one unit per recommended game.
func (f Formatter) Format(lead string, res Result) []Unit {
	units := make([]Unit, 0, len(res.Games)+1)

	if res.Path != PathPopular && res.Total > MaxResults {
		lead = fmt.Sprintf("%s\n(I found %d games that match your criteria. Check out the game list to see more!)", lead, res.Total)
	}
	units = append(units, Unit{Text: lead})

	for _, g := range res.Games {
		units = append(units, Unit{Text: f.describe(g), GameRef: g.ID})
	}
	return units
}

func (f Formatter) describe(g game.Game) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("🎯 **%s** - %s", g.Name, Synopsis(g.Description, f.SynopsisLimit)))
	builder.WriteString(fmt.Sprintf("\nPlayers: %d-%d, Time: %d min, Difficulty: %d/%d", g.MinPlayers, g.MaxPlayers, g.PlayTime, g.Difficulty, game.MaxDifficulty))
	if fact := strings.TrimSpace(g.FunFact); fact != "" {
		builder.WriteString("\nFun fact: ")
		builder.WriteString(fact)
	}
	return builder.String()
}

// Synopsis cuts text to at most limit runes, appending "..." when anything was removed.
func Synopsis(text string, limit int) string {
	trimmed := strings.TrimSpace(text)
	runes := []rune(trimmed)
	if limit <= 0 || len(runes) <= limit {
		return trimmed
	}
	return strings.TrimRight(string(runes[:limit]), " ,.;:") + "..."
}
