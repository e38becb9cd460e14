package signals

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/zhouzirui/game-guru/backend/internal/model/game"
)

// Intent marks conversational requests that carry no filter of their own.
type Intent string

const (
	IntentNone      Intent = ""
	IntentRecommend Intent = "recommend"
	IntentGreeting  Intent = "greeting"
)

// Signals holds the filter hints parsed out of one user message.
// Nil pointers mean the pattern was absent.
type Signals struct {
	PlayerCount       *int            `json:"playerCount,omitempty"`
	MaxDuration       *int            `json:"maxDurationMinutes,omitempty"`
	DifficultyCeiling *int            `json:"difficultyCeiling,omitempty"`
	Categories        []game.Category `json:"categories,omitempty"`
	Mood              Mood            `json:"mood,omitempty"`
	Intent            Intent          `json:"intent,omitempty"`
}

// Structured reports whether any filter constraint was extracted.
func (s Signals) Structured() bool {
	return s.PlayerCount != nil || s.MaxDuration != nil || s.DifficultyCeiling != nil || len(s.Categories) > 0
}

var (
	playerPattern   = regexp.MustCompile(`(\d+)\s*(player|people|person|friend)`)
	durationPattern = regexp.MustCompile(`(\d+)\s*(minute|hour|min)`)
	greetingPattern = regexp.MustCompile(`\b(hello|hi|hey)\b`)
)

type difficultyFamily struct {
	keywords []string
	ceiling  int
}

// Checked in order; the first family with a hit sets the ceiling.
var difficultyFamilies = []difficultyFamily{
	{keywords: []string{"easy", "simple", "beginner"}, ceiling: 2},
	{keywords: []string{"medium", "moderate"}, ceiling: 3},
	{keywords: []string{"hard", "difficult", "complex"}, ceiling: 4},
}

type categoryFamily struct {
	keywords []string
	category game.Category
}

var categoryFamilies = []categoryFamily{
	{keywords: []string{"strategy", "strategic"}, category: game.Strategy},
	{keywords: []string{"family", "kid", "children"}, category: game.Family},
	{keywords: []string{"party", "fun", "laugh"}, category: game.Party},
	{keywords: []string{"card", "cards"}, category: game.Card},
	{keywords: []string{"cooperative", "coop", "together"}, category: game.Cooperative},
	{keywords: []string{"competitive", "versus", "against"}, category: game.Competitive},
}

var recommendKeywords = []string{"recommend", "suggest"}

// Extract parses free text into Signals. It never fails; unmatched patterns stay unset.
func Extract(text string) Signals {
	normalized := strings.ToLower(text)

	sig := Signals{
		PlayerCount:       extractPlayerCount(normalized),
		MaxDuration:       extractDuration(normalized),
		DifficultyCeiling: extractDifficulty(normalized),
		Categories:        extractCategories(normalized),
		Mood:              Classify(normalized),
	}

	switch {
	case containsAny(normalized, recommendKeywords):
		sig.Intent = IntentRecommend
	case greetingPattern.MatchString(normalized):
		sig.Intent = IntentGreeting
	}
	return sig
}

func extractPlayerCount(normalized string) *int {
	match := playerPattern.FindStringSubmatch(normalized)
	if match == nil {
		return nil
	}
	return positiveInt(match[1])
}

func extractDuration(normalized string) *int {
	match := durationPattern.FindStringSubmatch(normalized)
	if match == nil {
		return nil
	}
	minutes := positiveInt(match[1])
	if minutes == nil {
		return nil
	}
	if strings.HasPrefix(match[2], "hour") {
		scaled := *minutes * 60
		if scaled/60 != *minutes {
			return nil
		}
		minutes = &scaled
	}
	return minutes
}

func extractDifficulty(normalized string) *int {
	for _, family := range difficultyFamilies {
		if containsAny(normalized, family.keywords) {
			ceiling := family.ceiling
			return &ceiling
		}
	}
	return nil
}

func extractCategories(normalized string) []game.Category {
	var categories []game.Category
	for _, family := range categoryFamilies {
		if containsAny(normalized, family.keywords) {
			categories = append(categories, family.category)
		}
	}
	return categories
}

func positiveInt(digits string) *int {
	val, err := strconv.Atoi(digits)
	if err != nil || val <= 0 {
		return nil
	}
	return &val
}

func containsAny(normalized string, keywords []string) bool {
	for _, word := range keywords {
		if strings.Contains(normalized, word) {
			return true
		}
	}
	return false
}
