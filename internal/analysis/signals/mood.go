package signals

import "strings"

// Mood is the coarse intent bucket used when no structured signal matched.
type Mood string

const (
	MoodNone        Mood = ""
	MoodParty       Mood = "party"
	MoodStrategy    Mood = "strategy"
	MoodFamily      Mood = "family"
	MoodQuick       Mood = "quick"
	MoodCooperative Mood = "cooperative"
	MoodTwoPlayer   Mood = "two-player"
)

type moodBucket struct {
	mood     Mood
	keywords []string
}

// Priority order matters: the first bucket with a hit wins.
var moodBuckets = []moodBucket{
	{mood: MoodParty, keywords: []string{"party", "funny", "humor"}},
	{mood: MoodStrategy, keywords: []string{"strategy", "complex", "thinking"}},
	{mood: MoodFamily, keywords: []string{"family", "kids", "children"}},
	{mood: MoodQuick, keywords: []string{"quick", "short", "30"}},
	{mood: MoodCooperative, keywords: []string{"cooperative", "together", "team"}},
	{mood: MoodTwoPlayer, keywords: []string{"two", "2 player", "couple"}},
}

// Moods lists every bucket in priority order.
func Moods() []Mood {
	moods := make([]Mood, len(moodBuckets))
	for i, b := range moodBuckets {
		moods[i] = b.mood
	}
	return moods
}

// Classify returns the highest-priority mood bucket matching text, or MoodNone.
func Classify(text string) Mood {
	normalized := strings.ToLower(text)
	for _, bucket := range moodBuckets {
		if containsAny(normalized, bucket.keywords) {
			return bucket.mood
		}
	}
	return MoodNone
}
