package game

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadFile reads a JSON array of games and validates every record.
func LoadFile(path string) ([]Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Decode(data)
}

// Decode parses a JSON catalog, normalising category spelling and rejecting duplicate ids.
func Decode(data []byte) ([]Game, error) {
	var games []Game
	if err := json.Unmarshal(data, &games); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(games))
	for i := range games {
		for j, raw := range games[i].Categories {
			if c, ok := ParseCategory(string(raw)); ok {
				games[i].Categories[j] = c
			}
		}
		if err := games[i].Validate(); err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}
		if _, dup := seen[games[i].ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %s", ErrInvalidGame, games[i].ID)
		}
		seen[games[i].ID] = struct{}{}
	}
	return games, nil
}
