package game

// Catalog exposes read-only game retrieval to the recommendation core and HTTP handlers.
type Catalog interface {
	List() []Game
	FindByID(id string) (Game, bool)
}

// MemoryStore implements Catalog with an in-memory slice fixed at construction.
type MemoryStore struct {
	items []Game
}

// NewMemoryStore returns a MemoryStore preloaded with a copy of the supplied games.
func NewMemoryStore(items []Game) *MemoryStore {
	copied := make([]Game, len(items))
	for i, item := range items {
		item.Categories = append([]Category(nil), item.Categories...)
		copied[i] = item
	}
	return &MemoryStore{items: copied}
}

// List returns the games in catalog order.
func (s *MemoryStore) List() []Game {
	return append([]Game(nil), s.items...)
}

// FindByID looks up a game by identifier.
func (s *MemoryStore) FindByID(id string) (Game, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Game{}, false
}

// Len returns the number of games in the catalog.
func (s *MemoryStore) Len() int {
	return len(s.items)
}
