package game

// Seed provides the built-in catalog used when no catalog file is configured.
func Seed() []Game {
	return []Game{
		{
			ID:          "catan",
			Name:        "Catan",
			Description: "Settle a rugged island by trading brick, lumber, wool, grain and ore with your neighbours, then race to build roads, settlements and cities before anyone else reaches ten victory points.",
			Categories:  []Category{Strategy, Family, Competitive},
			MinPlayers:  3,
			MaxPlayers:  4,
			PlayTime:    90,
			Difficulty:  2,
			FunFact:     "The original German edition sold out its first print run within weeks of release in 1995.",
		},
		{
			ID:          "ticket-to-ride",
			Name:        "Ticket to Ride",
			Description: "Collect coloured train cards and claim railway routes across North America, connecting distant cities to complete your secret destination tickets.",
			Categories:  []Category{Family, Strategy},
			MinPlayers:  2,
			MaxPlayers:  5,
			PlayTime:    60,
			Difficulty:  2,
			FunFact:     "The longest route on the board, six trains long, runs between Los Angeles and El Paso.",
		},
		{
			ID:          "codenames",
			Name:        "Codenames",
			Description: "Two rival spymasters give one-word clues so their teammates can identify secret agents hidden in a grid of words, without touching the assassin.",
			Categories:  []Category{Party, Card},
			MinPlayers:  2,
			MaxPlayers:  8,
			PlayTime:    15,
			Difficulty:  1,
		},
		{
			ID:          "pandemic",
			Name:        "Pandemic",
			Description: "Work as a team of specialists to treat infections and discover cures for four diseases spreading across the globe before outbreaks overwhelm the world.",
			Categories:  []Category{Cooperative, Strategy},
			MinPlayers:  2,
			MaxPlayers:  4,
			PlayTime:    45,
			Difficulty:  3,
			FunFact:     "Its designer worked as a software engineer and drew on his wife's nursing background.",
		},
		{
			ID:          "terraforming-mars",
			Name:        "Terraforming Mars",
			Description: "Lead a corporation that raises temperature, oxygen and ocean coverage on Mars while building an engine of cards that rewards long-term planning.",
			Categories:  []Category{Strategy, Card, Competitive},
			MinPlayers:  1,
			MaxPlayers:  5,
			PlayTime:    120,
			Difficulty:  4,
		},
		{
			ID:          "exploding-kittens",
			Name:        "Exploding Kittens",
			Description: "A highly strategic kitty-powered version of Russian roulette: draw cards until someone draws an exploding kitten and is out, unless they can defuse it.",
			Categories:  []Category{Party, Card, Humor},
			MinPlayers:  2,
			MaxPlayers:  5,
			PlayTime:    15,
			Difficulty:  1,
			FunFact:     "It began as the most-backed Kickstarter campaign of its time.",
		},
		{
			ID:          "gloomhaven",
			Name:        "Gloomhaven",
			Description: "A campaign of tactical combat in a persistent fantasy world where mercenaries explore dungeons, make choices and unlock new content over dozens of sessions.",
			Categories:  []Category{Cooperative, Strategy},
			MinPlayers:  1,
			MaxPlayers:  4,
			PlayTime:    120,
			Difficulty:  4,
			FunFact:     "The box weighs close to ten kilograms.",
		},
		{
			ID:          "patchwork",
			Name:        "Patchwork",
			Description: "Compete to build the most aesthetic and high-scoring quilt by buying fabric patches with buttons and time on a shared track.",
			Categories:  []Category{Strategy, Competitive},
			MinPlayers:  2,
			MaxPlayers:  2,
			PlayTime:    30,
			Difficulty:  2,
		},
		{
			ID:          "dixit",
			Name:        "Dixit",
			Description: "Use dreamlike illustrated cards to tell stories and guess which card the storyteller chose, rewarding clues that are neither too obvious nor too obscure.",
			Categories:  []Category{Family, Party, Card},
			MinPlayers:  3,
			MaxPlayers:  6,
			PlayTime:    30,
			Difficulty:  1,
		},
		{
			ID:          "azul",
			Name:        "Azul",
			Description: "Draft colourful tiles from shared factories to decorate the walls of a royal palace, scoring for patterns while avoiding wasted tiles.",
			Categories:  []Category{Family, Strategy},
			MinPlayers:  2,
			MaxPlayers:  4,
			PlayTime:    45,
			Difficulty:  2,
			FunFact:     "The tiles are inspired by Portuguese azulejos.",
		},
		{
			ID:          "the-crew",
			Name:        "The Crew",
			Description: "A cooperative trick-taking game in which astronauts complete fifty missions with limited communication, each more demanding than the last.",
			Categories:  []Category{Cooperative, Card},
			MinPlayers:  2,
			MaxPlayers:  5,
			PlayTime:    20,
			Difficulty:  2,
		},
		{
			ID:          "cards-against-humanity",
			Name:        "Cards Against Humanity",
			Description: "Fill in the blank with the funniest white card in your hand; the judge picks a favourite each round. Strictly for adults with a dark sense of humour.",
			Categories:  []Category{Party, Humor, Card},
			MinPlayers:  4,
			MaxPlayers:  20,
			PlayTime:    30,
			Difficulty:  1,
		},
	}
}
