package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DeckFile represents the top-level YAML structure.
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks"`
}

// DeckEntry represents a single deck in the YAML file.
type DeckEntry struct {
	Name  string      `yaml:"name"`
	Cards []CardEntry `yaml:"cards"`
}

// CardEntry represents a card and its count in a deck. A missing count means 1.
type CardEntry struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

// ParseDeckYAML decodes deck file contents without resolving card names.
func ParseDeckYAML(data []byte) (DeckFile, error) {
	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return df, fmt.Errorf("parse deck YAML: %w", err)
	}
	return df, nil
}

// Resolve expands the entry counts and looks every card up in the catalog.
func (d DeckEntry) Resolve(catalog *Catalog) ([]*Card, error) {
	var cards []*Card
	for _, entry := range d.Cards {
		count := entry.Count
		if count == 0 {
			count = 1
		}
		card, err := catalog.Lookup(entry.Name)
		if err != nil {
			return nil, fmt.Errorf("deck %q: %w", d.Name, err)
		}
		for i := 0; i < count; i++ {
			cards = append(cards, card)
		}
	}
	return cards, nil
}

// ParseDeckFile parses a YAML deck file and returns a map of deck name → card slice.
func ParseDeckFile(path string, catalog *Catalog) (map[string][]*Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	df, err := ParseDeckYAML(data)
	if err != nil {
		return nil, err
	}

	decks := make(map[string][]*Card)
	for _, deck := range df.Decks {
		cards, err := deck.Resolve(catalog)
		if err != nil {
			return nil, err
		}
		decks[deck.Name] = cards
	}

	return decks, nil
}

// DeckByNumber returns the Nth deck (1-indexed) from the deck file.
func DeckByNumber(path string, n int, catalog *Catalog) (string, []*Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}

	df, err := ParseDeckYAML(data)
	if err != nil {
		return "", nil, err
	}

	if n < 1 || n > len(df.Decks) {
		return "", nil, fmt.Errorf("deck %d not found (have %d decks)", n, len(df.Decks))
	}

	deck := df.Decks[n-1]
	cards, err := deck.Resolve(catalog)
	if err != nil {
		return "", nil, err
	}
	return deck.Name, cards, nil
}

// DefaultDeck is the reference eight-card deck used when no deck file is given.
func DefaultDeck(catalog *Catalog) ([]*Card, error) {
	return catalog.LookupAll([]string{
		"Knight", "Archers", "Giant", "Fireball",
		"Musketeer", "Mini P.E.K.K.A", "Hog Rider", "Wizard",
	})
}
