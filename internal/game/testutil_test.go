package game

import (
	"os"
	"path/filepath"
	"testing"
)

// referenceDeck returns the eight-card deck most tests play with:
// Knight, Archers, Giant, Fireball | Musketeer, Mini P.E.K.K.A, Hog Rider, Wizard.
func referenceDeck(t *testing.T, catalog *Catalog) []*Card {
	t.Helper()
	deck, err := DefaultDeck(catalog)
	if err != nil {
		t.Fatalf("DefaultDeck: %v", err)
	}
	return deck
}

func newTestPlayer(t *testing.T) (*Player, *Catalog) {
	t.Helper()
	catalog := DefaultCatalog()
	p, err := NewPlayer(referenceDeck(t, catalog), "Player 1")
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	return p, catalog
}

func handNames(p *Player) []string {
	var names []string
	for _, c := range p.Hand() {
		names = append(names, c.Name)
	}
	return names
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
