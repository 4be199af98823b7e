package mcp

import (
	"errors"
	"fmt"
	"sync"

	"github.com/peterkuimelis/clasher/internal/game"
)

var errNoMatch = errors.New("no match is running, use start_match first")

// MatchController owns the single active match of an MCP process and the
// deck sources used to start one.
type MatchController struct {
	mu        sync.Mutex
	active    *GameSession
	decksFile string
	catalog   *game.Catalog
}

// NewMatchController creates a controller reading decks from decksFile.
// A nil catalog means the built-in cards.
func NewMatchController(decksFile string, catalog *game.Catalog) *MatchController {
	if catalog == nil {
		catalog = game.DefaultCatalog()
	}
	return &MatchController{decksFile: decksFile, catalog: catalog}
}

// Catalog returns the card catalog matches are built from.
func (c *MatchController) Catalog() *game.Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.catalog
}

// StartRequest selects the deck and seat of a new match. Deck names take
// precedence over DeckNumber; neither means the default deck.
type StartRequest struct {
	Deck       []string
	DeckNumber int
	Name       string
	Side       string
}

// Start begins a new match, replacing any running one.
func (c *MatchController) Start(req StartRequest) (*GameSession, error) {
	side, err := game.ParseSide(req.Side)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var deck []*game.Card
	switch {
	case len(req.Deck) > 0:
		deck, err = c.catalog.LookupAll(req.Deck)
	case req.DeckNumber > 0:
		_, deck, err = game.DeckByNumber(c.decksFile, req.DeckNumber, c.catalog)
	default:
		deck, err = game.DefaultDeck(c.catalog)
	}
	if err != nil {
		return nil, fmt.Errorf("load deck: %w", err)
	}

	sess, err := NewGameSession(c.catalog, deck, req.Name, side)
	if err != nil {
		return nil, err
	}
	c.active = sess
	return sess, nil
}

// Active returns the running match or errNoMatch.
func (c *MatchController) Active() (*GameSession, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return nil, errNoMatch
	}
	return c.active, nil
}

// Stop discards the running match.
func (c *MatchController) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = nil
}
