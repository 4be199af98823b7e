package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/peterkuimelis/clasher/internal/config"
	"github.com/peterkuimelis/clasher/internal/game"
)

// positionFlags are the flags shared by the offline commands that describe
// a single game position.
type positionFlags struct {
	cfgPath   *string
	deck      *int
	hand      *string
	name      *string
	side      *string
	elixir    *float64
	opponent  *string
	destroyed *string
}

func addPositionFlags(fs *flag.FlagSet) *positionFlags {
	return &positionFlags{
		cfgPath:   fs.String("config", "clasher.yaml", "path to config file"),
		deck:      fs.Int("deck", 0, "deck number from the decks file (0 = built-in deck)"),
		hand:      fs.String("hand", "", "comma-separated 8-card deck, overrides --deck"),
		name:      fs.String("name", "Player 1", "player name"),
		side:      fs.String("side", "", "friendly or enemy (default: config side)"),
		elixir:    fs.Float64("elixir", game.StartingElixir, "current elixir"),
		opponent:  fs.String("opponent", "", "comma-separated opponent cards seen"),
		destroyed: fs.String("destroyed", "", "destroyed towers, e.g. enemy:left,friendly:king"),
	}
}

type position struct {
	cfg    config.Config
	board  *game.Board
	player *game.Player
	side   game.Side
	hints  []*game.Card
}

func (pf *positionFlags) build() (position, error) {
	var pos position
	cfg, err := loadConfig(*pf.cfgPath)
	if err != nil {
		return pos, err
	}
	pos.cfg = cfg

	catalog, err := cfg.Catalog()
	if err != nil {
		return pos, err
	}

	sideName := *pf.side
	if sideName == "" {
		sideName = cfg.Side
	}
	if pos.side, err = game.ParseSide(sideName); err != nil {
		return pos, err
	}

	var deck []*game.Card
	switch {
	case *pf.hand != "":
		deck, err = catalog.LookupAll(splitList(*pf.hand))
	case *pf.deck > 0:
		_, deck, err = game.DeckByNumber(cfg.Decks, *pf.deck, catalog)
	default:
		deck, err = game.DefaultDeck(catalog)
	}
	if err != nil {
		return pos, fmt.Errorf("load deck: %w", err)
	}
	if pos.player, err = game.NewPlayer(deck, *pf.name); err != nil {
		return pos, err
	}
	pos.player.AddElixir(*pf.elixir - pos.player.Elixir())

	if pos.hints, err = catalog.LookupAll(splitList(*pf.opponent)); err != nil {
		return pos, err
	}

	pos.board = game.DefaultBoard()
	for _, ref := range splitList(*pf.destroyed) {
		sideName, towerName, ok := strings.Cut(ref, ":")
		if !ok {
			return pos, fmt.Errorf("destroyed tower %q: want side:tower", ref)
		}
		s, err := game.ParseSide(sideName)
		if err != nil {
			return pos, err
		}
		t, err := game.ParseTower(towerName)
		if err != nil {
			return pos, err
		}
		if err := pos.board.DestroyTower(s, t); err != nil {
			return pos, err
		}
	}
	return pos, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func joinList(names []string) string {
	return strings.Join(names, ", ")
}
