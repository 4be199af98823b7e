package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/clasher/internal/game"
)

var catalog = game.DefaultCatalog()

func card(name string) *game.Card {
	return catalog.MustLookup(name)
}

// referencePlayer holds Knight, Archers, Giant and Fireball with 5 elixir.
func referencePlayer(t *testing.T) *game.Player {
	t.Helper()
	deck, err := game.DefaultDeck(catalog)
	require.NoError(t, err)
	p, err := game.NewPlayer(deck, "Player 1")
	require.NoError(t, err)
	return p
}

// swarm is a cheap ground troop used as an opposing hint.
func swarm() *game.Card {
	return &game.Card{Name: "Skeleton Army", CardType: game.CardTypeTroop, Cost: 2, Target: game.TargetGround, Damage: 40}
}

func flyer() *game.Card {
	return &game.Card{Name: "Minions", CardType: game.CardTypeTroop, Cost: 3, Target: game.TargetAir, Damage: 80}
}
