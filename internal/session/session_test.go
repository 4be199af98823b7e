package session

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/clasher/internal/game"
	"github.com/peterkuimelis/clasher/internal/log"
)

var referenceDeck = []string{
	"Knight", "Archers", "Giant", "Fireball",
	"Musketeer", "Mini P.E.K.K.A", "Hog Rider", "Wizard",
}

func newTestMatch(t *testing.T) (*Match, *log.MemoryLogger) {
	t.Helper()
	events := log.NewMemoryLogger()
	m, err := NewFromDeck(nil, referenceDeck, "P1", game.SideFriendly, events)
	require.NoError(t, err)
	return m, events
}

func TestNewRequiresPlayer(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestNewFromDeckErrors(t *testing.T) {
	_, err := NewFromDeck(nil, referenceDeck[:7], "P1", game.SideFriendly, nil)
	assert.ErrorIs(t, err, game.ErrInvalidDeck)

	_, err = NewFromDeck(nil, append([]string{"Golem"}, referenceDeck[1:]...), "P1", game.SideFriendly, nil)
	assert.ErrorIs(t, err, game.ErrUnknownCard)
}

func TestNewMatchState(t *testing.T) {
	m, events := newTestMatch(t)
	other, _ := newTestMatch(t)

	assert.NotEmpty(t, m.ID)
	assert.NotEqual(t, m.ID, other.ID)

	st := m.State()
	assert.Equal(t, 1, st.Turn)
	assert.Equal(t, "P1", st.Player)
	assert.Equal(t, "friendly", st.Side)
	assert.Equal(t, 5.0, st.Elixir)
	assert.Equal(t, []string{"Knight", "Archers", "Giant", "Fireball"}, st.Hand)
	assert.Equal(t, "Musketeer", st.NextCard)
	assert.Equal(t, 4.0, st.AverageElixir)
	assert.Equal(t, []string{"left", "right", "king"}, st.Towers.Enemy)
	assert.Empty(t, st.Hints)

	require.Len(t, events.Events(), 1)
	assert.Equal(t, log.EventMatchStart, events.Events()[0].Type)
}

func TestRecommendLogs(t *testing.T) {
	m, events := newTestMatch(t)

	best := m.Recommend(3)
	require.Len(t, best, 3)
	assert.Equal(t, "Giant at (4, 14)", best[0].String())

	require.Len(t, events.EventsOfType(log.EventMovesGenerated), 1)
	rec := events.EventsOfType(log.EventRecommend)
	require.Len(t, rec, 1)
	assert.Equal(t, "Giant", rec[0].Card)

	sums := m.Summaries(2)
	require.Len(t, sums, 2)
	assert.Equal(t, "(4, 14)", sums[0].Position)
	assert.Equal(t, 24.5, sums[0].Score)
}

func TestPlayBestCyclesHand(t *testing.T) {
	m, events := newTestMatch(t)

	mv, err := m.PlayBest()
	require.NoError(t, err)
	assert.Equal(t, "Giant", mv.Card.Name)

	st := m.State()
	assert.Equal(t, 0.0, st.Elixir)
	assert.Equal(t, []string{"Knight", "Archers", "Musketeer", "Fireball"}, st.Hand)
	assert.Equal(t, "Mini P.E.K.K.A", st.NextCard)

	played := events.EventsOfType(log.EventCardPlayed)
	require.Len(t, played, 1)
	assert.Equal(t, "Giant", played[0].Card)
	cycled := events.EventsOfType(log.EventCycle)
	require.Len(t, cycled, 1)
	assert.Equal(t, "Musketeer", cycled[0].Card)
}

// Mirrors the two-turn walkthrough: play the best card, regenerate two
// elixir, and find nothing affordable.
func TestTwoTurnScenario(t *testing.T) {
	m, _ := newTestMatch(t)

	_, err := m.PlayBest()
	require.NoError(t, err)
	assert.Equal(t, 2, m.NextTurn(2))
	assert.Equal(t, 2.0, m.State().Elixir)

	_, err = m.PlayBest()
	assert.ErrorIs(t, err, ErrNoMoves)
	assert.Equal(t, "No moves available", m.Analyze().Recommendation)
}

func TestPlayCard(t *testing.T) {
	m, _ := newTestMatch(t)

	_, err := m.PlayCard("Golem")
	assert.ErrorIs(t, err, game.ErrUnknownCard)
	_, err = m.PlayCard("Hog Rider")
	assert.ErrorIs(t, err, game.ErrNotInHand)

	mv, err := m.PlayCard("Knight")
	require.NoError(t, err)
	assert.Equal(t, "Knight at (4, 14)", mv.String())
	assert.Equal(t, 2.0, m.State().Elixir)

	_, err = m.PlayCard("Fireball")
	assert.ErrorIs(t, err, game.ErrInsufficientElixir)
	assert.Equal(t, 2.0, m.State().Elixir, "failed play must not spend elixir")
}

func TestAddElixirCaps(t *testing.T) {
	m, events := newTestMatch(t)
	assert.Equal(t, game.MaxElixir, m.AddElixir(20))
	assert.Len(t, events.EventsOfType(log.EventElixirChange), 1)
}

func TestDestroyTower(t *testing.T) {
	m, events := newTestMatch(t)

	require.NoError(t, m.DestroyTower(game.SideEnemy, game.TowerLeft))
	require.NoError(t, m.DestroyTower(game.SideEnemy, game.TowerLeft))
	assert.Equal(t, []string{"right", "king"}, m.State().Towers.Enemy)
	assert.Len(t, events.EventsOfType(log.EventTowerDestroyed), 1)

	best := m.Recommend(1)
	require.Len(t, best, 1)
	assert.Equal(t, "Giant at (14, 14)", best[0].String())
}

func TestSetHints(t *testing.T) {
	m, _ := newTestMatch(t)

	err := m.SetHints([]string{"Giant", "Golem"})
	assert.True(t, errors.Is(err, game.ErrUnknownCard))
	assert.Empty(t, m.State().Hints)

	require.NoError(t, m.SetHints([]string{"Giant", "Giant"}))
	assert.Equal(t, []string{"Giant", "Giant"}, m.State().Hints)

	require.NoError(t, m.SetHints(nil))
	assert.Empty(t, m.State().Hints)
}

func TestConcurrentAccess(t *testing.T) {
	m, _ := newTestMatch(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				m.AddElixir(1)
				_ = m.Recommend(3)
				_ = m.State()
				_ = m.Analyze()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, game.MaxElixir, m.State().Elixir)
}
