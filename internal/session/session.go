// Package session wraps the engine in a stateful match: a player, a board
// and the opponent cards seen so far, mutated turn by turn.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/peterkuimelis/clasher/internal/engine"
	"github.com/peterkuimelis/clasher/internal/game"
	"github.com/peterkuimelis/clasher/internal/log"
)

var ErrNoMoves = errors.New("no moves available")

// Config holds everything needed to start a match.
type Config struct {
	ID      string // generated when empty
	Board   *game.Board
	Catalog *game.Catalog
	Player  *game.Player
	Side    game.Side
	Logger  log.EventLogger
}

// Match is one player's advisor session. All methods are safe for
// concurrent use.
type Match struct {
	ID string

	mu      sync.Mutex
	board   *game.Board
	catalog *game.Catalog
	player  *game.Player
	side    game.Side
	hints   []*game.Card
	engine  *engine.Engine
	logger  log.EventLogger
	turn    int
}

// New starts a match. Board and catalog default to the reference arena and
// cards; the player is required.
func New(cfg Config) (*Match, error) {
	if cfg.Player == nil {
		return nil, errors.New("session: player is required")
	}
	board := cfg.Board
	if board == nil {
		board = game.DefaultBoard()
	}
	catalog := cfg.Catalog
	if catalog == nil {
		catalog = game.DefaultCatalog()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	id := cfg.ID
	if id == "" {
		id = uuid.NewString()
	}

	m := &Match{
		ID:      id,
		board:   board,
		catalog: catalog,
		player:  cfg.Player,
		side:    cfg.Side,
		engine:  engine.New(board),
		logger:  logger,
		turn:    1,
	}
	m.logger.Log(log.NewMatchStartEvent(m.player.Name, m.side.String(), handNames(m.player.Hand())))
	return m, nil
}

// NewFromDeck builds the player from a deck of card names.
func NewFromDeck(catalog *game.Catalog, deck []string, name string, side game.Side, logger log.EventLogger) (*Match, error) {
	if catalog == nil {
		catalog = game.DefaultCatalog()
	}
	cards, err := catalog.LookupAll(deck)
	if err != nil {
		return nil, err
	}
	p, err := game.NewPlayer(cards, name)
	if err != nil {
		return nil, err
	}
	return New(Config{Catalog: catalog, Player: p, Side: side, Logger: logger})
}

func (m *Match) Catalog() *game.Catalog {
	return m.catalog
}

func (m *Match) Logger() log.EventLogger {
	return m.logger
}

// Recommend returns the top n moves for the current state.
func (m *Match) Recommend(n int) []*game.Move {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recommendLocked(n)
}

func (m *Match) recommendLocked(n int) []*game.Move {
	moves := m.engine.PlayerMoves(m.player, m.side)
	m.logger.Log(log.NewMovesGeneratedEvent(m.turn, m.player.Name, len(moves), len(m.player.Playable())))
	m.engine.ScoreMoves(moves, m.side, m.hints)
	best := engine.FindBest(moves, n)
	if len(best) > 0 {
		m.logger.Log(log.NewRecommendEvent(m.turn, m.player.Name, best[0].Card.Name, best[0].String(), best[0].Score))
	}
	return best
}

// Summaries returns the display form of the top n moves.
func (m *Match) Summaries(n int) []engine.MoveSummary {
	m.mu.Lock()
	defer m.mu.Unlock()
	best := m.recommendLocked(n)
	out := make([]engine.MoveSummary, 0, len(best))
	for _, mv := range best {
		out = append(out, m.engine.Summarize(mv, m.side, m.hints))
	}
	return out
}

// Summarize converts a move into its display form under the current hints.
func (m *Match) Summarize(mv *game.Move) engine.MoveSummary {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engine.Summarize(mv, m.side, m.hints)
}

// Analyze produces the analysis report for the current state.
func (m *Match) Analyze() engine.Analysis {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := m.engine.Analyze(m.player, m.side, m.hints)
	m.logger.Log(log.NewAnalyzeEvent(m.turn, m.player.Name, a.Recommendation))
	return a
}

// PlayCard plays the named card at its best-scoring position.
func (m *Match) PlayCard(name string) (*game.Move, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	card, err := m.catalog.Lookup(name)
	if err != nil {
		return nil, err
	}
	if !m.player.CanPlay(card) {
		// Surface the precise reason from the player.
		if err := m.player.Clone().Play(card); err != nil {
			return nil, err
		}
	}

	moves := m.engine.GenerateMoves([]*game.Card{card}, m.side)
	m.engine.ScoreMoves(moves, m.side, m.hints)
	best := engine.FindBest(moves, 1)
	if len(best) == 0 {
		return nil, fmt.Errorf("%w: no valid position for %s", ErrNoMoves, name)
	}
	return best[0], m.applyLocked(best[0])
}

// PlayBest plays the top recommendation.
func (m *Match) PlayBest() (*game.Move, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	best := m.recommendLocked(1)
	if len(best) == 0 {
		return nil, fmt.Errorf("%w: %.1f elixir", ErrNoMoves, m.player.Elixir())
	}
	return best[0], m.applyLocked(best[0])
}

func (m *Match) applyLocked(mv *game.Move) error {
	before := m.player.Elixir()
	incoming := m.player.NextCard()
	if err := m.player.Play(mv.Card); err != nil {
		return err
	}
	m.logger.Log(log.NewCardPlayedEvent(m.turn, m.player.Name, mv.Card.Name, mv.Card.Cost, mv.Position.Coords()))
	m.logger.Log(log.NewElixirChangeEvent(m.turn, m.player.Name, before, m.player.Elixir(), "played "+mv.Card.Name))
	m.logger.Log(log.NewCycleEvent(m.turn, m.player.Name, incoming.Name))
	return nil
}

// AddElixir regenerates elixir, capped at game.MaxElixir.
func (m *Match) AddElixir(amount float64) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	before := m.player.Elixir()
	m.player.AddElixir(amount)
	m.logger.Log(log.NewElixirChangeEvent(m.turn, m.player.Name, before, m.player.Elixir(), "regen"))
	return m.player.Elixir()
}

// DestroyTower marks a tower destroyed on the match board.
func (m *Match) DestroyTower(side game.Side, t game.Tower) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.board.TowerStanding(side, t) {
		return nil
	}
	if err := m.board.DestroyTower(side, t); err != nil {
		return err
	}
	m.logger.Log(log.NewTowerDestroyedEvent(m.turn, side.String(), t.String()))
	return nil
}

// SetHints replaces the known opponent cards. Names may repeat.
func (m *Match) SetHints(names []string) error {
	cards, err := m.catalog.LookupAll(names)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hints = cards
	m.logger.Log(log.NewHintEvent(m.turn, m.player.Name, names))
	return nil
}

// NextTurn advances the turn counter and regenerates elixir.
func (m *Match) NextTurn(regen float64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turn++
	m.logger.Log(log.NewTurnEvent(m.turn, m.player.Name))
	before := m.player.Elixir()
	m.player.AddElixir(regen)
	if regen != 0 {
		m.logger.Log(log.NewElixirChangeEvent(m.turn, m.player.Name, before, m.player.Elixir(), "regen"))
	}
	return m.turn
}

// State is a JSON-friendly snapshot of a match.
type State struct {
	ID            string      `json:"id"`
	Turn          int         `json:"turn"`
	Player        string      `json:"player"`
	Side          string      `json:"side"`
	Elixir        float64     `json:"elixir"`
	MaxElixir     float64     `json:"max_elixir"`
	Hand          []string    `json:"hand"`
	NextCard      string      `json:"next_card"`
	AverageElixir float64     `json:"average_elixir"`
	Hints         []string    `json:"opponent_cards,omitempty"`
	Towers        TowerStatus `json:"towers"`
}

// TowerStatus lists the standing towers per side.
type TowerStatus struct {
	Friendly []string `json:"friendly"`
	Enemy    []string `json:"enemy"`
}

func (m *Match) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := State{
		ID:            m.ID,
		Turn:          m.turn,
		Player:        m.player.Name,
		Side:          m.side.String(),
		Elixir:        m.player.Elixir(),
		MaxElixir:     game.MaxElixir,
		Hand:          handNames(m.player.Hand()),
		NextCard:      m.player.NextCard().Name,
		AverageElixir: m.player.AverageElixir(),
		Towers: TowerStatus{
			Friendly: towerNames(m.board.StandingTowers(game.SideFriendly)),
			Enemy:    towerNames(m.board.StandingTowers(game.SideEnemy)),
		},
	}
	for _, h := range m.hints {
		st.Hints = append(st.Hints, h.Name)
	}
	return st
}

func handNames(cards []*game.Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.Name)
	}
	return out
}

func towerNames(ts []game.Tower) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.String())
	}
	return out
}
