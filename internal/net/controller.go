package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"go.uber.org/zap"

	"github.com/peterkuimelis/clasher/internal/game"
	"github.com/peterkuimelis/clasher/internal/log"
	"github.com/peterkuimelis/clasher/internal/session"
)

// SessionController drives one advisor session over a connection.
type SessionController struct {
	conn   net.Conn
	enc    *json.Encoder
	dec    *json.Decoder
	srv    *Server
	match  *session.Match
	logger *zap.Logger
	mu     sync.Mutex
}

// NewSessionController creates a controller for the given connection.
func NewSessionController(conn net.Conn, srv *Server) *SessionController {
	return &SessionController{
		conn:   conn,
		enc:    json.NewEncoder(conn),
		dec:    json.NewDecoder(conn),
		srv:    srv,
		logger: srv.logger().With(zap.String("remote", conn.RemoteAddr().String())),
	}
}

// send writes a message. Callers must not hold mu.
func (c *SessionController) send(msg ServerMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enc.Encode(msg)
}

// Run handles messages until the client quits, disconnects, or ctx ends.
func (c *SessionController) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { c.conn.Close() })
	defer stop()

	for {
		var msg ClientMessage
		if err := c.dec.Decode(&msg); err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read message: %w", err)
		}

		c.logger.Debug("request", zap.String("type", msg.Type))
		reply, done := c.handle(msg)
		if reply.Type == MsgTypeError {
			c.logger.Info("request failed", zap.String("type", msg.Type), zap.String("error", reply.Error))
		}
		if err := c.send(reply); err != nil {
			return fmt.Errorf("send %s: %w", reply.Type, err)
		}
		if done {
			return nil
		}
	}
}

func (c *SessionController) handle(msg ClientMessage) (ServerMessage, bool) {
	if msg.Type == MsgQuit {
		return ServerMessage{Type: MsgTypeBye}, true
	}
	if msg.Type == MsgJoin {
		if err := c.join(msg); err != nil {
			return errorMessage(err), false
		}
		return c.stateMessage(), false
	}
	if c.match == nil {
		return errorMessage(errors.New("join first")), false
	}

	m := c.match
	switch msg.Type {
	case MsgState:
		return c.stateMessage(), false

	case MsgRecommend:
		n := msg.TopN
		if n <= 0 {
			n = c.srv.topN()
		}
		return ServerMessage{Type: MsgTypeMoves, Moves: m.Summaries(n), State: statePtr(m)}, false

	case MsgAnalyze:
		a := m.Analyze()
		return ServerMessage{Type: MsgTypeAnalysis, Analysis: &a}, false

	case MsgPlay, MsgPlayBest:
		var (
			mv  *game.Move
			err error
		)
		if msg.Type == MsgPlay {
			mv, err = m.PlayCard(msg.Card)
		} else {
			mv, err = m.PlayBest()
		}
		if err != nil {
			return errorMessage(err), false
		}
		summary := m.Summarize(mv)
		return ServerMessage{Type: MsgTypePlayed, Played: &summary, State: statePtr(m)}, false

	case MsgElixir:
		m.AddElixir(msg.Amount)
		return c.stateMessage(), false

	case MsgNextTurn:
		m.NextTurn(msg.Amount)
		return c.stateMessage(), false

	case MsgDestroyTower:
		side, err := game.ParseSide(msg.TowerSide)
		if err != nil {
			return errorMessage(err), false
		}
		tower, err := game.ParseTower(msg.Tower)
		if err != nil {
			return errorMessage(err), false
		}
		if err := m.DestroyTower(side, tower); err != nil {
			return errorMessage(err), false
		}
		return c.stateMessage(), false

	case MsgHints:
		if err := m.SetHints(msg.Cards); err != nil {
			return errorMessage(err), false
		}
		return c.stateMessage(), false

	default:
		return errorMessage(fmt.Errorf("unknown message type %q", msg.Type)), false
	}
}

func (c *SessionController) join(msg ClientMessage) error {
	side, err := game.ParseSide(msg.Side)
	if err != nil {
		return err
	}

	var deck []*game.Card
	switch {
	case len(msg.Deck) > 0:
		deck, err = c.srv.Catalog.LookupAll(msg.Deck)
	case msg.DeckNumber > 0:
		_, deck, err = game.DeckByNumber(c.srv.DeckFile, msg.DeckNumber, c.srv.Catalog)
	default:
		deck, err = game.DefaultDeck(c.srv.Catalog)
	}
	if err != nil {
		return fmt.Errorf("load deck: %w", err)
	}

	p, err := game.NewPlayer(deck, msg.Name)
	if err != nil {
		return err
	}
	var logger log.EventLogger = log.NewMemoryLogger()
	if c.srv.EventLog != nil {
		logger = log.NewTextLogger(c.srv.EventLog)
	}
	match, err := session.New(session.Config{
		Catalog: c.srv.Catalog,
		Player:  p,
		Side:    side,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	c.match = match
	c.logger = c.logger.With(zap.String("session", match.ID))
	c.logger.Info("session started", zap.String("player", p.Name), zap.Stringer("side", side))
	return nil
}

func (c *SessionController) stateMessage() ServerMessage {
	return ServerMessage{Type: MsgTypeState, State: statePtr(c.match)}
}

func statePtr(m *session.Match) *session.State {
	st := m.State()
	return &st
}

func errorMessage(err error) ServerMessage {
	return ServerMessage{Type: MsgTypeError, Error: err.Error()}
}
