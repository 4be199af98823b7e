package net

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"

	"github.com/peterkuimelis/clasher/internal/engine"
	"github.com/peterkuimelis/clasher/internal/session"
)

var errHelp = errors.New("help requested")

// Client connects to an advisor server and provides a terminal REPL.
type Client struct {
	conn net.Conn
	in   io.Reader
	out  io.Writer
}

// NewClient wraps an established connection.
func NewClient(conn net.Conn, in io.Reader, out io.Writer) *Client {
	return &Client{conn: conn, in: in, out: out}
}

// Connect dials the server, sends the join request and runs the REPL.
func Connect(ctx context.Context, addr string, join ClientMessage, in io.Reader, out io.Writer) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	join.Type = MsgJoin
	c := NewClient(conn, in, out)
	return c.RunREPL(ctx, &join)
}

// RunREPL sends the optional join message, then reads commands from the
// input until quit or EOF. Each command gets exactly one reply.
func (c *Client) RunREPL(ctx context.Context, join *ClientMessage) error {
	stop := context.AfterFunc(ctx, func() { c.conn.Close() })
	defer stop()

	enc := json.NewEncoder(c.conn)
	dec := json.NewDecoder(c.conn)

	exchange := func(msg ClientMessage) (ServerMessage, error) {
		var reply ServerMessage
		if err := enc.Encode(msg); err != nil {
			return reply, fmt.Errorf("send %s: %w", msg.Type, err)
		}
		if err := dec.Decode(&reply); err != nil {
			return reply, fmt.Errorf("read reply: %w", err)
		}
		return reply, nil
	}

	if join != nil {
		reply, err := exchange(*join)
		if err != nil {
			return err
		}
		c.render(reply)
		if reply.Type == MsgTypeError {
			return fmt.Errorf("join: %s", reply.Error)
		}
	}

	scanner := bufio.NewScanner(c.in)
	fmt.Fprint(c.out, "> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Fprint(c.out, "> ")
			continue
		}
		msg, err := ParseCommand(line)
		if errors.Is(err, errHelp) {
			fmt.Fprint(c.out, replHelp)
			fmt.Fprint(c.out, "> ")
			continue
		}
		if err != nil {
			fmt.Fprintf(c.out, "%v\n> ", err)
			continue
		}

		reply, err := exchange(msg)
		if err != nil {
			return err
		}
		c.render(reply)
		if reply.Type == MsgTypeBye {
			return nil
		}
		fmt.Fprint(c.out, "> ")
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	_, err := exchange(ClientMessage{Type: MsgQuit})
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

const replHelp = `Commands:
  rec [n]                    top n moves
  analyze                    full analysis
  play <card>                play a card at its best position
  best                       play the top recommendation
  elixir <amount>            add elixir
  turn [regen]               next turn, optionally regenerating elixir
  destroy <side> <tower>     mark a tower destroyed (tower: king, left, right)
  hints <card>[,<card>...]   set the opponent cards seen
  state                      show the match state
  quit
`

// ParseCommand turns one REPL line into a protocol message.
func ParseCommand(line string) (ClientMessage, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ClientMessage{}, errors.New("empty command")
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	rest := strings.TrimSpace(strings.TrimPrefix(line, fields[0]))

	switch cmd {
	case "help", "?":
		return ClientMessage{}, errHelp
	case "rec", "recommend":
		msg := ClientMessage{Type: MsgRecommend}
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return msg, fmt.Errorf("rec: %q is not a positive number", args[0])
			}
			msg.TopN = n
		}
		return msg, nil
	case "analyze":
		return ClientMessage{Type: MsgAnalyze}, nil
	case "play":
		if rest == "" {
			return ClientMessage{}, errors.New("play: card name required")
		}
		return ClientMessage{Type: MsgPlay, Card: rest}, nil
	case "best":
		return ClientMessage{Type: MsgPlayBest}, nil
	case "elixir":
		if len(args) != 1 {
			return ClientMessage{}, errors.New("elixir: amount required")
		}
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return ClientMessage{}, fmt.Errorf("elixir: %w", err)
		}
		return ClientMessage{Type: MsgElixir, Amount: v}, nil
	case "turn":
		msg := ClientMessage{Type: MsgNextTurn}
		if len(args) > 0 {
			v, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return msg, fmt.Errorf("turn: %w", err)
			}
			msg.Amount = v
		}
		return msg, nil
	case "destroy":
		if len(args) != 2 {
			return ClientMessage{}, errors.New("destroy: usage destroy <side> <tower>")
		}
		return ClientMessage{Type: MsgDestroyTower, TowerSide: args[0], Tower: args[1]}, nil
	case "hints":
		var cards []string
		for _, name := range strings.Split(rest, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cards = append(cards, name)
			}
		}
		return ClientMessage{Type: MsgHints, Cards: cards}, nil
	case "state":
		return ClientMessage{Type: MsgState}, nil
	case "quit", "exit":
		return ClientMessage{Type: MsgQuit}, nil
	}
	return ClientMessage{}, fmt.Errorf("unknown command %q (try help)", cmd)
}

func (c *Client) render(msg ServerMessage) {
	switch msg.Type {
	case MsgTypeError:
		fmt.Fprintf(c.out, "error: %s\n", msg.Error)
	case MsgTypeBye:
		fmt.Fprintln(c.out, "bye")
	case MsgTypeState:
		renderState(c.out, msg.State)
	case MsgTypeMoves:
		if len(msg.Moves) == 0 {
			fmt.Fprintln(c.out, engine.NoMovesAvailable)
		}
		for i, m := range msg.Moves {
			fmt.Fprintf(c.out, "%d. %s\n", i+1, formatSummary(m))
		}
	case MsgTypeAnalysis:
		RenderAnalysis(c.out, msg.Analysis)
	case MsgTypePlayed:
		if msg.Played != nil {
			fmt.Fprintf(c.out, "played %s\n", formatSummary(*msg.Played))
		}
		renderState(c.out, msg.State)
	}
}

func formatSummary(m engine.MoveSummary) string {
	return fmt.Sprintf("%s at %s  score %.2f  (%d elixir)", m.Card, m.Position, m.Score, m.ElixirCost)
}

func renderState(w io.Writer, st *session.State) {
	if st == nil {
		return
	}
	fmt.Fprintf(w, "Turn %d | %s (%s) | %.1f/%.0f elixir\n", st.Turn, st.Player, st.Side, st.Elixir, st.MaxElixir)
	fmt.Fprintf(w, "Hand: %s | next: %s\n", strings.Join(st.Hand, ", "), st.NextCard)
	fmt.Fprintf(w, "Towers: friendly [%s] enemy [%s]\n",
		strings.Join(st.Towers.Friendly, " "), strings.Join(st.Towers.Enemy, " "))
	if len(st.Hints) > 0 {
		fmt.Fprintf(w, "Opponent: %s\n", strings.Join(st.Hints, ", "))
	}
}

// RenderAnalysis prints an analysis report.
func RenderAnalysis(w io.Writer, a *engine.Analysis) {
	if a == nil {
		return
	}
	fmt.Fprintf(w, "%s (%s): %.1f/%.0f elixir, %d playable\n", a.Player, a.Side, a.Elixir, a.MaxElixir, a.PlayableCards)
	fmt.Fprintf(w, "Hand: %s\n", strings.Join(a.Hand, ", "))
	for i, m := range a.BestMoves {
		b := m.Breakdown
		fmt.Fprintf(w, "%d. %s\n   tempo %.2f  position %.2f  attributes %.2f  counters %.2f  strategy %.2f\n",
			i+1, formatSummary(m), b.Tempo, b.Positioning, b.Attributes, b.Counters, b.Strategy)
	}
	fmt.Fprintf(w, "Recommendation: %s\n", a.Recommendation)
}
