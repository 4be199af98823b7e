package net

import (
	"bytes"
	"context"
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/clasher/internal/engine"
	"github.com/peterkuimelis/clasher/internal/game"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want ClientMessage
	}{
		{"rec", ClientMessage{Type: MsgRecommend}},
		{"recommend 5", ClientMessage{Type: MsgRecommend, TopN: 5}},
		{"analyze", ClientMessage{Type: MsgAnalyze}},
		{"play Hog Rider", ClientMessage{Type: MsgPlay, Card: "Hog Rider"}},
		{"PLAY Mini P.E.K.K.A", ClientMessage{Type: MsgPlay, Card: "Mini P.E.K.K.A"}},
		{"best", ClientMessage{Type: MsgPlayBest}},
		{"elixir 2.5", ClientMessage{Type: MsgElixir, Amount: 2.5}},
		{"turn", ClientMessage{Type: MsgNextTurn}},
		{"turn 2", ClientMessage{Type: MsgNextTurn, Amount: 2}},
		{"destroy enemy left", ClientMessage{Type: MsgDestroyTower, TowerSide: "enemy", Tower: "left"}},
		{"hints Giant, Hog Rider", ClientMessage{Type: MsgHints, Cards: []string{"Giant", "Hog Rider"}}},
		{"hints", ClientMessage{Type: MsgHints}},
		{"state", ClientMessage{Type: MsgState}},
		{"exit", ClientMessage{Type: MsgQuit}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseCommand(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCommandErrors(t *testing.T) {
	for _, line := range []string{"", "rec zero", "rec 0", "play", "elixir", "elixir lots", "turn x", "destroy enemy", "dance"} {
		_, err := ParseCommand(line)
		assert.Error(t, err, "line %q", line)
	}
	_, err := ParseCommand("help")
	assert.ErrorIs(t, err, errHelp)
}

func TestRunREPL(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	srv := &Server{TopN: 3, Catalog: game.DefaultCatalog()}

	ctx := context.Background()
	serverDone := make(chan error, 1)
	go func() {
		defer serverConn.Close()
		serverDone <- NewSessionController(serverConn, srv).Run(ctx)
	}()

	in := strings.NewReader("rec 2\n\nbogus\nhelp\nplay Giant\nquit\n")
	var out bytes.Buffer
	err := NewClient(clientConn, in, &out).RunREPL(ctx, &ClientMessage{Type: MsgJoin, Name: "Tester"})
	require.NoError(t, err)
	require.NoError(t, <-serverDone)

	text := out.String()
	assert.Contains(t, text, "Turn 1 | Tester (friendly) | 5.0/10 elixir")
	assert.Contains(t, text, "Hand: Knight, Archers, Giant, Fireball | next: Musketeer")
	assert.Contains(t, text, "1. Giant at (4, 14)  score 24.50  (5 elixir)")
	assert.Contains(t, text, "2. Giant at (14, 14)  score 24.50  (5 elixir)")
	assert.NotContains(t, text, "3. ")
	assert.Contains(t, text, `unknown command "bogus"`)
	assert.Contains(t, text, "Commands:")
	assert.Contains(t, text, "played Giant at (4, 14)")
	assert.Contains(t, text, "Hand: Knight, Archers, Musketeer, Fireball | next: Mini P.E.K.K.A")
	assert.True(t, strings.HasSuffix(text, "bye\n"))
}

func TestRunREPLJoinError(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	srv := &Server{Catalog: game.DefaultCatalog()}
	go func() {
		defer serverConn.Close()
		_ = NewSessionController(serverConn, srv).Run(context.Background())
	}()

	var out bytes.Buffer
	join := &ClientMessage{Type: MsgJoin, Deck: []string{"Knight"}}
	err := NewClient(clientConn, strings.NewReader(""), &out).RunREPL(context.Background(), join)
	require.Error(t, err)
	assert.Contains(t, out.String(), "error: load deck")
	clientConn.Close()
}

func TestRunREPLQuitsOnEOF(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	srv := &Server{Catalog: game.DefaultCatalog()}
	serverDone := make(chan error, 1)
	go func() {
		defer serverConn.Close()
		serverDone <- NewSessionController(serverConn, srv).Run(context.Background())
	}()

	var out bytes.Buffer
	err := NewClient(clientConn, strings.NewReader("state\n"), &out).RunREPL(context.Background(), nil)
	require.NoError(t, err)
	require.NoError(t, <-serverDone)
	assert.Contains(t, out.String(), "error: join first")
}

func TestRenderAnalysis(t *testing.T) {
	var buf bytes.Buffer
	RenderAnalysis(&buf, &engine.Analysis{
		Player:        "P1",
		Side:          "friendly",
		Elixir:        5,
		MaxElixir:     10,
		PlayableCards: 4,
		Hand:          []string{"Knight (3)"},
		BestMoves: []engine.MoveSummary{{
			Card: "Giant", Position: "(4, 14)", Score: 24.5, ElixirCost: 5,
			Breakdown: engine.ScoreBreakdown{Tempo: 2.5, Positioning: 16.6, Attributes: 3, Strategy: 3},
		}},
		Recommendation: "Giant at (4, 14)",
	})
	want := "P1 (friendly): 5.0/10 elixir, 4 playable\n" +
		"Hand: Knight (3)\n" +
		"1. Giant at (4, 14)  score 24.50  (5 elixir)\n" +
		"   tempo 2.50  position 16.60  attributes 3.00  counters 0.00  strategy 3.00\n" +
		"Recommendation: Giant at (4, 14)\n"
	assert.Equal(t, want, buf.String())

	buf.Reset()
	RenderAnalysis(&buf, nil)
	assert.Empty(t, buf.String())
}
