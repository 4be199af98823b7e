package web

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/clasher/internal/engine"
	clashernet "github.com/peterkuimelis/clasher/internal/net"
)

const testDecks = `decks:
  - name: Hog Cycle
    cards:
      - name: Hog Rider
      - name: Musketeer
      - name: Cannon
      - name: Fireball
      - name: Knight
      - name: Archers
      - name: Mini P.E.K.K.A
      - name: Wizard
  - name: Knight Spam
    cards:
      - name: Knight
        count: 4
      - name: Archers
        count: 2
      - name: Fireball
      - name: Cannon
`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	path := filepath.Join(t.TempDir(), "decks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testDecks), 0o644))

	s, err := NewServer(Options{DecksFile: path})
	require.NoError(t, err)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postAnalyze(t *testing.T, ts *httptest.Server, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(ts.URL+"/api/analyze", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestIndex(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	resp2, err := http.Get(ts.URL + "/nope")
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
}

func TestCards(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/cards")
	require.NoError(t, err)
	defer resp.Body.Close()

	var cards []CardInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cards))
	require.Len(t, cards, 10)
	byName := make(map[string]CardInfo)
	for _, c := range cards {
		byName[c.Name] = c
	}
	assert.Equal(t, "buildings", byName["Hog Rider"].Target)
	assert.Equal(t, "spell", byName["Fireball"].CardType)
	assert.True(t, byName["Wizard"].AreaDamage)
}

func TestDecks(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/decks")
	require.NoError(t, err)
	defer resp.Body.Close()

	var decks []DeckInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decks))
	require.Len(t, decks, 2)
	assert.Equal(t, 1, decks[0].Number)
	assert.Equal(t, "Hog Cycle", decks[0].Name)
	assert.Equal(t, 3.8, decks[0].AvgCost)
	assert.Len(t, decks[1].Cards, 8)
	assert.Equal(t, []string{"Knight", "Knight", "Knight", "Knight"}, decks[1].Cards[:4])
	assert.Equal(t, 3.1, decks[1].AvgCost)
}

func TestDeckInfosUnknownCard(t *testing.T) {
	s, err := NewServer(Options{})
	require.NoError(t, err)
	_, err = deckInfos([]byte("decks:\n  - name: Bad\n    cards:\n      - name: Golem\n"), s.catalog)
	assert.Error(t, err)
}

func TestAnalyze(t *testing.T) {
	ts := newTestServer(t)

	resp, body := postAnalyze(t, ts, `{}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var a engine.Analysis
	require.NoError(t, json.Unmarshal(body, &a))
	assert.Equal(t, "Giant at (4, 14)", a.Recommendation)
	assert.Equal(t, 4, a.PlayableCards)
	assert.Len(t, a.BestMoves, 5)

	resp, body = postAnalyze(t, ts, `{"destroyed_towers":[{"side":"enemy","tower":"left"}]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &a))
	assert.Equal(t, "Giant at (14, 14)", a.Recommendation)

	resp, body = postAnalyze(t, ts, `{"elixir":2}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &a))
	assert.Equal(t, engine.NoMovesAvailable, a.Recommendation)
	assert.Empty(t, a.BestMoves)

	resp, body = postAnalyze(t, ts, `{"deck_number":1}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &a))
	assert.Equal(t, []string{"Hog Rider (4)", "Musketeer (4)", "Cannon (3)", "Fireball (4)"}, a.Hand)
}

func TestAnalyzeErrors(t *testing.T) {
	ts := newTestServer(t)

	for _, body := range []string{
		`not json`,
		`{"side":"middle"}`,
		`{"deck":["Knight"]}`,
		`{"deck_number":9}`,
		`{"opponent_cards":["Golem"]}`,
		`{"destroyed_towers":[{"side":"enemy","tower":"center"}]}`,
	} {
		resp, data := postAnalyze(t, ts, body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
		assert.Contains(t, string(data), `"error"`, body)
	}
}

func TestWebSocketBridge(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go (&clashernet.Server{}).Serve(ctx, ln)

	ts := newTestServer(t)
	dialCtx, dialCancel := context.WithTimeout(ctx, 5*time.Second)
	defer dialCancel()
	ws, _, err := websocket.Dial(dialCtx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer ws.CloseNow()

	connect := `{"type":"connect","addr":"` + ln.Addr().String() + `","join":{"type":"join","name":"Web"}}`
	require.NoError(t, ws.Write(dialCtx, websocket.MessageText, []byte(connect)))

	var reply clashernet.ServerMessage
	_, data, err := ws.Read(dialCtx)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &reply))
	require.Equal(t, clashernet.MsgTypeState, reply.Type)
	assert.Equal(t, "Web", reply.State.Player)

	require.NoError(t, ws.Write(dialCtx, websocket.MessageText, []byte(`{"type":"recommend","top_n":1}`)))
	_, data, err = ws.Read(dialCtx)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &reply))
	require.Equal(t, clashernet.MsgTypeMoves, reply.Type)
	require.Len(t, reply.Moves, 1)
	assert.Equal(t, "Giant", reply.Moves[0].Card)
}

func TestWebSocketBridgeDialFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	ts := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	ws, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer ws.CloseNow()

	require.NoError(t, ws.Write(ctx, websocket.MessageText, []byte(`{"type":"connect","addr":"`+addr+`"}`)))
	_, data, err := ws.Read(ctx)
	require.NoError(t, err)
	assert.Contains(t, string(data), "could not connect to advisor")
}
