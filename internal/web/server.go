package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"net"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/peterkuimelis/clasher/internal/engine"
	"github.com/peterkuimelis/clasher/internal/game"
)

//go:embed static
var staticFiles embed.FS

// CardInfo is the JSON representation of a card for the /api/cards endpoint.
type CardInfo struct {
	Name         string  `json:"name"`
	CardType     string  `json:"cardType"`
	Cost         int     `json:"cost"`
	Rarity       string  `json:"rarity"`
	Target       string  `json:"target"`
	Damage       int     `json:"damage"`
	HitSpeed     float64 `json:"hitSpeed,omitempty"`
	Range        float64 `json:"range,omitempty"`
	AreaDamage   bool    `json:"areaDamage,omitempty"`
	SplashRadius float64 `json:"splashRadius,omitempty"`
}

// Options configures a web server.
type Options struct {
	DecksFile string
	Catalog   *game.Catalog // nil means the built-in catalog
	Logger    *zap.Logger   // nil disables logging
}

// Server is the clasher web UI server.
type Server struct {
	decksFile string
	catalog   *game.Catalog
	logger    *zap.Logger
	mux       *http.ServeMux
}

// NewServer creates a new web server.
func NewServer(opts Options) (*Server, error) {
	if opts.Catalog == nil {
		opts.Catalog = game.DefaultCatalog()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	s := &Server{
		decksFile: opts.DecksFile,
		catalog:   opts.Catalog,
		logger:    opts.Logger,
		mux:       http.NewServeMux(),
	}
	if err := s.setupRoutes(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) setupRoutes() error {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return fmt.Errorf("static files: %w", err)
	}

	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.Copy(w, f)
	})
	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/decks", s.handleDecks)
	s.mux.HandleFunc("POST /api/analyze", s.handleAnalyze)

	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
	return nil
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	cards := make([]CardInfo, 0, s.catalog.Len())
	for _, c := range s.catalog.Cards() {
		cards = append(cards, CardInfo{
			Name:         c.Name,
			CardType:     c.CardType.String(),
			Cost:         c.Cost,
			Rarity:       c.Rarity.String(),
			Target:       c.Target.String(),
			Damage:       c.Damage,
			HitSpeed:     c.HitSpeed,
			Range:        c.Range,
			AreaDamage:   c.AreaDamage,
			SplashRadius: c.SplashRadius,
		})
	}
	writeJSON(w, http.StatusOK, cards)
}

// TowerRef names one tower by side and position.
type TowerRef struct {
	Side  string `json:"side"`
	Tower string `json:"tower"`
}

// AnalyzeRequest is the body of POST /api/analyze. Either Deck or
// DeckNumber selects the deck; neither means the default deck.
type AnalyzeRequest struct {
	Deck            []string   `json:"deck,omitempty"`
	DeckNumber      int        `json:"deck_number,omitempty"`
	Side            string     `json:"side,omitempty"`
	Elixir          *float64   `json:"elixir,omitempty"`
	OpponentCards   []string   `json:"opponent_cards,omitempty"`
	DestroyedTowers []TowerRef `json:"destroyed_towers,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	a, err := s.analyze(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Debug("analyze", zap.String("recommendation", a.Recommendation))
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) analyze(req AnalyzeRequest) (engine.Analysis, error) {
	side, err := game.ParseSide(req.Side)
	if err != nil {
		return engine.Analysis{}, err
	}

	var deck []*game.Card
	switch {
	case len(req.Deck) > 0:
		deck, err = s.catalog.LookupAll(req.Deck)
	case req.DeckNumber > 0:
		_, deck, err = game.DeckByNumber(s.decksFile, req.DeckNumber, s.catalog)
	default:
		deck, err = game.DefaultDeck(s.catalog)
	}
	if err != nil {
		return engine.Analysis{}, err
	}
	p, err := game.NewPlayer(deck, "")
	if err != nil {
		return engine.Analysis{}, err
	}
	if req.Elixir != nil {
		p.AddElixir(*req.Elixir - p.Elixir())
	}

	hints, err := s.catalog.LookupAll(req.OpponentCards)
	if err != nil {
		return engine.Analysis{}, err
	}

	board := game.DefaultBoard()
	for _, ref := range req.DestroyedTowers {
		ts, err := game.ParseSide(ref.Side)
		if err != nil {
			return engine.Analysis{}, err
		}
		t, err := game.ParseTower(ref.Tower)
		if err != nil {
			return engine.Analysis{}, err
		}
		if err := board.DestroyTower(ts, t); err != nil {
			return engine.Analysis{}, err
		}
	}

	return engine.New(board).Analyze(p, side, hints), nil
}

// handleWebSocket bridges a browser to a TCP advisor server. The first
// browser message names the server and carries the join request; after
// that, messages pass through unchanged in both directions.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.logger.Warn("websocket accept", zap.Error(err))
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()

	_, connectData, err := wsConn.Read(ctx)
	if err != nil {
		s.logger.Debug("websocket read connect", zap.Error(err))
		return
	}

	var connectMsg struct {
		Type string          `json:"type"`
		Addr string          `json:"addr"`
		Join json.RawMessage `json:"join"`
	}
	if err := json.Unmarshal(connectData, &connectMsg); err != nil || connectMsg.Type != "connect" {
		wsConn.Close(websocket.StatusPolicyViolation, "expected connect message")
		return
	}

	var d net.Dialer
	dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	tcpConn, err := d.DialContext(dialCtx, "tcp", connectMsg.Addr)
	cancel()
	if err != nil {
		errMsg, _ := json.Marshal(map[string]string{
			"type":  "error",
			"error": fmt.Sprintf("could not connect to advisor at %s: %v", connectMsg.Addr, err),
		})
		wsConn.Write(ctx, websocket.MessageText, errMsg)
		wsConn.Close(websocket.StatusNormalClosure, "connection failed")
		return
	}
	defer tcpConn.Close()

	log := s.logger.With(zap.String("advisor", connectMsg.Addr))
	log.Info("websocket bridge opened")

	join := connectMsg.Join
	if len(join) == 0 {
		join = json.RawMessage(`{"type":"join"}`)
	}
	if _, err := tcpConn.Write(append(join, '\n')); err != nil {
		log.Warn("tcp write join", zap.Error(err))
		return
	}

	done := make(chan struct{})

	// TCP → WebSocket
	go func() {
		defer close(done)
		dec := json.NewDecoder(tcpConn)
		for {
			var msg json.RawMessage
			if err := dec.Decode(&msg); err != nil {
				if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
					log.Debug("tcp read", zap.Error(err))
				}
				return
			}
			if err := wsConn.Write(ctx, websocket.MessageText, msg); err != nil {
				log.Debug("websocket write", zap.Error(err))
				return
			}
		}
	}()

	// WebSocket → TCP
	go func() {
		for {
			_, data, err := wsConn.Read(ctx)
			if err != nil {
				tcpConn.Close()
				return
			}
			if _, err := tcpConn.Write(append(data, '\n')); err != nil {
				log.Debug("tcp write", zap.Error(err))
				return
			}
		}
	}()

	<-done
	log.Info("websocket bridge closed")
	wsConn.Close(websocket.StatusNormalClosure, "session ended")
}

// ListenAndServe serves HTTP on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.mux, ReadHeaderTimeout: 10 * time.Second}
	stop := context.AfterFunc(ctx, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	})
	defer stop()

	s.logger.Info("web UI listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
