package net

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"go.uber.org/zap"

	"github.com/peterkuimelis/clasher/internal/game"
)

// DefaultTopN is the number of moves a recommend request returns when
// neither the request nor the server sets one.
const DefaultTopN = 3

// Server hosts advisor sessions for any number of TCP clients. Each
// connection gets its own match.
type Server struct {
	DeckFile string
	Port     string
	Catalog  *game.Catalog
	TopN     int
	EventLog io.Writer // optional; receives the text event log of every session
	Logger   *zap.Logger

	wg sync.WaitGroup
}

func (s *Server) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *Server) topN() int {
	if s.TopN <= 0 {
		return DefaultTopN
	}
	return s.TopN
}

// Run listens on Port and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+s.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	s.logger().Info("advisor listening", zap.String("addr", ln.Addr().String()))
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled or the listener
// fails. It closes ln and waits for open sessions before returning.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s.Catalog == nil {
		s.Catalog = game.DefaultCatalog()
	}
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()
	defer s.wg.Wait()
	defer ln.Close()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer conn.Close()
			ctrl := NewSessionController(conn, s)
			ctrl.logger.Info("client connected")
			if err := ctrl.Run(ctx); err != nil {
				ctrl.logger.Warn("session ended with error", zap.Error(err))
				return
			}
			ctrl.logger.Info("client disconnected")
		}()
	}
}
