package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/peterkuimelis/clasher/internal/config"
	"github.com/peterkuimelis/clasher/internal/web"
)

func main() {
	cfgPath := flag.String("config", "clasher.yaml", "path to config file")
	port := flag.Int("port", 0, "HTTP port to listen on (overrides config)")
	decksFile := flag.String("decks", "", "path to decks YAML file (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fail(err)
	}
	cfg = config.FromEnv(cfg)
	if *port > 0 {
		cfg.WebPort = *port
	}
	if *decksFile != "" {
		cfg.Decks = *decksFile
	}
	if err := cfg.Validate(); err != nil {
		fail(err)
	}

	logger, err := cfg.Logger()
	if err != nil {
		fail(err)
	}
	defer logger.Sync()

	catalog, err := cfg.Catalog()
	if err != nil {
		fail(err)
	}

	srv, err := web.NewServer(web.Options{
		DecksFile: cfg.Decks,
		Catalog:   catalog,
		Logger:    logger,
	})
	if err != nil {
		fail(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := fmt.Sprintf(":%d", cfg.WebPort)
	logger.Info("clasher web UI", zap.String("url", fmt.Sprintf("http://localhost:%d", cfg.WebPort)))
	if err := srv.ListenAndServe(ctx, addr); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
