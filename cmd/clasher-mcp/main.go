package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/peterkuimelis/clasher/internal/config"
	clashermcp "github.com/peterkuimelis/clasher/internal/mcp"
)

func main() {
	cfgPath := flag.String("config", "clasher.yaml", "path to config file")
	decks := flag.String("decks", "", "path to decks YAML file (overrides config)")
	cards := flag.String("cards", "", "path to cards YAML file (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fail(err)
	}
	cfg = config.FromEnv(cfg)
	if *decks != "" {
		cfg.Decks = *decks
	}
	if *cards != "" {
		cfg.Cards = *cards
	}
	if err := cfg.Validate(); err != nil {
		fail(err)
	}

	// Production zap config writes to stderr; stdout carries the protocol.
	logger, err := cfg.Logger()
	if err != nil {
		fail(err)
	}
	defer logger.Sync()

	catalog, err := cfg.Catalog()
	if err != nil {
		fail(err)
	}
	clashermcp.SetDecksFile(cfg.Decks)
	clashermcp.SetCatalog(catalog)

	s := server.NewMCPServer("clasher", "1.0.0")
	clashermcp.RegisterTools(s)

	logger.Info("mcp server on stdio", zap.Int("cards", catalog.Len()), zap.String("decks", cfg.Decks))
	if err := server.ServeStdio(s); err != nil {
		logger.Error("mcp server stopped", zap.Error(err))
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
