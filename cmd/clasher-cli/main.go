package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/peterkuimelis/clasher/internal/config"
	"github.com/peterkuimelis/clasher/internal/engine"
	"github.com/peterkuimelis/clasher/internal/game"
	clashernet "github.com/peterkuimelis/clasher/internal/net"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	cmd := os.Args[1]
	switch cmd {
	case "serve":
		err = runServe(os.Args[2:])
	case "connect":
		err = runConnect(os.Args[2:])
	case "best":
		err = runBest(os.Args[2:])
	case "analyze":
		err = runAnalyze(os.Args[2:])
	case "zones":
		err = runZones(os.Args[2:])
	case "simulate":
		err = runSimulate(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  clasher serve    [--port P] [--decks FILE] [--cards FILE] [--events]")
	fmt.Println("  clasher connect  [--addr ADDR] [--deck N] [--name NAME] [--side SIDE]")
	fmt.Println("  clasher best     [position flags] [--top N]")
	fmt.Println("  clasher analyze  [position flags] [--json]")
	fmt.Println("  clasher zones    [--side SIDE]")
	fmt.Println("  clasher simulate [position flags] [--regen E]")
	fmt.Println()
	fmt.Println("Position flags:")
	fmt.Println("  --deck N          deck number from the decks file (default: built-in deck)")
	fmt.Println("  --hand LIST       comma-separated 8-card deck, overrides --deck")
	fmt.Println("  --elixir E        current elixir (default 5)")
	fmt.Println("  --opponent LIST   comma-separated opponent cards seen")
	fmt.Println("  --destroyed LIST  destroyed towers as side:tower, e.g. enemy:left")
	fmt.Println()
	fmt.Println("Every command accepts --config FILE; CLASHER_* environment variables override it.")
}

// loadConfig reads the config file named by --config and applies the
// environment overrides.
func loadConfig(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	cfg = config.FromEnv(cfg)
	return cfg, cfg.Validate()
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "clasher.yaml", "path to config file")
	port := fs.String("port", "", "TCP port to listen on (overrides config)")
	decksFile := fs.String("decks", "", "path to decks file (overrides config)")
	cardsFile := fs.String("cards", "", "path to cards file (overrides config)")
	events := fs.Bool("events", false, "print the match event log of every session")
	fs.Parse(args)

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	if *port != "" {
		cfg.Port = *port
	}
	if *decksFile != "" {
		cfg.Decks = *decksFile
	}
	if *cardsFile != "" {
		cfg.Cards = *cardsFile
	}

	logger, err := cfg.Logger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	catalog, err := cfg.Catalog()
	if err != nil {
		return err
	}

	srv := &clashernet.Server{
		DeckFile: cfg.Decks,
		Port:     cfg.Port,
		Catalog:  catalog,
		TopN:     cfg.TopN,
		Logger:   logger,
	}
	if *events {
		srv.EventLog = os.Stdout
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info("starting advisor", zap.Int("cards", catalog.Len()), zap.String("decks", cfg.Decks))
	return srv.Run(ctx)
}

func runConnect(args []string) error {
	fs := flag.NewFlagSet("connect", flag.ExitOnError)
	addr := fs.String("addr", "localhost:9000", "server address to connect to")
	deck := fs.Int("deck", 0, "deck number to use (from the server's decks file)")
	hand := fs.String("hand", "", "comma-separated 8-card deck, overrides --deck")
	name := fs.String("name", "", "player name")
	side := fs.String("side", "friendly", "friendly or enemy")
	fs.Parse(args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	join := clashernet.ClientMessage{
		DeckNumber: *deck,
		Deck:       splitList(*hand),
		Name:       *name,
		Side:       *side,
	}
	fmt.Printf("Connecting to %s (type help for commands)\n", *addr)
	return clashernet.Connect(ctx, *addr, join, os.Stdin, os.Stdout)
}

func runBest(args []string) error {
	fs := flag.NewFlagSet("best", flag.ExitOnError)
	pf := addPositionFlags(fs)
	top := fs.Int("top", 0, "number of moves to list (default: config top_n)")
	fs.Parse(args)

	pos, err := pf.build()
	if err != nil {
		return err
	}
	n := *top
	if n <= 0 {
		n = pos.cfg.TopN
	}

	fmt.Println(pos.player)
	moves := engine.New(pos.board).BestMoves(pos.player, pos.side, pos.hints, n)
	if len(moves) == 0 {
		fmt.Println(engine.NoMovesAvailable)
		return nil
	}
	for i, m := range moves {
		fmt.Printf("%d. %s - Score: %.2f\n", i+1, m, m.Score)
	}
	return nil
}

func runAnalyze(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	pf := addPositionFlags(fs)
	asJSON := fs.Bool("json", false, "print the analysis as JSON")
	fs.Parse(args)

	pos, err := pf.build()
	if err != nil {
		return err
	}
	a := engine.New(pos.board).Analyze(pos.player, pos.side, pos.hints)
	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	}
	clashernet.RenderAnalysis(os.Stdout, &a)
	return nil
}

func runZones(args []string) error {
	fs := flag.NewFlagSet("zones", flag.ExitOnError)
	sideName := fs.String("side", "friendly", "friendly or enemy")
	fs.Parse(args)

	side, err := game.ParseSide(*sideName)
	if err != nil {
		return err
	}
	board := game.DefaultBoard()
	zones := board.DeploymentPositions(side)
	fmt.Printf("%s deployment zones: %d positions\n", side, len(zones))
	for i, p := range zones {
		valid := ""
		if !board.IsValidPosition(p) {
			valid = "  (invalid)"
		}
		fmt.Printf("%2d. %s%s\n", i+1, p.Coords(), valid)
	}
	fmt.Println()
	for _, s := range []game.Side{game.SideFriendly, game.SideEnemy} {
		for _, t := range board.StandingTowers(s) {
			fmt.Printf("%s %s tower: %s\n", s, t, board.TowerPosition(s, t).Coords())
		}
	}
	return nil
}

func runSimulate(args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	pf := addPositionFlags(fs)
	regen := fs.Float64("regen", 2, "elixir regenerated between the two turns")
	turns := fs.Int("turns", 2, "number of turns to play")
	fs.Parse(args)

	pos, err := pf.build()
	if err != nil {
		return err
	}
	p := pos.player
	eng := engine.New(pos.board)

	fmt.Printf("Starting state: %s\n", p)
	for turn := 1; turn <= *turns; turn++ {
		if turn > 1 {
			p.AddElixir(*regen)
			fmt.Printf("After elixir regen: Elixir = %.1f\n", p.Elixir())
		}
		best := eng.BestMoves(p, pos.side, pos.hints, 1)
		if len(best) == 0 {
			fmt.Printf("\nTurn %d - Not enough elixir to play any card\n", turn)
			continue
		}
		fmt.Printf("\nTurn %d - Playing: %s\n", turn, best[0])
		if err := p.Play(best[0].Card); err != nil {
			return err
		}
		fmt.Printf("After playing: Elixir = %.1f\n", p.Elixir())
	}

	names := make([]string, 0, game.HandSize)
	for _, c := range p.Hand() {
		names = append(names, c.Name)
	}
	fmt.Printf("\nCurrent hand: %s\n", joinList(names))
	return nil
}
