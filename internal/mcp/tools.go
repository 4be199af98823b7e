package mcp

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/clasher/internal/game"
)

// defaultController serves the tools registered by RegisterTools (one match
// per stdio process).
var defaultController = NewMatchController("decks.yaml", nil)

// SetDecksFile sets the path to the decks YAML file.
func SetDecksFile(path string) {
	defaultController.mu.Lock()
	defer defaultController.mu.Unlock()
	defaultController.decksFile = path
}

// SetCatalog replaces the card catalog used for new matches.
func SetCatalog(catalog *game.Catalog) {
	defaultController.mu.Lock()
	defer defaultController.mu.Unlock()
	defaultController.catalog = catalog
}

// RegisterTools adds all advisor tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	defaultController.Register(s)
}

// Register adds all advisor tools bound to this controller.
func (c *MatchController) Register(s *server.MCPServer) {
	s.AddTool(startMatchTool(), c.handleStartMatch)
	s.AddTool(recommendMovesTool(), c.handleRecommendMoves)
	s.AddTool(analyzePositionTool(), c.handleAnalyzePosition)
	s.AddTool(playCardTool(), c.handlePlayCard)
	s.AddTool(addElixirTool(), c.handleAddElixir)
	s.AddTool(destroyTowerTool(), c.handleDestroyTower)
	s.AddTool(setOpponentCardsTool(), c.handleSetOpponentCards)
	s.AddTool(listCardsTool(), c.handleListCards)
	s.AddTool(getMatchStateTool(), c.handleGetMatchState)
	s.AddTool(endMatchTool(), c.handleEndMatch)
}

// --- Tool definitions ---

func startMatchTool() mcp.Tool {
	return mcp.NewTool("start_match",
		mcp.WithDescription("Start a new advisor match, replacing any running one. The player starts with 5 elixir "+
			"and the first four cards of the deck in hand. Returns the initial state."),
		mcp.WithString("deck", mcp.Description("Comma-separated list of exactly 8 card names. Overrides deck_number.")),
		mcp.WithNumber("deck_number", mcp.Description("Deck number from decks.yaml (1-indexed). Omit for the default deck.")),
		mcp.WithString("name", mcp.Description("Player name")),
		mcp.WithString("side", mcp.Description("'friendly' (default) or 'enemy'")),
	)
}

func recommendMovesTool() mcp.Tool {
	return mcp.NewTool("recommend_moves",
		mcp.WithDescription("List the best (card, position) moves for the current hand and elixir, highest score first."),
		mcp.WithNumber("top_n", mcp.Description("How many moves to return (default 3)")),
	)
}

func analyzePositionTool() mcp.Tool {
	return mcp.NewTool("analyze_position",
		mcp.WithDescription("Full analysis: elixir, hand, playable count, top 5 moves with score breakdowns and a recommendation. Read-only."),
	)
}

func playCardTool() mcp.Tool {
	return mcp.NewTool("play_card",
		mcp.WithDescription("Play a card from hand at its best position, spending elixir and cycling the hand. "+
			"Omit card to play the top recommendation."),
		mcp.WithString("card", mcp.Description("Card name, e.g. 'Hog Rider'")),
	)
}

func addElixirTool() mcp.Tool {
	return mcp.NewTool("add_elixir",
		mcp.WithDescription("Add elixir to the player (capped at 10)."),
		mcp.WithNumber("amount", mcp.Required(), mcp.Description("Elixir to add")),
	)
}

func destroyTowerTool() mcp.Tool {
	return mcp.NewTool("destroy_tower",
		mcp.WithDescription("Mark a tower destroyed. Positioning scores only consider standing towers."),
		mcp.WithString("side", mcp.Required(), mcp.Description("'friendly' or 'enemy'")),
		mcp.WithString("tower", mcp.Required(), mcp.Description("'king', 'left' or 'right'")),
	)
}

func setOpponentCardsTool() mcp.Tool {
	return mcp.NewTool("set_opponent_cards",
		mcp.WithDescription("Replace the list of opponent cards seen so far. Counter scores use this list."),
		mcp.WithString("cards", mcp.Required(), mcp.Description("Comma-separated card names, or empty to clear")),
	)
}

func listCardsTool() mcp.Tool {
	return mcp.NewTool("list_cards",
		mcp.WithDescription("List every card in the catalog with its type, cost and targeting. Read-only."),
	)
}

func getMatchStateTool() mcp.Tool {
	return mcp.NewTool("get_match_state",
		mcp.WithDescription("Get the current match state and events logged since the last call. Read-only."),
	)
}

func endMatchTool() mcp.Tool {
	return mcp.NewTool("end_match",
		mcp.WithDescription("Discard the running match. Returns its final state and remaining events."),
	)
}

// --- Tool handlers ---

func (c *MatchController) handleStartMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := c.Start(StartRequest{
		Deck:       splitNames(request.GetString("deck", "")),
		DeckNumber: request.GetInt("deck_number", 0),
		Name:       request.GetString("name", ""),
		Side:       request.GetString("side", ""),
	})
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start match: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(sess.response())), nil
}

func (c *MatchController) handleRecommendMoves(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := c.Active()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	n := request.GetInt("top_n", 3)
	if n < 1 {
		return mcp.NewToolResultErrorf("top_n must be >= 1, got %d", n), nil
	}
	moves := sess.match.Summaries(n)
	resp := sess.response()
	resp.Moves = moves
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (c *MatchController) handleAnalyzePosition(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := c.Active()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	a := sess.match.Analyze()
	resp := sess.response()
	resp.Analysis = &a
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (c *MatchController) handlePlayCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := c.Active()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var mv *game.Move
	if name := strings.TrimSpace(request.GetString("card", "")); name != "" {
		mv, err = sess.match.PlayCard(name)
	} else {
		mv, err = sess.match.PlayBest()
	}
	if err != nil {
		return mcp.NewToolResultErrorf("Cannot play: %v", err), nil
	}

	played := sess.match.Summarize(mv)
	resp := sess.response()
	resp.Played = &played
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (c *MatchController) handleAddElixir(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := c.Active()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	amount := request.GetFloat("amount", 0)
	if amount < 0 {
		return mcp.NewToolResultErrorf("amount must be >= 0, got %g", amount), nil
	}
	sess.match.AddElixir(amount)
	return mcp.NewToolResultText(respondJSON(sess.response())), nil
}

func (c *MatchController) handleDestroyTower(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := c.Active()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	side, err := game.ParseSide(request.GetString("side", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tower, err := game.ParseTower(request.GetString("tower", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := sess.match.DestroyTower(side, tower); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(respondJSON(sess.response())), nil
}

func (c *MatchController) handleSetOpponentCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := c.Active()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := sess.match.SetHints(splitNames(request.GetString("cards", ""))); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(respondJSON(sess.response())), nil
}

func (c *MatchController) handleListCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	catalog := c.Catalog()
	resp := &ToolResponse{Cards: make([]CardView, 0, catalog.Len())}
	for _, card := range catalog.Cards() {
		resp.Cards = append(resp.Cards, CardView{
			Name:   card.Name,
			Type:   card.CardType.String(),
			Cost:   card.Cost,
			Target: card.Target.String(),
			Damage: card.Damage,
			Area:   card.AreaDamage,
		})
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (c *MatchController) handleGetMatchState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := c.Active()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(respondJSON(sess.response())), nil
}

func (c *MatchController) handleEndMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := c.Active()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	c.Stop()
	return mcp.NewToolResultText(respondJSON(sess.response())), nil
}

func splitNames(s string) []string {
	var out []string
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}
