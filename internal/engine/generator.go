package engine

import "github.com/peterkuimelis/clasher/internal/game"

// GenerateMoves returns the cross product of playable cards and the side's
// deployment zones, keeping only positions the board accepts. Duplicate zones
// produce duplicate moves.
func (e *Engine) GenerateMoves(playable []*game.Card, side game.Side) []*game.Move {
	positions := e.board.DeploymentPositions(side)
	moves := make([]*game.Move, 0, len(playable)*len(positions))

	for _, card := range playable {
		for _, pos := range positions {
			if e.board.IsValidPosition(pos) {
				moves = append(moves, game.NewMove(card, pos))
			}
		}
	}
	return moves
}

// PlayerMoves generates moves for the cards the player can currently afford.
func (e *Engine) PlayerMoves(p *game.Player, side game.Side) []*game.Move {
	return e.GenerateMoves(p.Playable(), side)
}
