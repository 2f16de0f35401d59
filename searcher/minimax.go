package searcher

import "tictactoe/game"

// Minimax searches depth plies below board. The mover alternates every ply,
// starting with perspective, while scores are always from perspective's point of view.
//
// Children are scanned in row-major order and only strictly better scores
// replace the running best, so ties go to the lowest row then lowest column.
func Minimax(board *game.Board, players game.Players, depth int, perspective game.Player, maximizing bool, options ...Option) Result {
	s := newSearch(players, perspective, options...)
	s.metrics.Start(MinimaxName, depth)
	return s.minimax(board, depth, perspective, maximizing)
}

func (s *search) minimax(board *game.Board, depth int, mover game.Player, maximizing bool) Result {
	if result, ok := s.cutoff(board, depth); ok {
		return result
	}

	best := Result{Score: initScore(maximizing)}
	for _, pos := range board.EmptyCells() {
		child := s.child(board, mover, depth, pos)
		result := s.minimax(child, depth-1, s.players.Opponent(mover), !maximizing)

		if (maximizing && result.Score > best.Score) || (!maximizing && result.Score < best.Score) {
			best = Result{Position: pos, Found: true, Score: result.Score}
		}
	}
	return best
}
