package searcher

import "tictactoe/game"

// AlphaBeta is Minimax with alpha-beta pruning, started with the full (NegInf, PosInf) window.
// It returns the same root decision as Minimax while visiting at most as many nodes.
func AlphaBeta(board *game.Board, players game.Players, depth int, perspective game.Player, maximizing bool, options ...Option) Result {
	s := newSearch(players, perspective, options...)
	s.metrics.Start(AlphaBetaName, depth)
	return s.alphaBeta(board, depth, perspective, NegInf, PosInf, maximizing)
}

// alphaBeta is fail-soft: every expanded node keeps its own running best, so it
// reports a position even when all children fail against an inherited bound.
// At the root best and alpha (or beta) move together.
func (s *search) alphaBeta(board *game.Board, depth int, mover game.Player, alpha, beta int, maximizing bool) Result {
	if result, ok := s.cutoff(board, depth); ok {
		return result
	}

	best := Result{Score: initScore(maximizing)}
	for _, pos := range board.EmptyCells() {
		child := s.child(board, mover, depth, pos)
		result := s.alphaBeta(child, depth-1, s.players.Opponent(mover), alpha, beta, !maximizing)

		if maximizing {
			if result.Score > best.Score {
				best = Result{Position: pos, Found: true, Score: result.Score}
			}
			alpha = max(alpha, result.Score)
		} else {
			if result.Score < best.Score {
				best = Result{Position: pos, Found: true, Score: result.Score}
			}
			beta = min(beta, result.Score)
		}

		if beta <= alpha { // Cutoff
			break
		}
	}
	return best
}
