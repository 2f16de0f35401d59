package player

import (
	"fmt"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/searcher"
)

type searchPolicy struct {
	name      string
	algorithm searcher.Algorithm
	evaluator game.Evaluator
	observer  searcher.Observer
	horizon   int
	metrics   metrics.Collector
}

// NewSearchPolicy plays the root decision of algorithm, maximizing for the player to move.
func NewSearchPolicy(algorithm searcher.Algorithm, name string, options Options) Policy {
	return &searchPolicy{
		name:      name,
		algorithm: algorithm,
		evaluator: options.Evaluator,
		observer:  options.Observer,
		horizon:   options.Horizon,
		metrics:   metrics.NewCollector(),
	}
}

func (p *searchPolicy) Name() string {
	return p.name
}

func (p *searchPolicy) Move(board *game.Board, players game.Players, self game.Player) (Decision, error) {
	depth := p.depth(board)

	result := p.algorithm(board, players, depth, self, true,
		searcher.WithEvaluator(p.evaluator),
		searcher.WithObserver(p.observer),
		searcher.WithMetrics(p.metrics),
	)
	metric := p.metrics.Complete()

	if !result.Found {
		return Decision{}, fmt.Errorf("%w: %s search for player %d ended at a cutoff on\n%s", ErrNoMove, p.name, self.ID, board)
	}
	return Decision{Position: result.Position, Score: result.Score, Search: metric}, nil
}

// depth is the number of empty cells, capped by the horizon when one is set.
// Without a horizon the search always reaches the end of the game.
func (p *searchPolicy) depth(board *game.Board) int {
	depth := searcher.FullDepth(board)
	if p.horizon > 0 {
		depth = min(depth, p.horizon)
	}
	return depth
}
