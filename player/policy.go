package player

import (
	"errors"
	"fmt"
	"io"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/searcher"
)

// Kind names a move selection policy, as given on the command line.
type Kind string

const (
	Random    Kind = "random"
	Minimax   Kind = searcher.MinimaxName
	AlphaBeta Kind = searcher.AlphaBetaName
	Human     Kind = "human"
)

var (
	ErrUnknownPolicy = errors.New("unknown policy")
	ErrNoMove        = errors.New("policy returned no move")
)

func Kinds() []Kind {
	return []Kind{Random, Minimax, AlphaBeta, Human}
}

// Decision is a policy's answer for one ply.
type Decision struct {
	Position game.Position
	Score    int
	Search   metrics.SearchMetric // Zero for policies that do not search
}

// Policy selects the next move of self on board. It must not modify board.
type Policy interface {
	Name() string
	Move(board *game.Board, players game.Players, self game.Player) (Decision, error)
}

// Options configures policies built by NewPolicy.
type Options struct {
	Seed      uint64            // Random policy seed, 0 for a time-based seed
	Evaluator game.Evaluator    // Win detector and scorer used by search policies
	Observer  searcher.Observer // Search trace hooks, may be nil
	Horizon   int               // Max search depth, 0 searches to the end of the game
	Input     io.Reader         // Human policy input, defaults to stdin
	Output    io.Writer         // Human policy output, defaults to stdout
}

func NewPolicy(kind Kind, options Options) (Policy, error) {
	switch kind {
	case Random:
		return NewRandomPolicy(options.Seed), nil
	case Human:
		return NewHumanPolicy(options.Input, options.Output), nil
	}
	if algorithm, ok := searcher.ByName(string(kind)); ok {
		return NewSearchPolicy(algorithm, string(kind), options), nil
	}
	return nil, fmt.Errorf("%w %q: expected one of %v", ErrUnknownPolicy, kind, Kinds())
}

// SeedFor derives the random seed of player id from a shared seed, so two
// random players do not mirror each other. 0 keeps the time-based seed.
func SeedFor(seed uint64, id int) uint64 {
	if seed == 0 {
		return 0
	}
	return seed + uint64(id)
}
