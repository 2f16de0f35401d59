package searcher

import (
	"math"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
)

const (
	MinimaxName   = "minimax"
	AlphaBetaName = "alpha_beta"
)

// Bounds for running bests and the alpha-beta window. Heuristic scores never reach them.
const (
	NegInf = math.MinInt
	PosInf = math.MaxInt
)

// Result is a search decision. Found is false at a cutoff node, where Position must not be played.
type Result struct {
	Position game.Position
	Found    bool
	Score    int
}

// Algorithm is the shape shared by Minimax and AlphaBeta.
type Algorithm func(board *game.Board, players game.Players, depth int, perspective game.Player, maximizing bool, options ...Option) Result

// Observer receives search notifications. It must not influence the search.
type Observer interface {
	// Node is called for every expanded child, after mover placed pos on board.
	Node(board *game.Board, mover game.Player, depth int, pos game.Position)
	// Terminal is called at every cutoff with the score from perspective's point of view.
	Terminal(board *game.Board, perspective game.Player, depth int, winner int, score int)
}

type NopObserver struct{}

func (NopObserver) Node(*game.Board, game.Player, int, game.Position) {}
func (NopObserver) Terminal(*game.Board, game.Player, int, int, int)  {}

type Option func(s *search)

func WithObserver(observer Observer) Option {
	return func(s *search) {
		if observer != nil {
			s.observer = observer
		}
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(s *search) {
		if collector != nil {
			s.metrics = collector
		}
	}
}

func WithEvaluator(evaluator game.Evaluator) Option {
	return func(s *search) {
		if evaluator.Valid() {
			s.evaluator = evaluator
		}
	}
}

// FullDepth is the root depth that makes a search exhaustive: one ply per empty cell.
func FullDepth(board *game.Board) int {
	return board.CountEmpty()
}

// ByName returns the algorithm registered under name.
func ByName(name string) (Algorithm, bool) {
	switch name {
	case MinimaxName:
		return Minimax, true
	case AlphaBetaName:
		return AlphaBeta, true
	default:
		return nil, false
	}
}

type search struct {
	players     game.Players
	perspective game.Player
	evaluator   game.Evaluator
	observer    Observer
	metrics     metrics.Collector
}

func newSearch(players game.Players, perspective game.Player, options ...Option) *search {
	s := &search{ // Default values
		players:     players,
		perspective: perspective,
		evaluator:   game.DefaultEvaluator(),
		observer:    NopObserver{},
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// cutoff scores board when depth is exhausted or the game is decided.
func (s *search) cutoff(board *game.Board, depth int) (Result, bool) {
	s.metrics.AddNode()

	winner := s.evaluator.Evaluate(board, s.players)
	if depth > 0 && winner == game.NoWinner {
		return Result{}, false
	}

	s.metrics.AddTerminal()
	score := s.evaluator.Score(board, s.players, s.perspective)
	s.observer.Terminal(board, s.perspective, depth, winner, score)
	return Result{Score: score}, true
}

// child copies board and places mover on pos, so siblings never see each other's moves.
func (s *search) child(board *game.Board, mover game.Player, depth int, pos game.Position) *game.Board {
	next := board.Copy()
	next.Place(pos, mover.ID)
	s.observer.Node(next, mover, depth, pos)
	return next
}

func initScore(maximizing bool) int {
	if maximizing {
		return NegInf
	}
	return PosInf
}
