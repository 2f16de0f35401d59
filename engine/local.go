package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/player"
)

type Option func(e *Engine)

func WithEvaluator(evaluator game.Evaluator) Option {
	return func(e *Engine) {
		if evaluator.Valid() {
			e.evaluator = evaluator
		}
	}
}

func WithObserver(observer TurnObserver) Option {
	return func(e *Engine) {
		if observer != nil {
			e.observer = observer
		}
	}
}

// Engine runs matches between two players on a shared board. The board is the
// only mutable state: it changes once per ply, after the active policy decided.
type Engine struct {
	Board      *game.Board
	Players    []*player.Player
	identities game.Players
	evaluator  game.Evaluator
	observer   TurnObserver
	state      State

	count       int // Current match number
	ntimes      int // Matches requested by the last Play
	results     []int
	gameMetrics []metrics.GameMetric
	moveMetrics [][]metrics.MoveMetric
	totalTime   time.Duration
}

func NewEngine(rows, cols int, players []*player.Player, options ...Option) (*Engine, error) {
	if len(players) != 2 {
		return nil, fmt.Errorf("need exactly two players, got %d", len(players))
	}
	board, err := game.NewBoard(rows, cols)
	if err != nil {
		return nil, err
	}
	identities := game.Players{players[0].Player, players[1].Player}
	if err := identities.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{ // Default values
		Board:      board,
		Players:    players,
		identities: identities,
		evaluator:  game.DefaultEvaluator(),
		observer:   nopObserver{},
		state:      Idle,
		ntimes:     1,
	}
	for _, option := range options {
		option(e)
	}
	return e, nil
}

// Start resets the board and every scripted sequence for a new match.
func (e *Engine) Start() {
	e.count++
	e.Board = e.Board.Copy()
	e.Board.Reset()
	for _, p := range e.Players {
		p.Start()
	}
	e.state = Running
	e.observer.BeginGame(e.count, e.ntimes, e.Players, e.Board)
}

// PlayOnce plays a full match and returns the winner id or game.Draw.
func (e *Engine) PlayOnce() (int, error) {
	e.Start()

	startTime := time.Now()
	moves := []metrics.MoveMetric{}
	winner := game.NoWinner
	step := 0

	for winner == game.NoWinner {
		for _, p := range e.Players {
			step++
			move, err := e.ply(p, step)
			if err != nil {
				e.state = Terminal
				return game.NoWinner, err
			}
			moves = append(moves, move)
			e.observer.Turn(e.Board, p.Player, move.Position, move.Score)

			winner = e.evaluator.Evaluate(e.Board, e.identities)
			if winner != game.NoWinner {
				break
			}
		}
	}
	e.state = Terminal

	endTime := time.Now()
	duration := endTime.Sub(startTime)
	e.totalTime += duration
	e.results = append(e.results, winner)
	e.moveMetrics = append(e.moveMetrics, moves)
	e.gameMetrics = append(e.gameMetrics, metrics.GameMetric{
		StartingPlayer: e.Players[0].ID,
		Winner:         winner,
		StartTime:      startTime,
		EndTime:        endTime,
		Duration:       duration,
		TotalMoves:     len(moves),
	})
	e.observer.EndGame(e.count, e.ntimes, e.Board, winner, duration)

	log.Debug().Msgf("game %d of %d over after %d moves with result %d", e.count, e.ntimes, len(moves), winner)
	return winner, nil
}

// ply applies one move of p: the next scripted candidate if any can be placed,
// otherwise the policy's decision.
func (e *Engine) ply(p *player.Player, step int) (metrics.MoveMetric, error) {
	if pos, ok := p.PlaceScripted(e.Board); ok {
		return metrics.MoveMetric{Step: step, Player: p.ID, Position: pos, Scripted: true}, nil
	}

	if p.Policy == nil {
		return metrics.MoveMetric{}, fmt.Errorf("%w: player %d has no policy", ErrInvalidPolicyResult, p.ID)
	}
	decision, err := p.Policy.Move(e.Board, e.identities, p.Player)
	if err != nil {
		return metrics.MoveMetric{}, fmt.Errorf("%w: %s policy of player %d: %w", ErrInvalidPolicyResult, p.Policy.Name(), p.ID, err)
	}
	if !e.Board.Place(decision.Position, p.ID) {
		return metrics.MoveMetric{}, fmt.Errorf("%w: %s policy of player %d chose unavailable cell %s",
			ErrInvalidPolicyResult, p.Policy.Name(), p.ID, decision.Position)
	}

	return metrics.MoveMetric{
		Step:         step,
		Player:       p.ID,
		Position:     decision.Position,
		Score:        decision.Score,
		SearchMetric: decision.Search,
	}, nil
}

// Play runs ntimes matches and returns their outcomes in order.
func (e *Engine) Play(ntimes int) ([]int, error) {
	if ntimes <= 0 {
		return nil, fmt.Errorf("number of games must be positive, got %d", ntimes)
	}
	e.ntimes = ntimes
	e.count = 0
	e.totalTime = 0
	e.results = make([]int, 0, ntimes)
	e.gameMetrics = make([]metrics.GameMetric, 0, ntimes)
	e.moveMetrics = make([][]metrics.MoveMetric, 0, ntimes)

	log.Info().Msgf("playing %d games on a %dx%d board: %s vs %s",
		ntimes, e.Board.Rows, e.Board.Cols, e.describe(0), e.describe(1))

	for i := 0; i < ntimes; i++ {
		if _, err := e.PlayOnce(); err != nil {
			return e.Results(), fmt.Errorf("game %d: %w", i+1, err)
		}
	}

	log.Info().Msgf("completed %d games in %s", ntimes, e.totalTime)
	return e.Results(), nil
}

func (e *Engine) describe(i int) string {
	p := e.Players[i]
	return fmt.Sprintf("%s[%s]", p.Player, p.PolicyName())
}

func (e *Engine) State() State {
	return e.state
}

// Winner evaluates the live board.
func (e *Engine) Winner() int {
	return e.evaluator.Evaluate(e.Board, e.identities)
}

func (e *Engine) Identities() game.Players {
	return e.identities
}

func (e *Engine) Count() int {
	return e.count
}

func (e *Engine) Results() []int {
	out := make([]int, len(e.results))
	copy(out, e.results)
	return out
}

func (e *Engine) GameMetrics() []metrics.GameMetric {
	return e.gameMetrics
}

// MoveMetrics returns per-game move metrics, indexed like Results.
func (e *Engine) MoveMetrics() [][]metrics.MoveMetric {
	return e.moveMetrics
}

func (e *Engine) TotalTime() time.Duration {
	return e.totalTime
}
