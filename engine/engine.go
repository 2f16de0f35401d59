package engine

import (
	"errors"
	"time"

	"tictactoe/game"
	"tictactoe/player"
)

var ErrInvalidPolicyResult = errors.New("invalid policy result")

// State is the lifecycle of a match: Idle until Start, Running while plies are
// played, Terminal once a win or a draw is detected.
type State int

const (
	Idle State = iota
	Running
	Terminal
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Terminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// TurnObserver is notified of match events. Notifications are fire-and-forget.
type TurnObserver interface {
	BeginGame(count, total int, players []*player.Player, board *game.Board)
	Turn(board *game.Board, p game.Player, pos game.Position, score int)
	EndGame(count, total int, board *game.Board, winner int, duration time.Duration)
}

type nopObserver struct{}

func (nopObserver) BeginGame(int, int, []*player.Player, *game.Board) {}
func (nopObserver) Turn(*game.Board, game.Player, game.Position, int) {}
func (nopObserver) EndGame(int, int, *game.Board, int, time.Duration) {}
