package player

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"

	"tictactoe/game"
)

type randomPolicy struct {
	rng *rand.Rand
}

// NewRandomPolicy picks uniformly among empty cells. A zero seed is replaced by the current time.
func NewRandomPolicy(seed uint64) Policy {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &randomPolicy{rng: rand.New(rand.NewSource(seed))}
}

func (p *randomPolicy) Name() string {
	return string(Random)
}

func (p *randomPolicy) Move(board *game.Board, _ game.Players, self game.Player) (Decision, error) {
	cells := board.EmptyCells()
	if len(cells) == 0 {
		return Decision{}, fmt.Errorf("%w: board is full for player %d", ErrNoMove, self.ID)
	}
	return Decision{Position: cells[p.rng.Intn(len(cells))]}, nil
}
