package game

import (
	"fmt"
	"strconv"
)

const (
	EmptyCell = 0
	NoWinner  = 0
	Draw      = -1 // Outcome of a full board without a completed run
)

// Scores reported by the heuristic, from the perspective of the scored player
const (
	WinScore  = 10
	LossScore = -WinScore
	DrawScore = 0
)

// Player is an immutable identity: its id is what occupies board cells,
// its mark is only used for display.
type Player struct {
	ID   int
	Mark string
}

func (p Player) String() string {
	return fmt.Sprintf("P%d(%s)", p.ID, p.Mark)
}

// Players is the ordered pair of players of a match. The order is the turn order.
type Players [2]Player

func NewPlayers(first, second Player) (Players, error) {
	players := Players{first, second}
	if err := players.Validate(); err != nil {
		return Players{}, err
	}
	return players, nil
}

// Validate checks that ids are positive (so that Draw stays a free sentinel) and distinct.
func (ps Players) Validate() error {
	for _, p := range ps {
		if p.ID <= 0 {
			return fmt.Errorf("invalid player id %d: must be positive", p.ID)
		}
		if p.Mark == "" {
			return fmt.Errorf("player %d has no mark", p.ID)
		}
	}
	if ps[0].ID == ps[1].ID {
		return fmt.Errorf("duplicate player id %d", ps[0].ID)
	}
	return nil
}

func (ps Players) Opponent(p Player) Player {
	if p.ID == ps[0].ID {
		return ps[1]
	}
	return ps[0]
}

func (ps Players) ByID(id int) (Player, bool) {
	for _, p := range ps {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// Mark is the display mark of a cell value: "-" for empty, the id for unknown players.
func (ps Players) Mark(v int) string {
	if v == EmptyCell {
		return "-"
	}
	if p, ok := ps.ByID(v); ok {
		return p.Mark
	}
	return strconv.Itoa(v)
}
