package player

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"

	"tictactoe/game"
)

// Player is a game participant with its move policy and an optional scripted
// sequence of moves tried before the policy is consulted.
type Player struct {
	game.Player
	Policy   Policy
	Sequence []game.Position // Template, copied at the start of every match
	current  []game.Position
}

// NewPlayer creates a new Player instance.
func NewPlayer(id int, mark string, policy Policy) *Player {
	return &Player{
		Player: game.Player{ID: id, Mark: mark},
		Policy: policy,
	}
}

// Start rewinds the scripted sequence for a new match.
func (p *Player) Start() {
	p.current = slices.Clone(p.Sequence)
}

// Remaining lists the scripted positions not yet consumed in this match.
func (p *Player) Remaining() []game.Position {
	return p.current
}

// PlaceScripted consumes the scripted sequence until a candidate can be placed on board.
// Occupied candidates are discarded too. It reports false once the sequence is
// exhausted without a placement, so the caller falls back to the policy.
func (p *Player) PlaceScripted(board *game.Board) (game.Position, bool) {
	for len(p.current) > 0 {
		pos := p.current[0]
		p.current = p.current[1:]
		if board.Place(pos, p.ID) {
			return pos, true
		}
	}
	return game.Position{}, false
}

func (p *Player) PolicyName() string {
	if p.Policy == nil {
		return ""
	}
	return p.Policy.Name()
}

// Spec is the (id, policy, mark) triple a player is configured from.
type Spec struct {
	ID   int
	Kind Kind
	Mark string
}

// ParseSpec parses "id,kind,mark", e.g. "1,minimax,X".
func ParseSpec(s string) (Spec, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Spec{}, fmt.Errorf("invalid player %q: expected id,kind,mark", s)
	}
	id, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Spec{}, fmt.Errorf("invalid player id in %q: %w", s, err)
	}
	return Spec{
		ID:   id,
		Kind: Kind(strings.TrimSpace(parts[1])),
		Mark: strings.TrimSpace(parts[2]),
	}, nil
}

func (s Spec) String() string {
	return fmt.Sprintf("%d,%s,%s", s.ID, s.Kind, s.Mark)
}

// ParseSequence parses "id:positions", e.g. "1:0,0;1,1".
func ParseSequence(s string) (int, []game.Position, error) {
	head, tail, ok := strings.Cut(s, ":")
	if !ok {
		return 0, nil, fmt.Errorf("invalid sequence %q: expected id:positions", s)
	}
	id, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return 0, nil, fmt.Errorf("invalid sequence player id in %q: %w", s, err)
	}
	positions, err := game.ParsePositions(tail)
	if err != nil {
		return 0, nil, fmt.Errorf("invalid sequence %q: %w", s, err)
	}
	return id, positions, nil
}

// NewPlayers builds the two players of a match. Unknown policy kinds, invalid
// identities and sequences for unknown players are configuration errors.
func NewPlayers(specs []Spec, sequences map[int][]game.Position, options Options) ([]*Player, error) {
	if len(specs) != 2 {
		return nil, fmt.Errorf("expected 2 players, got %d", len(specs))
	}

	identities := game.Players{}
	players := make([]*Player, len(specs))
	for i, spec := range specs {
		opts := options
		opts.Seed = SeedFor(options.Seed, spec.ID)
		policy, err := NewPolicy(spec.Kind, opts)
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", spec.ID, err)
		}
		players[i] = NewPlayer(spec.ID, spec.Mark, policy)
		identities[i] = players[i].Player
	}
	if err := identities.Validate(); err != nil {
		return nil, err
	}

	for id, seq := range sequences {
		found := false
		for _, p := range players {
			if p.ID == id {
				p.Sequence = seq
				found = true
			}
		}
		if !found {
			return nil, fmt.Errorf("sequence given for unknown player %d", id)
		}
	}
	return players, nil
}
