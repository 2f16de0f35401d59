package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidShape = errors.New("invalid board shape")

// Position is a (row, col) cell coordinate, used both as move target and as search decision.
type Position struct {
	Row int
	Col int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Board is a rows x cols grid of player ids stored row-major. EmptyCell marks a free cell.
type Board struct {
	Rows  int
	Cols  int
	Cells []int
}

func NewBoard(rows, cols int) (*Board, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidShape, rows, cols)
	}
	return &Board{
		Rows:  rows,
		Cols:  cols,
		Cells: make([]int, rows*cols),
	}, nil
}

// BoardFromRows builds a board from a literal grid, mostly for tests and scripted setups.
func BoardFromRows(rows [][]int) (*Board, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrInvalidShape)
	}
	b, err := NewBoard(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		if len(row) != b.Cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidShape, r, len(row), b.Cols)
		}
		copy(b.Cells[r*b.Cols:], row)
	}
	return b, nil
}

// Copy returns an independent board; searches place moves on copies only.
func (b *Board) Copy() *Board {
	cells := make([]int, len(b.Cells))
	copy(cells, b.Cells)
	return &Board{
		Rows:  b.Rows,
		Cols:  b.Cols,
		Cells: cells,
	}
}

func (b *Board) Size() int {
	return b.Rows * b.Cols
}

func (b *Board) InBounds(pos Position) bool {
	return pos.Row >= 0 && pos.Row < b.Rows && pos.Col >= 0 && pos.Col < b.Cols
}

func (b *Board) At(pos Position) int {
	return b.Cells[pos.Row*b.Cols+pos.Col]
}

// Place puts the player id on pos. It reports false, leaving the board untouched,
// when pos is out of bounds or already occupied.
func (b *Board) Place(pos Position, id int) bool {
	if !b.InBounds(pos) || b.At(pos) != EmptyCell {
		return false
	}
	b.Cells[pos.Row*b.Cols+pos.Col] = id
	return true
}

// EmptyCells lists free positions by ascending row then ascending column.
// Search tie-breaks depend on this order.
func (b *Board) EmptyCells() []Position {
	cells := make([]Position, 0, len(b.Cells))
	for i, v := range b.Cells {
		if v == EmptyCell {
			cells = append(cells, Position{Row: i / b.Cols, Col: i % b.Cols})
		}
	}
	return cells
}

func (b *Board) CountEmpty() int {
	n := 0
	for _, v := range b.Cells {
		if v == EmptyCell {
			n++
		}
	}
	return n
}

func (b *Board) Full() bool {
	return b.CountEmpty() == 0
}

func (b *Board) IsEmpty() bool {
	return b.CountEmpty() == len(b.Cells)
}

func (b *Board) Reset() {
	for i := range b.Cells {
		b.Cells[i] = EmptyCell
	}
}

// Window copies the k x k sub-board whose top-left corner is (row, col).
func (b *Board) Window(row, col, k int) *Board {
	w := &Board{Rows: k, Cols: k, Cells: make([]int, k*k)}
	for r := 0; r < k; r++ {
		start := (row+r)*b.Cols + col
		copy(w.Cells[r*k:(r+1)*k], b.Cells[start:start+k])
	}
	return w
}

// Render draws the board with player marks, "-" for empty cells, one row per line.
func (b *Board) Render(players Players) string {
	var sb strings.Builder
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Cols; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(players.Mark(b.At(Position{r, c})))
		}
		if r < b.Rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.Rows; r++ {
		sb.WriteString(fmt.Sprint(b.Cells[r*b.Cols : (r+1)*b.Cols]))
		if r < b.Rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// ParsePositions parses a literal position list such as "0,0;1,1" or "(0,0),(1,1)".
func ParsePositions(s string) ([]Position, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	s = strings.NewReplacer("(", "", "[", "", "]", "", " ", "").Replace(s)
	var chunks []string
	if strings.Contains(s, ";") || strings.Contains(s, ")") {
		chunks = strings.FieldsFunc(strings.ReplaceAll(s, ")", ";"), func(r rune) bool { return r == ';' })
	} else {
		// Flat list of numbers taken pairwise
		nums := strings.Split(s, ",")
		if len(nums)%2 != 0 {
			return nil, fmt.Errorf("odd number of coordinates in %q", s)
		}
		for i := 0; i < len(nums); i += 2 {
			chunks = append(chunks, nums[i]+","+nums[i+1])
		}
	}

	positions := make([]Position, 0, len(chunks))
	for _, chunk := range chunks {
		chunk = strings.Trim(chunk, ",")
		if chunk == "" {
			continue
		}
		parts := strings.Split(chunk, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid position %q", chunk)
		}
		row, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid row in %q: %w", chunk, err)
		}
		col, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid col in %q: %w", chunk, err)
		}
		positions = append(positions, Position{Row: row, Col: col})
	}
	return positions, nil
}
