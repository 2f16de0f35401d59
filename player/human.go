package player

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"tictactoe/game"
)

var ErrAborted = errors.New("move selection aborted")

var cellStyle = lipgloss.NewStyle().Width(5).Align(lipgloss.Center)

type humanPolicy struct {
	input  io.Reader
	output io.Writer
}

// NewHumanPolicy asks for each move on a terminal board with a movable cursor.
func NewHumanPolicy(input io.Reader, output io.Writer) Policy {
	if input == nil {
		input = os.Stdin
	}
	if output == nil {
		output = os.Stdout
	}
	return &humanPolicy{input: input, output: output}
}

func (p *humanPolicy) Name() string {
	return string(Human)
}

func (p *humanPolicy) Move(board *game.Board, players game.Players, self game.Player) (Decision, error) {
	prog := tea.NewProgram(newCursorModel(board, players, self), tea.WithInput(p.input), tea.WithOutput(p.output))
	final, err := prog.Run()
	if err != nil {
		return Decision{}, fmt.Errorf("human input for player %d: %w", self.ID, err)
	}

	m := final.(cursorModel)
	if !m.chosen {
		return Decision{}, fmt.Errorf("%w by player %d", ErrAborted, self.ID)
	}
	return Decision{Position: m.cursor}, nil
}

type cursorModel struct {
	board   *game.Board
	players game.Players
	self    game.Player
	cursor  game.Position
	chosen  bool
	warning string
}

func newCursorModel(board *game.Board, players game.Players, self game.Player) cursorModel {
	m := cursorModel{board: board, players: players, self: self}
	if cells := board.EmptyCells(); len(cells) > 0 {
		m.cursor = cells[0]
	}
	return m
}

func (m cursorModel) Init() tea.Cmd {
	return nil
}

func (m cursorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	m.warning = ""
	switch key.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "up", "k":
		m.cursor.Row = (m.cursor.Row - 1 + m.board.Rows) % m.board.Rows
	case "down", "j":
		m.cursor.Row = (m.cursor.Row + 1) % m.board.Rows
	case "left", "h":
		m.cursor.Col = (m.cursor.Col - 1 + m.board.Cols) % m.board.Cols
	case "right", "l":
		m.cursor.Col = (m.cursor.Col + 1) % m.board.Cols
	case "enter", " ":
		if m.board.At(m.cursor) != game.EmptyCell {
			m.warning = fmt.Sprintf("%s is taken", m.cursor)
			return m, nil
		}
		m.chosen = true
		return m, tea.Quit
	}
	return m, nil
}

func (m cursorModel) View() string {
	grid := table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(true).
		StyleFunc(func(row, col int) lipgloss.Style { return cellStyle })
	for r := 0; r < m.board.Rows; r++ {
		cells := make([]string, m.board.Cols)
		for c := range cells {
			pos := game.Position{Row: r, Col: c}
			cells[c] = m.players.Mark(m.board.At(pos))
			if pos == m.cursor {
				cells[c] = "[" + cells[c] + "]"
			}
		}
		grid.Row(cells...)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Player %d (%s) to move\n\n", m.self.ID, m.self.Mark)
	sb.WriteString(grid.Render() + "\n")
	sb.WriteString("\narrows/hjkl move, enter places, q aborts\n")
	if m.warning != "" {
		sb.WriteString(m.warning + "\n")
	}
	return sb.String()
}
