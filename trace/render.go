package trace

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"tictactoe/game"
)

const (
	cellWidth = 5   // Inner width of a board cell
	boxWidth  = 100 // Inner width of summary boxes
	colWidth  = 20  // Width of one depth column in the tree view
)

var (
	cellStyle = lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center)
	sideStyle = lipgloss.NewStyle().PaddingLeft(1)
	boxStyle  = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Width(boxWidth)
)

// board draws b in a double-lined grid; side lines are printed to its right, top aligned.
func board(b *game.Board, players game.Players, side []string) string {
	grid := table.New().
		Border(lipgloss.DoubleBorder()).
		BorderRow(true).
		StyleFunc(func(row, col int) lipgloss.Style { return cellStyle })
	for r := 0; r < b.Rows; r++ {
		cells := make([]string, b.Cols)
		for c := range cells {
			cells[c] = players.Mark(b.At(game.Position{Row: r, Col: c}))
		}
		grid.Row(cells...)
	}

	out := grid.Render()
	if len(side) > 0 {
		out = lipgloss.JoinHorizontal(lipgloss.Top, out, sideStyle.Render(strings.Join(side, "\n")))
	}
	return out + "\n"
}

// compact draws b as rows of marks, each row prefixed by indent.
func compact(b *game.Board, players game.Players, indent string) string {
	var sb strings.Builder
	for _, line := range strings.Split(b.Render(players), "\n") {
		sb.WriteString(indent + "┆" + line + "\n")
	}
	return sb.String()
}

// box frames lines under a centered title.
func box(title string, lines ...string) string {
	header := lipgloss.PlaceHorizontal(boxWidth, lipgloss.Center, title)
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, append([]string{header}, lines...)...)) + "\n"
}
