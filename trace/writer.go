package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"tictactoe/game"
	"tictactoe/meta"
	"tictactoe/player"
)

// Writer records matches: turns and match summaries go to the game trace,
// search nodes and cutoffs to the tree trace. It only observes; write
// failures are logged once and otherwise ignored.
type Writer struct {
	game     io.Writer
	tree     io.Writer // nil disables the search tree
	players  game.Players
	maxDepth int
	closers  []io.Closer
	failed   bool
}

func NewWriter(gameOut, treeOut io.Writer, players game.Players) *Writer {
	if gameOut == nil {
		gameOut = io.Discard
	}
	return &Writer{
		game:     gameOut,
		tree:     treeOut,
		players:  players,
		maxDepth: meta.TRACE_DEPTH,
	}
}

// Open creates game.txt, and tree.txt when withTree is set, under dir.
func Open(dir string, players game.Players, withTree bool) (*Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create trace directory: %w", err)
	}

	gameFile, err := os.Create(filepath.Join(dir, "game.txt"))
	if err != nil {
		return nil, fmt.Errorf("failed to create game trace: %w", err)
	}
	w := NewWriter(gameFile, nil, players)
	w.closers = append(w.closers, gameFile)

	if withTree {
		treeFile, err := os.Create(filepath.Join(dir, "tree.txt"))
		if err != nil {
			gameFile.Close()
			return nil, fmt.Errorf("failed to create tree trace: %w", err)
		}
		w.tree = treeFile
		w.closers = append(w.closers, treeFile)
	}
	return w, nil
}

func (w *Writer) Close() error {
	var first error
	for _, c := range w.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	w.closers = nil
	return first
}

func (w *Writer) BeginGame(count, total int, players []*player.Player, board *game.Board) {
	desc := make([]string, len(players))
	for i, p := range players {
		desc[i] = fmt.Sprintf("(%d, %s, %s)", p.ID, p.Mark, p.PolicyName())
	}

	lines := []string{
		"Players: " + strings.Join(desc, " "),
	}
	for _, p := range players {
		lines = append(lines, fmt.Sprintf("P%d Initial sequence: %v", p.ID, p.Sequence))
	}
	lines = append(lines, fmt.Sprintf("Shape: (%d, %d)", board.Rows, board.Cols))

	w.writeGame(box(fmt.Sprintf("Game Start (%d/%d)", count, total), lines...))
}

func (w *Writer) Turn(b *game.Board, p game.Player, pos game.Position, score int) {
	side := []string{
		fmt.Sprintf("Player: %d (%s)", p.ID, p.Mark),
		fmt.Sprintf("Position: %s", pos),
		fmt.Sprintf("Score: %d", score),
	}
	w.writeGame(board(b, w.players, side))
}

func (w *Writer) EndGame(count, total int, b *game.Board, winner int, duration time.Duration) {
	result := "draw"
	if p, ok := w.players.ByID(winner); ok {
		result = p.String()
	}
	w.writeGame(board(b, w.players, nil))
	w.writeGame(box(fmt.Sprintf("Game over (%d/%d) Time: %.2fs", count, total, duration.Seconds()),
		fmt.Sprintf("Result: %d (%s)", winner, result),
	))
}

// Node renders an expanded child in the column of its depth.
func (w *Writer) Node(b *game.Board, mover game.Player, depth int, pos game.Position) {
	if w.tree == nil {
		return
	}
	indent := w.indent(depth)
	w.writeTree(fmt.Sprintf("%s┆┄%d) P%d %s\n", indent, depth, mover.ID, pos) + compact(b, w.players, indent))
}

// Terminal renders a cutoff with its winner and score.
func (w *Writer) Terminal(b *game.Board, perspective game.Player, depth int, winner int, score int) {
	if w.tree == nil {
		return
	}
	indent := w.indent(depth)
	w.writeTree(fmt.Sprintf("%s┆┄%d) P%d Win:%d Score:%d\n", indent, depth, perspective.ID, winner, score) + compact(b, w.players, indent))
}

func (w *Writer) indent(depth int) string {
	return strings.Repeat("┆"+strings.Repeat(" ", colWidth-1), max(w.maxDepth-depth, 0))
}

func (w *Writer) writeGame(s string) {
	w.write(w.game, s)
}

func (w *Writer) writeTree(s string) {
	w.write(w.tree, s)
}

func (w *Writer) write(out io.Writer, s string) {
	if _, err := io.WriteString(out, s); err != nil && !w.failed {
		w.failed = true
		log.Warn().Err(err).Msg("trace write failed, further trace errors are ignored")
	}
}
