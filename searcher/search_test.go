package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
)

var (
	p1      = game.Player{ID: 1, Mark: "X"}
	p2      = game.Player{ID: 2, Mark: "O"}
	players = game.Players{p1, p2}
)

func mustBoard(t *testing.T, rows [][]int) *game.Board {
	t.Helper()
	b, err := game.BoardFromRows(rows)
	require.NoError(t, err)
	return b
}

type recordingObserver struct {
	nodes     int
	terminals int
	maxDepth  int
}

func (o *recordingObserver) Node(_ *game.Board, _ game.Player, depth int, _ game.Position) {
	o.nodes++
	o.maxDepth = max(o.maxDepth, depth)
}

func (o *recordingObserver) Terminal(*game.Board, game.Player, int, int, int) {
	o.terminals++
}

func TestImmediateWin(t *testing.T) {
	for name, algorithm := range map[string]Algorithm{MinimaxName: Minimax, AlphaBetaName: AlphaBeta} {
		t.Run(name, func(t *testing.T) {
			board := mustBoard(t, [][]int{
				{1, 1, 0},
				{0, 0, 0},
				{0, 0, 0},
			})

			got := algorithm(board, players, FullDepth(board), p1, true)

			require.True(t, got.Found, "Search should return a move on a non-terminal board")
			require.Equal(t, game.Position{Row: 0, Col: 2}, got.Position, "Player 1 should complete the row")
			require.Equal(t, game.WinScore, got.Score, "Completing the row should score +10")
		})
	}
}

func TestBlockOpponent(t *testing.T) {
	for name, algorithm := range map[string]Algorithm{MinimaxName: Minimax, AlphaBetaName: AlphaBeta} {
		t.Run(name, func(t *testing.T) {
			// Player 2 to move must block (2,2); every other move loses
			board := mustBoard(t, [][]int{
				{0, 0, 1},
				{0, 2, 1},
				{0, 0, 0},
			})

			got := algorithm(board, players, FullDepth(board), p2, true)

			require.Equal(t, game.Position{Row: 2, Col: 2}, got.Position, "Player 2 should block the column")
			require.Equal(t, game.DrawScore, got.Score, "Blocking should hold the draw")
		})
	}
}

func TestTerminalBoard(t *testing.T) {
	for name, algorithm := range map[string]Algorithm{MinimaxName: Minimax, AlphaBetaName: AlphaBeta} {
		t.Run(name, func(t *testing.T) {
			board := mustBoard(t, [][]int{
				{2, 2, 2},
				{1, 1, 0},
				{1, 0, 0},
			})

			got := algorithm(board, players, FullDepth(board), p1, true)

			require.False(t, got.Found, "Decided board should be a cutoff")
			require.Equal(t, game.LossScore, got.Score)
		})
	}

	t.Run("zero depth is a cutoff", func(t *testing.T) {
		board, err := game.NewBoard(3, 3)
		require.NoError(t, err)

		got := Minimax(board, players, 0, p1, true)

		require.False(t, got.Found)
		require.Equal(t, game.DrawScore, got.Score)
	})
}

func TestSearchDoesNotMutateBoard(t *testing.T) {
	board := mustBoard(t, [][]int{
		{1, 0, 0},
		{0, 2, 0},
		{0, 0, 0},
	})
	before := board.Copy()

	Minimax(board, players, FullDepth(board), p1, true)
	AlphaBeta(board, players, FullDepth(board), p1, true)

	require.Equal(t, before, board, "Search must only play moves on copies")
}

func TestObserverHooks(t *testing.T) {
	board := mustBoard(t, [][]int{
		{1, 2, 1},
		{2, 1, 0},
		{2, 0, 0},
	})
	observer := &recordingObserver{}
	collector := metrics.NewCollector()

	Minimax(board, players, FullDepth(board), p2, true, WithObserver(observer), WithMetrics(collector))
	metric := collector.Complete()

	require.Equal(t, metric.Nodes-1, observer.nodes, "Every node but the root is announced")
	require.Equal(t, metric.Terminals, observer.terminals, "Every cutoff is announced")
	require.Equal(t, 3, observer.maxDepth, "Root children are announced with the root depth")
	require.Equal(t, MinimaxName, metric.Algorithm)
	require.Equal(t, 3, metric.Depth)
	require.Equal(t, 14, metric.Nodes)
}

func TestAlphaBetaPrunes(t *testing.T) {
	board, err := game.NewBoard(3, 3)
	require.NoError(t, err)
	full, pruned := metrics.NewCollector(), metrics.NewCollector()

	m := Minimax(board, players, FullDepth(board), p1, true, WithMetrics(full))
	a := AlphaBeta(board, players, FullDepth(board), p1, true, WithMetrics(pruned))

	require.Equal(t, m, a)
	require.Equal(t, game.DrawScore, m.Score, "Tic-tac-toe is a draw under optimal play")
	require.Equal(t, 549946, full.Complete().Nodes, "Minimax visits the whole game tree")
	require.Less(t, pruned.Complete().Nodes, full.Complete().Nodes, "Alpha-beta should visit fewer nodes")
}

// TestEquivalenceOnReachableBoards compares both algorithms on every board reachable
// from the empty 3x3 board by alternating play.
func TestEquivalenceOnReachableBoards(t *testing.T) {
	if testing.Short() {
		t.Skip("exhaustive comparison")
	}

	eval := game.NewEvaluator(4, 4)
	seen := map[string]bool{}
	var boards []*game.Board

	var walk func(b *game.Board, mover game.Player)
	walk = func(b *game.Board, mover game.Player) {
		key := b.String()
		if seen[key] {
			return
		}
		seen[key] = true
		if eval.Evaluate(b, players) != game.NoWinner {
			return
		}
		boards = append(boards, b)
		for _, pos := range b.EmptyCells() {
			next := b.Copy()
			next.Place(pos, mover.ID)
			walk(next, players.Opponent(mover))
		}
	}
	empty, err := game.NewBoard(3, 3)
	require.NoError(t, err)
	walk(empty, p1)

	require.Equal(t, 5478, len(seen), "3x3 tic-tac-toe has 5478 reachable boards")

	for _, b := range boards {
		mover := p1
		if b.CountEmpty()%2 == 0 {
			mover = p2
		}
		full, pruned := metrics.NewCollector(), metrics.NewCollector()

		m := Minimax(b, players, FullDepth(b), mover, true, WithMetrics(full))
		a := AlphaBeta(b, players, FullDepth(b), mover, true, WithMetrics(pruned))

		require.Equal(t, m.Score, a.Score, "Scores should agree on\n%s", b)
		require.Equal(t, m.Position, a.Position, "Positions should agree on\n%s", b)
		require.True(t, m.Found && a.Found, "Non-terminal boards should yield a move")
		require.LessOrEqual(t, pruned.Complete().Nodes, full.Complete().Nodes, "Alpha-beta should not visit more nodes on\n%s", b)
	}
}

func TestMinimizingRoot(t *testing.T) {
	board := mustBoard(t, [][]int{
		{1, 1, 0},
		{2, 0, 0},
		{0, 0, 0},
	})

	m := Minimax(board, players, FullDepth(board), p1, false)
	a := AlphaBeta(board, players, FullDepth(board), p1, false)

	require.Equal(t, m, a)
}

func TestByName(t *testing.T) {
	_, ok := ByName(MinimaxName)
	require.True(t, ok)
	_, ok = ByName(AlphaBetaName)
	require.True(t, ok)
	_, ok = ByName("mcts")
	require.False(t, ok)
}
