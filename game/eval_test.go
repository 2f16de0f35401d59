package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

var testPlayers = Players{{ID: 1, Mark: "X"}, {ID: 2, Mark: "O"}}

func mustBoard(t *testing.T, rows [][]int) *Board {
	t.Helper()
	b, err := BoardFromRows(rows)
	require.NoError(t, err)
	return b
}

func TestEvaluateClassicLines(t *testing.T) {
	lines := map[string][]Position{
		"row 0":     {{0, 0}, {0, 1}, {0, 2}},
		"row 1":     {{1, 0}, {1, 1}, {1, 2}},
		"row 2":     {{2, 0}, {2, 1}, {2, 2}},
		"col 0":     {{0, 0}, {1, 0}, {2, 0}},
		"col 1":     {{0, 1}, {1, 1}, {2, 1}},
		"col 2":     {{0, 2}, {1, 2}, {2, 2}},
		"diagonal":  {{0, 0}, {1, 1}, {2, 2}},
		"anti-diag": {{0, 2}, {1, 1}, {2, 0}},
	}
	eval := NewEvaluator(4, 4)

	for name, line := range lines {
		for _, p := range testPlayers {
			t.Run(fmt.Sprintf("%s filled by player %d", name, p.ID), func(t *testing.T) {
				b, err := NewBoard(3, 3)
				require.NoError(t, err)
				for _, pos := range line {
					require.True(t, b.Place(pos, p.ID))
				}

				require.Equal(t, p.ID, eval.Evaluate(b, testPlayers), "Completed line should win")
			})
		}
	}
}

func TestEvaluateOutcomes(t *testing.T) {
	eval := NewEvaluator(4, 4)

	t.Run("empty board has no winner", func(t *testing.T) {
		b, err := NewBoard(3, 3)
		require.NoError(t, err)
		require.Equal(t, NoWinner, eval.Evaluate(b, testPlayers))
	})

	t.Run("full board without a line is a draw", func(t *testing.T) {
		b := mustBoard(t, [][]int{
			{1, 2, 1},
			{1, 2, 2},
			{2, 1, 1},
		})
		require.Equal(t, Draw, eval.Evaluate(b, testPlayers), "Full board without winner should be a draw")
	})

	t.Run("win on the last cell is not a draw", func(t *testing.T) {
		b := mustBoard(t, [][]int{
			{1, 2, 1},
			{2, 1, 2},
			{2, 1, 1},
		})
		require.Equal(t, 1, eval.Evaluate(b, testPlayers), "Winner takes precedence over a full board")
	})

	t.Run("partial line is not a win", func(t *testing.T) {
		b := mustBoard(t, [][]int{
			{1, 1, 0},
			{2, 2, 0},
			{0, 0, 0},
		})
		require.Equal(t, NoWinner, eval.Evaluate(b, testPlayers))
	})

	t.Run("4x4 board needs the full row", func(t *testing.T) {
		b := mustBoard(t, [][]int{
			{1, 1, 1, 0},
			{2, 2, 2, 1},
			{0, 0, 0, 0},
			{0, 0, 0, 2},
		})
		require.Equal(t, NoWinner, eval.Evaluate(b, testPlayers), "Three in a row on 4x4 should not win")

		require.True(t, b.Place(Position{0, 3}, 1))
		require.Equal(t, 1, eval.Evaluate(b, testPlayers))
	})

	t.Run("rectangular board diagonal has min(rows, cols) cells", func(t *testing.T) {
		b := mustBoard(t, [][]int{
			{0, 0, 0, 2},
			{0, 0, 2, 0},
			{1, 2, 0, 1},
		})
		require.Equal(t, 2, eval.Evaluate(b, testPlayers), "Anti-diagonal of a 3x4 board has 3 cells")
	})

	t.Run("does not mutate the board", func(t *testing.T) {
		b := mustBoard(t, [][]int{
			{1, 1, 1},
			{2, 2, 0},
			{0, 0, 0},
		})
		before := b.Copy()
		eval.Evaluate(b, testPlayers)
		require.Equal(t, before, b)
	})
}

func TestEvaluateEveryFullBoard(t *testing.T) {
	lines := [][3]int{
		{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
		{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
		{0, 4, 8}, {2, 4, 6},
	}
	eval := DefaultEvaluator()
	draws := 0

	for mask := 0; mask < 1<<9; mask++ {
		b, err := NewBoard(3, 3)
		require.NoError(t, err)
		for i := range b.Cells {
			b.Cells[i] = 2
			if mask&(1<<i) != 0 {
				b.Cells[i] = 1
			}
		}
		hasLine := func(id int) bool {
			for _, l := range lines {
				if b.Cells[l[0]] == id && b.Cells[l[1]] == id && b.Cells[l[2]] == id {
					return true
				}
			}
			return false
		}

		got := eval.Evaluate(b, testPlayers)
		require.NotEqual(t, NoWinner, got, "Full board %v must be decided", b.Cells)
		if hasLine(1) || hasLine(2) {
			require.Contains(t, []int{1, 2}, got, "Board %v has a line", b.Cells)
			require.True(t, hasLine(got), "Winner %d of %v must own a line", got, b.Cells)
		} else {
			require.Equal(t, Draw, got, "Board %v has no line", b.Cells)
			draws++
		}
	}
	require.Equal(t, 32, draws)
}

func TestEvaluateLargeBoard(t *testing.T) {
	eval := NewEvaluator(4, 4)

	t.Run("run inside an inner window wins", func(t *testing.T) {
		b, err := NewBoard(5, 5)
		require.NoError(t, err)
		for r := 1; r < 5; r++ {
			require.True(t, b.Place(Position{r, 4}, 2))
		}
		require.Equal(t, 2, eval.Evaluate(b, testPlayers))
	})

	t.Run("earlier window win is not overwritten by later windows", func(t *testing.T) {
		// Row 0 of the top-left window is complete; every later window has no run.
		b, err := NewBoard(5, 5)
		require.NoError(t, err)
		for c := 0; c < 4; c++ {
			require.True(t, b.Place(Position{0, c}, 1))
		}
		require.Equal(t, 1, eval.Evaluate(b, testPlayers), "First window holding a run should decide")
	})

	t.Run("full window without a run is not a draw", func(t *testing.T) {
		b := mustBoard(t, [][]int{
			{1, 2, 1, 2, 0},
			{1, 2, 1, 2, 0},
			{2, 1, 2, 1, 0},
			{2, 1, 2, 1, 0},
			{0, 0, 0, 0, 0},
		})
		require.Equal(t, NoWinner, eval.Evaluate(b, testPlayers))
	})

	t.Run("full large board without a run is a draw", func(t *testing.T) {
		b := mustBoard(t, [][]int{
			{1, 2, 1, 2, 1},
			{1, 2, 1, 2, 1},
			{2, 1, 2, 1, 2},
			{2, 1, 2, 1, 2},
			{1, 2, 1, 2, 1},
		})
		require.Equal(t, Draw, eval.Evaluate(b, testPlayers))
	})

	t.Run("custom run length", func(t *testing.T) {
		eval := NewEvaluator(2, 3)
		b, err := NewBoard(4, 4)
		require.NoError(t, err)
		for i := 1; i < 4; i++ {
			require.True(t, b.Place(Position{i, i}, 1))
		}
		require.Equal(t, 1, eval.Evaluate(b, testPlayers), "Diagonal of length 3 should win with run length 3")
	})
}

func TestScore(t *testing.T) {
	eval := NewEvaluator(4, 4)
	b := mustBoard(t, [][]int{
		{2, 2, 2},
		{1, 1, 0},
		{1, 0, 0},
	})

	require.Equal(t, WinScore, eval.Score(b, testPlayers, testPlayers[1]), "Winner's perspective scores +10")
	require.Equal(t, LossScore, eval.Score(b, testPlayers, testPlayers[0]), "Loser's perspective scores -10")

	draw := mustBoard(t, [][]int{
		{1, 2, 1},
		{1, 2, 2},
		{2, 1, 1},
	})
	require.Equal(t, DrawScore, eval.Score(draw, testPlayers, testPlayers[0]))
}
