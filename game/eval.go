package game

import "tictactoe/meta"

// Evaluator decides wins and scores boards.
//
// Boards with at most Threshold*Threshold cells are checked directly on full
// rows, columns and both diagonals. Larger boards are scanned with a
// RunLength x RunLength window.
type Evaluator struct {
	Threshold int
	RunLength int
}

func NewEvaluator(threshold, runLength int) Evaluator {
	return Evaluator{Threshold: threshold, RunLength: runLength}
}

// DefaultEvaluator checks boards up to 4x4 directly and runs of 4 beyond.
func DefaultEvaluator() Evaluator {
	return NewEvaluator(meta.EvaluateSize, meta.EvaluateSize)
}

// Valid reports whether both sizes are set. The zero Evaluator is not valid.
func (e Evaluator) Valid() bool {
	return e.Threshold > 0 && e.RunLength > 0
}

// Evaluate returns NoWinner, the id of the player holding a completed run, or
// Draw when the board is full without a winner.
func (e Evaluator) Evaluate(b *Board, players Players) int {
	if winner := e.Winner(b, players); winner != NoWinner {
		return winner
	}
	if b.Full() {
		return Draw
	}
	return NoWinner
}

// Winner is Evaluate without the draw sentinel.
//
// On large boards the first window in row-major order that holds a completed
// run decides; later windows never overwrite an earlier verdict.
func (e Evaluator) Winner(b *Board, players Players) int {
	if b.Size() <= e.Threshold*e.Threshold {
		return lineWinner(b, players)
	}

	k := e.RunLength
	if k > b.Rows || k > b.Cols {
		// No window fits, nobody can complete a run
		return NoWinner
	}
	for row := 0; row <= b.Rows-k; row++ {
		for col := 0; col <= b.Cols-k; col++ {
			if winner := lineWinner(b.Window(row, col, k), players); winner != NoWinner {
				return winner
			}
		}
	}
	return NoWinner
}

// Score maps a board to WinScore, LossScore or DrawScore from perspective's point of view.
func (e Evaluator) Score(b *Board, players Players, perspective Player) int {
	switch e.Winner(b, players) {
	case perspective.ID:
		return WinScore
	case players.Opponent(perspective).ID:
		return LossScore
	default:
		return DrawScore
	}
}

func lineWinner(b *Board, players Players) int {
	for _, p := range players {
		if rowWin(b, p.ID) || colWin(b, p.ID) || diagWin(b, p.ID) {
			return p.ID
		}
	}
	return NoWinner
}

func rowWin(b *Board, id int) bool {
	for r := 0; r < b.Rows; r++ {
		won := true
		for c := 0; c < b.Cols && won; c++ {
			won = b.Cells[r*b.Cols+c] == id
		}
		if won {
			return true
		}
	}
	return false
}

func colWin(b *Board, id int) bool {
	for c := 0; c < b.Cols; c++ {
		won := true
		for r := 0; r < b.Rows && won; r++ {
			won = b.Cells[r*b.Cols+c] == id
		}
		if won {
			return true
		}
	}
	return false
}

// diagWin checks the main diagonal (i,i) and the anti-diagonal (i, cols-1-i),
// both of length min(rows, cols).
func diagWin(b *Board, id int) bool {
	n := min(b.Rows, b.Cols)
	main, anti := true, true
	for i := 0; i < n; i++ {
		main = main && b.Cells[i*b.Cols+i] == id
		anti = anti && b.Cells[i*b.Cols+b.Cols-1-i] == id
	}
	return main || anti
}
