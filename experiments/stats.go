package experiments

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"tictactoe/game"
	"tictactoe/utils"
)

const histogramWidth = 50

// Tally counts the games that ended with one outcome.
type Tally struct {
	Label   string
	Outcome int // Player ID, or game.Draw
	Count   int
	Percent float64
}

type Summary struct {
	Games   int
	Players []Tally // In seating order
	Draws   Tally
}

// Summarize counts wins per player and draws over outcomes.
func Summarize(outcomes []int, players game.Players) Summary {
	s := Summary{Games: len(outcomes)}
	for _, p := range players {
		s.Players = append(s.Players, tally(outcomes, p.String(), p.ID))
	}
	s.Draws = tally(outcomes, "Draw", game.Draw)
	return s
}

func tally(outcomes []int, label string, outcome int) Tally {
	t := Tally{Label: label, Outcome: outcome, Count: utils.Count(outcomes, outcome)}
	if len(outcomes) > 0 {
		t.Percent = float64(t.Count) * 100 / float64(len(outcomes))
	}
	return t
}

func (s Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Games: %d\n", s.Games)
	for _, t := range append(slices.Clone(s.Players), s.Draws) {
		fmt.Fprintf(&sb, "%-8s %d / %3.0f %%\n", t.Label+":", t.Count, t.Percent)
	}
	return sb.String()
}

// Histogram draws one bar per distinct outcome, draws first, scaled to the most frequent one.
func Histogram(outcomes []int) string {
	counts := map[int]int{}
	for _, o := range outcomes {
		counts[o]++
	}
	keys := make([]int, 0, len(counts))
	peak := 0
	for k, c := range counts {
		keys = append(keys, k)
		peak = max(peak, c)
	}
	slices.Sort(keys)

	var sb strings.Builder
	for _, k := range keys {
		label := fmt.Sprintf("P%d", k)
		if k == game.Draw {
			label = "Draw"
		}
		bar := counts[k] * histogramWidth / peak
		fmt.Fprintf(&sb, "%-5s │%s %d\n", label, strings.Repeat("█", max(bar, 1)), counts[k])
	}
	return sb.String()
}
