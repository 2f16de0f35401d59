package experiments

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
)

var players = game.Players{{ID: 1, Mark: "X"}, {ID: 2, Mark: "O"}}

func TestSummarize(t *testing.T) {
	t.Run("percentages", func(t *testing.T) {
		s := Summarize([]int{1, 1, 2, game.Draw}, players)

		require.Equal(t, 4, s.Games)
		require.Equal(t, Tally{Label: "P1(X)", Outcome: 1, Count: 2, Percent: 50}, s.Players[0])
		require.Equal(t, Tally{Label: "P2(O)", Outcome: 2, Count: 1, Percent: 25}, s.Players[1])
		require.Equal(t, Tally{Label: "Draw", Outcome: game.Draw, Count: 1, Percent: 25}, s.Draws)
	})

	t.Run("no games", func(t *testing.T) {
		s := Summarize(nil, players)
		require.Zero(t, s.Draws.Percent, "Empty outcomes should not divide by zero")
	})

	t.Run("string", func(t *testing.T) {
		out := Summarize([]int{1, game.Draw}, players).String()
		require.Contains(t, out, "Games: 2")
		require.Contains(t, out, "P1(X):   1 /  50 %")
		require.Contains(t, out, "Draw:    1 /  50 %")
	})
}

func TestHistogram(t *testing.T) {
	out := Histogram([]int{2, game.Draw, game.Draw, 1, game.Draw, game.Draw})
	lines := strings.Split(strings.TrimSpace(out), "\n")

	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[0], "Draw"), "Draws should come first")
	require.Contains(t, lines[0], strings.Repeat("█", histogramWidth)+" 4")
	require.Contains(t, lines[1], strings.Repeat("█", histogramWidth/4)+" 1")
	require.True(t, strings.HasPrefix(lines[2], "P2"))

	require.Empty(t, Histogram(nil))
}

func TestRunMatchups(t *testing.T) {
	searchAgent := metrics.AgentConfig{ID: 1, Kind: "alpha_beta"}
	randomAgent := metrics.AgentConfig{ID: 2, Kind: "random", Seed: 3}

	t.Run("records every game", func(t *testing.T) {
		root := t.TempDir()
		result, err := RunMatchups(Experiment{
			Name:     "strength",
			Rows:     3,
			Cols:     3,
			Games:    4,
			MatchUps: [][2]metrics.AgentConfig{{searchAgent, searchAgent}, {searchAgent, randomAgent}},
			OutDir:   root,
			Parquet:  true,
		})
		require.NoError(t, err)

		require.Len(t, result.Games, 8)
		require.Equal(t, 8, result.Games[7].ID)
		require.Equal(t, 2, result.Games[7].Agent2)
		for _, outcome := range result.Outcomes()[:4] {
			require.Equal(t, game.Draw, outcome, "Search against itself should always draw")
		}
		require.NotContains(t, result.Outcomes()[4:], 2, "Random should never beat the search")

		moves := 0
		for _, g := range result.Games {
			moves += g.TotalMoves
		}
		require.Len(t, result.Moves, moves)

		for _, file := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv", "outcomes.parquet"} {
			require.FileExists(t, filepath.Join(result.Dir, file))
		}
		rows, err := metrics.ReadOutcomesParquet(filepath.Join(result.Dir, "outcomes.parquet"))
		require.NoError(t, err)
		require.Len(t, rows, 8)

		configs, err := os.ReadFile(filepath.Join(result.Dir, "agent_configs.csv"))
		require.NoError(t, err)
		require.Equal(t, 3, strings.Count(string(configs), "\n"), "Each agent should be stored once")
	})

	t.Run("wins are credited to agents across seats", func(t *testing.T) {
		result, err := RunMatchups(Experiment{
			Name:     "seats",
			Rows:     3,
			Cols:     3,
			Games:    5,
			MatchUps: [][2]metrics.AgentConfig{{searchAgent, randomAgent}, {randomAgent, searchAgent}},
		})
		require.NoError(t, err)
		require.Len(t, result.Games, 10)

		require.NotContains(t, result.Outcomes(), randomAgent.ID, "Random agent should never be credited with a win")
		for _, g := range result.Games[5:] {
			require.Equal(t, randomAgent.ID, g.Agent1)
			require.Equal(t, searchAgent.ID, g.Agent2)
			require.NotEqual(t, 1, g.Winner, "First seat holds the random agent")
			if g.Winner == 2 {
				require.Equal(t, searchAgent.ID, g.WinnerAgent, "Second seat win belongs to the search agent")
			}
		}

		agents := game.Players{{ID: searchAgent.ID, Mark: "S"}, {ID: randomAgent.ID, Mark: "R"}}
		summary := Summarize(result.Outcomes(), agents)
		require.Equal(t, 10, summary.Players[0].Count+summary.Draws.Count)
		require.Zero(t, summary.Players[1].Count)
	})

	t.Run("nothing written without output dir", func(t *testing.T) {
		result, err := RunMatchups(Experiment{Name: "dry", Rows: 3, Cols: 3, Games: 1,
			MatchUps: [][2]metrics.AgentConfig{{randomAgent, randomAgent}}})
		require.NoError(t, err)
		require.Empty(t, result.Dir)
		require.Len(t, result.Games, 1)
	})

	t.Run("unknown policy", func(t *testing.T) {
		_, err := RunMatchups(Experiment{Name: "bad", Rows: 3, Cols: 3, Games: 1,
			MatchUps: [][2]metrics.AgentConfig{{{ID: 9, Kind: "oracle"}, randomAgent}}})
		require.Error(t, err)
	})
}
