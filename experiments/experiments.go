package experiments

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"tictactoe/engine"
	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/player"
)

// Experiment plays every matchup Games times on a Rows x Cols board.
type Experiment struct {
	Name      string
	Rows      int
	Cols      int
	Games     int // Per matchup
	MatchUps  [][2]metrics.AgentConfig
	Evaluator game.Evaluator // Zero value uses game.DefaultEvaluator
	OutDir    string         // Records are only written when set
	Parquet   bool           // Also export outcomes as parquet
}

type Result struct {
	Games []metrics.GameRecord
	Moves []metrics.MoveRecord
	Dir   string // Output directory, empty when nothing was written
}

// Outcomes returns the winning agent of every game, or game.Draw, in play order.
func (r Result) Outcomes() []int {
	outcomes := make([]int, len(r.Games))
	for i, g := range r.Games {
		outcomes[i] = g.WinnerAgent
	}
	return outcomes
}

func RunMatchups(exp Experiment) (Result, error) {
	result := Result{}

	log.Info().Msgf("starting %s experiment...", exp.Name)

	for mi, matchup := range exp.MatchUps {
		config1, config2 := matchup[0], matchup[1]

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(exp.MatchUps), config1, config2)

		e, err := newEngine(exp, config1, config2)
		if err != nil {
			return result, fmt.Errorf("matchup %d: %w", mi+1, err)
		}
		if _, err := e.Play(exp.Games); err != nil {
			return result, fmt.Errorf("matchup %d: %w", mi+1, err)
		}

		result.Collect(e, config1.ID, config2.ID)

		summary := Summarize(e.Results(), e.Identities())
		log.Info().Msgf("completed matchup %d of %d, seat 1 is agent %d (%s), seat 2 is agent %d (%s)\n%s",
			mi+1, len(exp.MatchUps), config1.ID, config1.Kind, config2.ID, config2.Kind, summary)
	}

	log.Info().Msgf("completed %s experiment", exp.Name)

	if exp.OutDir == "" {
		return result, nil
	}
	err := result.Store(exp.OutDir, exp.Name, configs(exp.MatchUps), exp.Parquet)
	return result, err
}

// Collect appends the records of the last Play of e, numbering games after the
// ones already held. agent1 and agent2 are the agents in e's first and second seat.
func (r *Result) Collect(e *engine.Engine, agent1, agent2 int) {
	agents := map[int]int{
		e.Players[0].ID: agent1,
		e.Players[1].ID: agent2,
		game.Draw:       game.Draw,
	}
	moves := e.MoveMetrics()
	for i, gameMetric := range e.GameMetrics() {
		id := len(r.Games) + 1
		r.Games = append(r.Games, metrics.GameRecord{
			ID:          id,
			Agent1:      agent1,
			Agent2:      agent2,
			WinnerAgent: agents[gameMetric.Winner],
			GameMetric:  gameMetric,
		})
		for _, mm := range moves[i] {
			r.Moves = append(r.Moves, metrics.MoveRecord{
				Game:       id,
				MoveMetric: mm,
			})
		}
	}
}

func newEngine(exp Experiment, config1, config2 metrics.AgentConfig) (*engine.Engine, error) {
	players := make([]*player.Player, 2)
	for i, config := range []metrics.AgentConfig{config1, config2} {
		policy, err := player.NewPolicy(player.Kind(config.Kind), player.Options{
			Seed:      player.SeedFor(config.Seed, i+1),
			Horizon:   config.Horizon,
			Evaluator: exp.Evaluator,
		})
		if err != nil {
			return nil, err
		}
		players[i] = player.NewPlayer(i+1, []string{"X", "O"}[i], policy)
	}
	return engine.NewEngine(exp.Rows, exp.Cols, players, engine.WithEvaluator(exp.Evaluator))
}

// Store writes configs and records under outDir/name/<timestamp> and sets r.Dir.
func (r *Result) Store(outDir, name string, configs []metrics.AgentConfig, withParquet bool) error {
	writer, err := metrics.NewWriter(outDir, name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	r.Dir = writer.Dir()

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(r.Games); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(r.Moves); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	if withParquet {
		if err := metrics.WriteOutcomesParquet(filepath.Join(r.Dir, "outcomes.parquet"), r.Games); err != nil {
			return fmt.Errorf("failed to write outcomes: %w", err)
		}
		log.Info().Msg("stored outcomes parquet")
	}
	return nil
}

// configs lists each distinct agent once, in order of first appearance.
func configs(matchUps [][2]metrics.AgentConfig) []metrics.AgentConfig {
	seen := map[int]bool{}
	out := []metrics.AgentConfig{}
	for _, matchup := range matchUps {
		for _, config := range matchup {
			if !seen[config.ID] {
				seen[config.ID] = true
				out = append(out, config)
			}
		}
	}
	return out
}
