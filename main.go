package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"tictactoe/engine"
	"tictactoe/experiments"
	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/meta"
	"tictactoe/player"
	"tictactoe/trace"
)

// repeated collects every occurrence of a flag.
type repeated []string

func (r *repeated) String() string {
	return strings.Join(*r, " ")
}

func (r *repeated) Set(value string) error {
	*r = append(*r, value)
	return nil
}

type config struct {
	ntimes     int
	players    []player.Spec
	sequences  map[int][]game.Position
	rows       int
	cols       int
	runLength  int
	threshold  int
	horizon    int
	seed       uint64
	traceDir   string
	tree       bool
	outDir     string
	parquet    bool
	experiment string
	verbose    bool
	debug      bool
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level := zerolog.InfoLevel
	if cfg.debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if cfg.experiment != "" {
		err = runExperiment(cfg, os.Stdout)
	} else {
		err = play(cfg, os.Stdout)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
}

func parseFlags(args []string) (config, error) {
	var playerFlags, sequenceFlags repeated
	cfg := config{}

	fs := flag.NewFlagSet("tictactoe", flag.ContinueOnError)
	fs.IntVar(&cfg.ntimes, "ntimes", meta.GAMES, "Number of games to play")
	fs.Var(&playerFlags, "player", "Player as id,kind,mark, repeat for both players (kinds: random, minimax, alpha_beta, human)")
	fs.Var(&sequenceFlags, "sequence", "Scripted opening as id:r,c;r,c, repeatable")
	fs.IntVar(&cfg.rows, "rows", meta.ROWS, "Board rows")
	fs.IntVar(&cfg.cols, "cols", meta.COLS, "Board columns")
	fs.IntVar(&cfg.runLength, "run-length", meta.EvaluateSize, "Run length that wins on large boards")
	fs.IntVar(&cfg.threshold, "threshold", meta.EvaluateSize, "Largest board side checked line by line")
	fs.IntVar(&cfg.horizon, "horizon", 0, "Max search depth, 0 searches to the end of the game")
	fs.Uint64Var(&cfg.seed, "seed", meta.SEED, "Random policy seed, 0 for a time-based seed")
	fs.StringVar(&cfg.traceDir, "trace", "", "Directory for game.txt trace files")
	fs.BoolVar(&cfg.tree, "tree", false, "Also write the search tree to tree.txt")
	fs.StringVar(&cfg.outDir, "out", "", "Directory for CSV game and move records")
	fs.BoolVar(&cfg.parquet, "parquet", false, "Also export outcomes as parquet")
	fs.StringVar(&cfg.experiment, "experiment", "", "Play both seatings of the two players as a named experiment")
	fs.BoolVar(&cfg.verbose, "verbose", false, "Print the game trace to stdout")
	fs.BoolVar(&cfg.debug, "debug", false, "Enable debug logging")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if cfg.experiment != "" && (len(sequenceFlags) > 0 || cfg.traceDir != "" || cfg.tree || cfg.verbose) {
		return cfg, fmt.Errorf("-experiment cannot be combined with -sequence, -trace, -tree or -verbose")
	}

	if len(playerFlags) == 0 {
		playerFlags = repeated{"1,random,X", "2,random,O"}
	}
	for _, s := range playerFlags {
		spec, err := player.ParseSpec(s)
		if err != nil {
			return cfg, err
		}
		cfg.players = append(cfg.players, spec)
	}
	if len(cfg.players) != 2 {
		return cfg, fmt.Errorf("expected 2 players, got %d", len(cfg.players))
	}

	cfg.sequences = map[int][]game.Position{}
	for _, s := range sequenceFlags {
		id, positions, err := player.ParseSequence(s)
		if err != nil {
			return cfg, err
		}
		cfg.sequences[id] = append(cfg.sequences[id], positions...)
	}
	return cfg, nil
}

func (cfg config) identities() game.Players {
	return game.Players{
		{ID: cfg.players[0].ID, Mark: cfg.players[0].Mark},
		{ID: cfg.players[1].ID, Mark: cfg.players[1].Mark},
	}
}

func (cfg config) agentConfigs() []metrics.AgentConfig {
	configs := make([]metrics.AgentConfig, len(cfg.players))
	for i, spec := range cfg.players {
		configs[i] = metrics.AgentConfig{ID: spec.ID, Kind: string(spec.Kind), Horizon: cfg.horizon, Seed: cfg.seed}
	}
	return configs
}

func play(cfg config, out io.Writer) error {
	identities := cfg.identities()
	if err := identities.Validate(); err != nil {
		return err
	}
	evaluator := game.NewEvaluator(cfg.threshold, cfg.runLength)
	if !evaluator.Valid() {
		return fmt.Errorf("threshold and run length must be positive, got %d and %d", cfg.threshold, cfg.runLength)
	}

	options := player.Options{Seed: cfg.seed, Evaluator: evaluator, Horizon: cfg.horizon}
	engineOptions := []engine.Option{engine.WithEvaluator(evaluator)}

	var tw *trace.Writer
	switch {
	case cfg.traceDir != "":
		w, err := trace.Open(cfg.traceDir, identities, cfg.tree)
		if err != nil {
			return err
		}
		defer w.Close()
		tw = w
	case cfg.verbose:
		tw = trace.NewWriter(out, nil, identities)
	}
	if tw != nil {
		options.Observer = tw
		engineOptions = append(engineOptions, engine.WithObserver(tw))
	}

	players, err := player.NewPlayers(cfg.players, cfg.sequences, options)
	if err != nil {
		return err
	}
	e, err := engine.NewEngine(cfg.rows, cfg.cols, players, engineOptions...)
	if err != nil {
		return err
	}

	results, err := e.Play(cfg.ntimes)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s\n%s", experiments.Summarize(results, identities), experiments.Histogram(results))
	fmt.Fprintf(out, "Total time: %s\n", e.TotalTime())

	if cfg.outDir == "" {
		return nil
	}
	result := experiments.Result{}
	result.Collect(e, identities[0].ID, identities[1].ID)
	if err := result.Store(cfg.outDir, "play", cfg.agentConfigs(), cfg.parquet); err != nil {
		return err
	}
	log.Info().Msgf("records written to %s", result.Dir)
	return nil
}

// runExperiment plays the configured players against each other in both seatings.
func runExperiment(cfg config, out io.Writer) error {
	evaluator := game.NewEvaluator(cfg.threshold, cfg.runLength)
	if !evaluator.Valid() {
		return fmt.Errorf("threshold and run length must be positive, got %d and %d", cfg.threshold, cfg.runLength)
	}
	configs := cfg.agentConfigs()
	result, err := experiments.RunMatchups(experiments.Experiment{
		Name:      cfg.experiment,
		Rows:      cfg.rows,
		Cols:      cfg.cols,
		Games:     cfg.ntimes,
		MatchUps:  [][2]metrics.AgentConfig{{configs[0], configs[1]}, {configs[1], configs[0]}},
		Evaluator: evaluator,
		OutDir:    cfg.outDir,
		Parquet:   cfg.parquet,
	})
	if err != nil {
		return err
	}

	outcomes := result.Outcomes()
	fmt.Fprintf(out, "%s\n%s", experiments.Summarize(outcomes, cfg.identities()), experiments.Histogram(outcomes))
	if result.Dir != "" {
		log.Info().Msgf("records written to %s", result.Dir)
	}
	return nil
}
