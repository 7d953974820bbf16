package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"miners/archive"
	"miners/engine"
	"miners/experiments"
	"miners/game"
	"miners/meta"
	"miners/player"
	"miners/snapshot"
)

const usage = `usage: miners <command> [flags]

commands:
  play        play a match on the console
  experiment  run a scripted tournament and write CSV results
  replay      rebuild a match from a battle log file
  inspect     print a saved snapshot or archived matches`

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch os.Args[1] {
	case "play":
		err = runPlay(ctx, os.Args[2:])
	case "experiment":
		err = runExperiment(ctx, os.Args[2:])
	case "replay":
		err = runReplay(os.Args[2:])
	case "inspect":
		err = runInspect(ctx, os.Args[2:])
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil && !errors.Is(err, player.ErrQuit) {
		log.Fatal().Err(err).Msg(os.Args[1])
	}
}

func loadConfig(path string) (game.Config, error) {
	if path == "" {
		cfg := game.DefaultConfig()
		return cfg, cfg.Validate()
	}
	return game.LoadConfig(path)
}

func runPlay(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	configPath := fs.String("config", "", "YAML match config")
	resume := fs.String("resume", "", "Snapshot file to continue from")
	save := fs.String("save", "", "Snapshot file written when the match stops")
	archivePath := fs.String("archive", "", "SQLite archive the finished match is recorded in")
	fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	var state *game.GameState
	if *resume != "" {
		if state, err = snapshot.ReadFile(*resume); err != nil {
			return err
		}
		// seats and pacing follow the snapshot, not the config file
		for _, id := range game.AllPlayers {
			cfg.Roles[id] = state.Players[id].Role
		}
		cfg.AITurnDelayMs = state.AITurnDelayMs
	} else if state, err = game.NewGame(cfg); err != nil {
		return err
	}

	controllers := engine.ScriptedControllers(cfg)
	console := player.NewConsole(os.Stdin, os.Stdout)
	for _, id := range state.Seated() {
		if state.Players[id].Role == game.RoleHuman {
			controllers[id] = console
		}
	}

	e, err := engine.Resume(state, controllers)
	if err != nil {
		return err
	}
	_, _, runErr := e.Run(ctx)

	if *save != "" {
		if err := snapshot.WriteFile(*save, e.State); err != nil {
			return err
		}
		log.Info().Msgf("saved match to %s", *save)
	}
	if *archivePath != "" {
		store, err := archive.Open(*archivePath)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.RecordMatch(ctx, uuid.NewString(), e.State); err != nil {
			return err
		}
	}
	if runErr != nil {
		return runErr
	}

	fmt.Println(e.State.Board)
	for _, s := range e.State.Standings() {
		fmt.Printf("%s: %d mines\n", s.Player, s.Score)
	}
	if winner, ok := e.State.Winner(); ok {
		fmt.Printf("%s wins\n", winner)
	} else if e.State.Terminal {
		fmt.Println("no single winner")
	}
	return nil
}

func runExperiment(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("experiment", flag.ExitOnError)
	name := fs.String("name", "pool", "Experiment: pool, mines or sizes")
	configPath := fs.String("config", "", "YAML config for board size, threshold, combat and seed")
	games := fs.Int("games", experiments.NumGames, "Games per match up")
	out := fs.String("out", meta.DefaultExperimentsDir, "Results directory")
	archivePath := fs.String("archive", "", "SQLite archive every game is recorded in")
	fs.Parse(args)

	setup := experiments.DefaultSetup()
	setup.Games = *games
	setup.Root = *out
	if *configPath != "" {
		cfg, err := game.LoadConfig(*configPath)
		if err != nil {
			return err
		}
		cfg.AITurnDelayMs = 0
		setup.Base = cfg
	}
	if *archivePath != "" {
		store, err := archive.Open(*archivePath)
		if err != nil {
			return err
		}
		defer store.Close()
		setup.Archive = store
	}

	var dir string
	var err error
	switch *name {
	case "pool":
		dir, err = experiments.RunPoolSizeExperiment(ctx, setup)
	case "mines":
		dir, err = experiments.RunMineProbabilityExperiment(ctx, setup)
	case "sizes":
		dir, err = experiments.RunBoardSizeExperiment(ctx, setup)
	default:
		return fmt.Errorf("unknown experiment %q", *name)
	}
	if err != nil {
		return err
	}
	log.Info().Msgf("results written to %s", dir)
	return nil
}

func runReplay(args []string) error {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	configPath := fs.String("config", "", "YAML config the match was started with")
	logPath := fs.String("log", "", "Battle log file, one command per line")
	save := fs.String("save", "", "Snapshot file for the rebuilt match")
	fs.Parse(args)

	if *logPath == "" {
		return fmt.Errorf("replay needs -log")
	}
	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	f, err := os.Open(*logPath)
	if err != nil {
		return err
	}
	defer f.Close()

	var entries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			entries = append(entries, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	gs, err := game.Replay(cfg, entries)
	if err != nil {
		return err
	}
	fmt.Println(gs.Board)
	fmt.Printf("after %d moves: active %s, terminal %t, scores %v\n", len(gs.Log), gs.Active, gs.Terminal, gs.Scores())
	if *save != "" {
		return snapshot.WriteFile(*save, gs)
	}
	return nil
}

func runInspect(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	snapshotPath := fs.String("snapshot", "", "Snapshot file to print")
	archivePath := fs.String("archive", meta.DefaultArchivePath, "SQLite archive to list")
	match := fs.String("match", "", "Archived match id to print")
	limit := fs.Int("limit", 20, "How many archived matches to list")
	fs.Parse(args)

	if *snapshotPath != "" {
		gs, err := snapshot.ReadFile(*snapshotPath)
		if err != nil {
			return err
		}
		data, err := snapshot.Encode(gs)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	store, err := archive.Open(*archivePath)
	if err != nil {
		return err
	}
	defer store.Close()

	if *match != "" {
		gs, err := store.Match(ctx, *match)
		if err != nil {
			return err
		}
		fmt.Println(gs.Board)
		fmt.Println(strings.Join(gs.Log, "\n"))
		return nil
	}
	summaries, err := store.List(ctx, *limit)
	if err != nil {
		return err
	}
	for _, s := range summaries {
		fmt.Printf("%s  %s  %dx%d %-9s moves %-4d terminal %-5t winner %-8s scores %v\n",
			s.ID, s.RecordedAt.Format("2006-01-02 15:04"), s.Size, s.Size, s.Combat, s.Moves, s.Terminal, s.Winner, s.Scores)
	}
	return nil
}
