package experiments

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"miners/agent"
	"miners/engine"
	"miners/experiments/metrics"
	"miners/game"
	"miners/meta"
)

const NumGames = 30 // Per match up

// Archiver stores the final state of every experiment game.
type Archiver interface {
	RecordMatch(ctx context.Context, id string, gs *game.GameState) error
}

// Setup is shared by every game of an experiment.
type Setup struct {
	Root    string      // Directory the CSV results are written under
	Games   int         // Games per match up
	Base    game.Config // Board, threshold and combat; roles are filled per match up
	Archive Archiver    // Optional
}

func DefaultSetup() Setup {
	base := game.DefaultConfig()
	base.AITurnDelayMs = 0
	base.Seed = 1
	return Setup{
		Root:  meta.DefaultExperimentsDir,
		Games: NumGames,
		Base:  base,
	}
}

var poolConfigs = []metrics.AgentConfig{
	{ID: 1, PoolSize: 1, MineProbability: meta.AgentMineProbability},
	{ID: 2, PoolSize: 2, MineProbability: meta.AgentMineProbability},
	{ID: 3, PoolSize: 5, MineProbability: meta.AgentMineProbability},
	{ID: 4, PoolSize: 10, MineProbability: meta.AgentMineProbability},
}

var baseline = metrics.AgentConfig{ID: 0, PoolSize: meta.AgentPoolSize, MineProbability: meta.AgentMineProbability}

// RunPoolSizeExperiment pairs agents choosing among more or fewer candidate
// cells against the default agent.
func RunPoolSizeExperiment(ctx context.Context, setup Setup) (string, error) {
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range poolConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}
	return runExperiment(ctx, "pool_size", setup, append(poolConfigs, baseline), matchUps)
}

// RunMineProbabilityExperiment pairs greedier and thriftier miners against the
// default agent.
func RunMineProbabilityExperiment(ctx context.Context, setup Setup) (string, error) {
	configs := []metrics.AgentConfig{
		{ID: 1, PoolSize: meta.AgentPoolSize, MineProbability: 0},
		{ID: 2, PoolSize: meta.AgentPoolSize, MineProbability: 0.1},
		{ID: 3, PoolSize: meta.AgentPoolSize, MineProbability: 0.4},
		{ID: 4, PoolSize: meta.AgentPoolSize, MineProbability: 0.8},
	}
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}
	return runExperiment(ctx, "mine_probability", setup, append(configs, baseline), matchUps)
}

// runExperiment plays every match up setup.Games times and writes the CSV
// results, returning the directory they were written to.
func runExperiment(ctx context.Context, name string, setup Setup, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) (string, error) {
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between %+v...", mi+1, len(matchUps), matchup)

		for i := 0; i < setup.Games; i++ {
			// Rotate seats so every agent gets to start
			seats := rotate(matchup, i)
			count++
			gameMetric, moveMetrics, err := runGame(ctx, setup, seats, setup.Base.Seed+uint64(count))
			if err != nil {
				return "", fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}

			agents := make([]int, len(seats))
			for s, config := range seats {
				agents[s] = config.ID
			}
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agents:     agents,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %q", mi+1, len(matchUps), i+1, gameMetric.Winner)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	sum := Summarize(gameRecords)
	log.Info().Msgf("completed %s experiment: %d games, wins by agent %v, %d without a single winner", name, sum.Games, sum.Wins, sum.Ties)
	return writeResults(name, setup.Root, configs, gameRecords, moveRecords)
}

func writeResults(name, root string, configs []metrics.AgentConfig, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	err = writer.WriteAgentConfigs(configs)
	if err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	err = writer.WriteGameRecords(gameRecords)
	if err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(moveRecords)
	if err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}

// runGame plays one scripted match, seating seats[i] as player i+1.
func runGame(ctx context.Context, setup Setup, seats []metrics.AgentConfig, seed uint64) (metrics.GameMetric, []metrics.MoveMetric, error) {
	cfg := setup.Base
	cfg.Roles = make(map[game.PlayerID]game.Role)
	controllers := make(map[game.PlayerID]engine.Controller)
	for i, config := range seats {
		id := game.PlayerID(i + 1)
		cfg.Roles[id] = game.RoleScripted
		controllers[id] = engine.NewAgentController(createAgent(config, seed+uint64(id)), 0)
	}

	e, err := engine.NewLocalEngine(cfg, controllers, engine.WithMetrics())
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}
	gameMetric, moveMetrics, err := e.Run(ctx)
	if err != nil {
		return gameMetric, moveMetrics, err
	}
	if setup.Archive != nil {
		if err := setup.Archive.RecordMatch(ctx, uuid.NewString(), e.State); err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("archive game: %w", err)
		}
	}
	return gameMetric, moveMetrics, nil
}

func createAgent(config metrics.AgentConfig, seed uint64) agent.Agent {
	options := []agent.Option{agent.WithSeed(seed)}

	if config.PoolSize > 0 {
		options = append(options, agent.WithPoolSize(config.PoolSize))
	}
	options = append(options, agent.WithMineProbability(config.MineProbability))
	return agent.NewHeuristic(options...)
}

func rotate[T any](s []T, n int) []T {
	out := make([]T, len(s))
	for i := range s {
		out[i] = s[(i+n)%len(s)]
	}
	return out
}
