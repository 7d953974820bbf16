package experiments

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"miners/experiments/metrics"
	"miners/game"
	"miners/meta"
)

// RunBoardSizeExperiment plays four default agents on every supported board
// size, which shows how game length and per-move cost grow with the grid.
func RunBoardSizeExperiment(ctx context.Context, setup Setup) (string, error) {
	configs := []metrics.AgentConfig{baseline}
	seats := []metrics.AgentConfig{baseline, baseline, baseline, baseline}

	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msg("starting board size experiment...")

	for _, size := range meta.BoardSizes {
		sized := setup
		sized.Base.Size = size
		log.Info().Msgf("starting %dx%d games...", size, size)

		for i := 0; i < setup.Games; i++ {
			count++
			gameMetric, moveMetrics, err := runGame(ctx, sized, seats, setup.Base.Seed+uint64(count))
			if err != nil {
				return "", fmt.Errorf("size %d game %d: %w", size, i+1, err)
			}
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agents:     []int{baseline.ID, baseline.ID, baseline.ID, baseline.ID},
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}
			log.Info().Msgf("completed %dx%d game %d after %d moves", size, size, i+1, gameMetric.TotalMoves)
		}
	}

	log.Info().Msg("completed board size experiment")
	return writeResults("board_size", setup.Root, configs, gameRecords, moveRecords)
}

// Summary aggregates the game records of one experiment by agent.
type Summary struct {
	Games int
	Wins  map[int]int // AgentConfig.ID to games won outright
	Ties  int
}

// Summarize counts outright wins per agent config.
func Summarize(records []metrics.GameRecord) Summary {
	sum := Summary{Wins: make(map[int]int)}
	for _, record := range records {
		sum.Games++
		if record.Winner == "" {
			sum.Ties++
			continue
		}
		for seat, agentID := range record.Agents {
			if game.PlayerID(seat+1).String() == record.Winner {
				sum.Wins[agentID]++
			}
		}
	}
	return sum
}
