package engine

import (
	"context"

	"miners/experiments/metrics"
	"miners/game"
)

type Engine interface {
	// Run plays a match till it is terminal or the turn cap is reached
	Run(ctx context.Context) (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}

// Controller decides moves for one seat. Returning false hands the decision
// back to the engine, which falls back to a legal build.
type Controller interface {
	NextMove(ctx context.Context, gs *game.GameState, id game.PlayerID) (game.Move, bool, error)
}
