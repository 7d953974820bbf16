package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"miners/game"
)

func scriptedConfig(seed uint64) game.Config {
	cfg := game.DefaultConfig()
	cfg.Roles = map[game.PlayerID]game.Role{1: game.RoleScripted, 2: game.RoleScripted, 3: game.RoleScripted}
	cfg.AITurnDelayMs = 0
	cfg.Seed = seed
	return cfg
}

// scriptedMoves replays a fixed list of moves and then gives up.
type scriptedMoves struct {
	moves []game.Move
	calls int
}

func (s *scriptedMoves) NextMove(ctx context.Context, gs *game.GameState, id game.PlayerID) (game.Move, bool, error) {
	s.calls++
	if len(s.moves) == 0 {
		return game.Move{}, false, nil
	}
	m := s.moves[0]
	s.moves = s.moves[1:]
	return m, true, nil
}

func TestLocalEngineRun(t *testing.T) {
	t.Run("scripted match reaches a terminal state", func(t *testing.T) {
		cfg := scriptedConfig(42)
		e, err := NewLocalEngine(cfg, ScriptedControllers(cfg), WithMetrics())
		require.NoError(t, err)

		var observed int
		e.observe = func(game.Move, *game.GameState) { observed++ }

		gameMetric, moveMetrics, err := e.Run(context.Background())
		require.NoError(t, err)
		require.True(t, e.State.Terminal)
		require.Equal(t, 1, gameMetric.StartingPlayer)
		require.Equal(t, len(e.State.Log), gameMetric.TotalMoves)
		require.Len(t, moveMetrics, gameMetric.TotalMoves)
		require.Equal(t, gameMetric.TotalMoves, observed)
		require.Equal(t, e.State.Scores(), gameMetric.Scores)
		for _, m := range moveMetrics {
			require.Equal(t, 1, m.Attempts, "Scripted agents only play legal moves")
			require.False(t, m.Forced)
		}

		winner, ok := e.State.Winner()
		if ok {
			require.Equal(t, winner.String(), gameMetric.Winner)
		} else {
			require.Empty(t, gameMetric.Winner)
		}

		replayed, err := game.Replay(cfg, e.State.Log)
		require.NoError(t, err)
		require.Equal(t, e.State.Hash(), replayed.Hash())
	})

	t.Run("same seed same match", func(t *testing.T) {
		run := func() []string {
			cfg := scriptedConfig(7)
			e, err := NewLocalEngine(cfg, ScriptedControllers(cfg))
			require.NoError(t, err)
			_, _, err = e.Run(context.Background())
			require.NoError(t, err)
			return e.State.Log
		}
		require.Equal(t, run(), run())
	})

	t.Run("illegal moves fall back to a legal build", func(t *testing.T) {
		cfg := scriptedConfig(1)
		controllers := ScriptedControllers(cfg)
		human := &scriptedMoves{moves: []game.Move{game.BuildStation(5, 5), game.BuildMine(0, 0), game.Pass()}}
		controllers[1] = human

		e, err := NewLocalEngine(cfg, controllers, WithMetrics(), WithMaxTurns(1))
		require.NoError(t, err)
		_, moveMetrics, err := e.Run(context.Background())
		require.NoError(t, err)

		require.Equal(t, 3, human.calls)
		require.Equal(t, []string{"S 1 0"}, e.State.Log, "First legal cell in row-major order")
		require.Len(t, moveMetrics, 1)
		require.True(t, moveMetrics[0].Forced)
		require.Equal(t, 3, moveMetrics[0].Attempts)
		require.Equal(t, game.PlayerID(2), e.State.Active)
	})

	t.Run("off-board move counts as an illegal attempt", func(t *testing.T) {
		cfg := scriptedConfig(1)
		controllers := ScriptedControllers(cfg)
		human := &scriptedMoves{moves: []game.Move{game.BuildStation(3, 20), game.BuildStation(1, 2)}}
		controllers[1] = human

		e, err := NewLocalEngine(cfg, controllers, WithMetrics(), WithMaxTurns(1))
		require.NoError(t, err)
		_, moveMetrics, err := e.Run(context.Background())
		require.NoError(t, err)

		require.Equal(t, 2, human.calls)
		require.Equal(t, []string{"S 2 1"}, e.State.Log)
		require.Len(t, moveMetrics, 1)
		require.False(t, moveMetrics[0].Forced)
		require.Equal(t, 2, moveMetrics[0].Attempts)
	})

	t.Run("turn cap stops the loop", func(t *testing.T) {
		cfg := scriptedConfig(3)
		e, err := NewLocalEngine(cfg, ScriptedControllers(cfg), WithMaxTurns(5))
		require.NoError(t, err)
		gameMetric, _, err := e.Run(context.Background())
		require.NoError(t, err)
		require.False(t, e.State.Terminal)
		require.Equal(t, 5, gameMetric.TotalMoves)
		require.Empty(t, gameMetric.Winner)
	})

	t.Run("cancelled context interrupts the ai delay", func(t *testing.T) {
		cfg := scriptedConfig(3)
		cfg.AITurnDelayMs = int(time.Hour / time.Millisecond)
		e, err := NewLocalEngine(cfg, ScriptedControllers(cfg))
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, _, err = e.Run(ctx)
		require.ErrorIs(t, err, context.DeadlineExceeded)
		require.Empty(t, e.State.Log)
	})

	t.Run("every seated player needs a controller", func(t *testing.T) {
		cfg := scriptedConfig(3)
		controllers := ScriptedControllers(cfg)
		delete(controllers, 2)
		_, err := NewLocalEngine(cfg, controllers)
		require.Error(t, err)
	})
}
