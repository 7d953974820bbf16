package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"miners/agent"
	"miners/experiments/metrics"
	"miners/game"
	"miners/meta"
)

type Option func(e *LocalEngine)

func WithMetrics() Option {
	return func(e *LocalEngine) {
		e.newCollector = metrics.NewCollector
	}
}

func WithMaxTurns(turns int) Option {
	return func(e *LocalEngine) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

// WithObserver registers a callback that sees every applied move and the
// state right after it. The state must not be retained.
func WithObserver(observe func(move game.Move, gs *game.GameState)) Option {
	return func(e *LocalEngine) {
		e.observe = observe
	}
}

var _ Engine = (*LocalEngine)(nil)

type LocalEngine struct {
	State        *game.GameState
	Controllers  map[game.PlayerID]Controller
	maxTurns     int
	newCollector func() metrics.Collector
	observe      func(game.Move, *game.GameState)
}

// NewLocalEngine starts a match from cfg. Every seated player needs a controller.
func NewLocalEngine(cfg game.Config, controllers map[game.PlayerID]Controller, options ...Option) (*LocalEngine, error) {
	state, err := game.NewGame(cfg)
	if err != nil {
		return nil, err
	}
	return Resume(state, controllers, options...)
}

// Resume continues a match from an existing state, e.g. a loaded snapshot.
func Resume(state *game.GameState, controllers map[game.PlayerID]Controller, options ...Option) (*LocalEngine, error) {
	for _, id := range state.Seated() {
		if controllers[id] == nil {
			return nil, fmt.Errorf("no controller for %s", id)
		}
	}
	e := &LocalEngine{ // Default values
		State:        state,
		Controllers:  controllers,
		maxTurns:     meta.MAX_TURNS,
		newCollector: metrics.NewDummyCollector,
	}
	for _, option := range options {
		option(e)
	}
	return e, nil
}

// Run executes the game loop until the match is terminal.
func (e *LocalEngine) Run(ctx context.Context) (metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: int(e.State.Active),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("%s is starting", e.State.Active)

	turnCount := 1
	for !e.State.Terminal && turnCount <= e.maxTurns {
		id := e.State.Active
		before := e.State.InPlay()

		collector := e.newCollector()
		collector.Start()
		move, err := e.takeTurn(ctx, id, collector)
		if err != nil {
			return gameMetric, moveMetrics, err
		}
		turnMetric := collector.Complete()
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:       turnCount,
			Player:     int(id),
			Command:    move.Command(),
			Evaluation: e.State.Evaluate(id),
			TurnMetric: turnMetric,
		})
		if e.observe != nil {
			e.observe(move, e.State)
		}

		for _, p := range before {
			if e.State.Players[p].Eliminated {
				log.Info().Msgf("%s has been eliminated with %d mines", p, e.State.Scores()[p])
			}
		}
		turnCount++
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(e.State.Log)
	gameMetric.Scores = e.State.Scores()
	if winner, ok := e.State.Winner(); ok {
		gameMetric.Winner = winner.String()
	}

	if e.State.Terminal {
		log.Info().Msgf("game over after %d moves, winner: %q, scores: %v", gameMetric.TotalMoves, gameMetric.Winner, gameMetric.Scores)
	} else {
		log.Warn().Msgf("stopped after %d turns (game not over)", e.maxTurns)
	}
	return gameMetric, moveMetrics, nil
}

// takeTurn asks the active player's controller for a move, giving it a few
// attempts before playing the first legal build on its behalf.
func (e *LocalEngine) takeTurn(ctx context.Context, id game.PlayerID, collector metrics.Collector) (game.Move, error) {
	controller := e.Controllers[id]
	for attempt := 0; attempt < meta.MaxIllegalAttempts; attempt++ {
		collector.AddAttempt()
		move, ok, err := controller.NextMove(ctx, e.State.Copy(), id)
		if err != nil {
			return game.Move{}, fmt.Errorf("%s: %w", id, err)
		}
		if !ok {
			break
		}
		legal, err := e.State.Play(move)
		if errors.Is(err, game.ErrOutOfRange) {
			log.Warn().Msgf("%s attempted move %q off the board", id, move.Command())
			continue
		}
		if err != nil {
			return game.Move{}, fmt.Errorf("%s playing %q: %w", id, move.Command(), err)
		}
		if legal {
			return move, nil
		}
		log.Warn().Msgf("%s attempted illegal move %q", id, move.Command())
	}

	cells := e.State.LegalBuildCells(id)
	if len(cells) == 0 {
		return game.Move{}, fmt.Errorf("%s has no legal build", id)
	}
	move := game.BuildStation(cells[0].Row, cells[0].Col)
	collector.Forced()
	if _, err := e.State.Play(move); err != nil {
		return game.Move{}, err
	}
	log.Warn().Msgf("%s forced to play %q", id, move.Command())
	return move, nil
}

// AgentController drives a seat with a scripted agent, pausing before every
// move the way the interactive game paces its AI turns.
type AgentController struct {
	Agent agent.Agent
	Delay time.Duration
}

func NewAgentController(a agent.Agent, delay time.Duration) *AgentController {
	return &AgentController{Agent: a, Delay: delay}
}

func (c *AgentController) NextMove(ctx context.Context, gs *game.GameState, id game.PlayerID) (game.Move, bool, error) {
	if c.Delay > 0 {
		timer := time.NewTimer(c.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return game.Move{}, false, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return game.Move{}, false, err
	}
	move, ok := c.Agent.FindMove(gs, id)
	return move, ok, nil
}

// ScriptedControllers seats one agent controller for every scripted slot in
// cfg, each agent with its own seed derived from cfg.Seed.
func ScriptedControllers(cfg game.Config) map[game.PlayerID]Controller {
	controllers := make(map[game.PlayerID]Controller)
	for _, id := range game.AllPlayers {
		if cfg.Roles[id] != game.RoleScripted {
			continue
		}
		var options []agent.Option
		if cfg.Seed != 0 {
			options = append(options, agent.WithSeed(cfg.Seed+uint64(id)))
		}
		delay := time.Duration(cfg.AITurnDelayMs) * time.Millisecond
		controllers[id] = NewAgentController(agent.NewHeuristic(options...), delay)
	}
	return controllers
}
