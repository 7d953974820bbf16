package gamemaster

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"miners/game"
)

// Archiver receives every match that reaches game over.
type Archiver interface {
	RecordMatch(ctx context.Context, id string, gs *game.GameState) error
}

// GameMaster hosts any number of concurrent matches, one engine each.
type GameMaster struct {
	mu      sync.Mutex
	matches map[uuid.UUID]*localEngine
	archive Archiver
}

// NewGameMaster creates a registry. archive may be nil.
func NewGameMaster(archive Archiver) *GameMaster {
	return &GameMaster{
		matches: make(map[uuid.UUID]*localEngine),
		archive: archive,
	}
}

// Create starts a new match and returns its id and initial feed.
func (gm *GameMaster) Create(cfg game.Config) (uuid.UUID, *game.GameState, UpdateGetter, error) {
	e, err := NewLocalEngine(cfg)
	if err != nil {
		return uuid.Nil, nil, nil, err
	}
	return gm.host(e)
}

// Resume hosts a match restored from a snapshot or the archive.
func (gm *GameMaster) Resume(gs *game.GameState) (uuid.UUID, *game.GameState, UpdateGetter, error) {
	if err := gs.Validate(); err != nil {
		return uuid.Nil, nil, nil, err
	}
	return gm.host(resumeLocalEngine(gs.Copy()))
}

func (gm *GameMaster) host(e *localEngine) (uuid.UUID, *game.GameState, UpdateGetter, error) {
	id := uuid.New()
	gm.mu.Lock()
	gm.matches[id] = e
	gm.mu.Unlock()

	state, getUpdate := e.Init()
	log.Info().Msgf("match %s created with players %v", id, state.Seated())
	return id, state, getUpdate, nil
}

func (gm *GameMaster) Match(id uuid.UUID) (Engine, error) {
	e, err := gm.lookup(id)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (gm *GameMaster) lookup(id uuid.UUID) (*localEngine, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	e, ok := gm.matches[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMatch, id)
	}
	return e, nil
}

// Play forwards a move to the match. The move that ends the match also hands
// the final state to the archive.
func (gm *GameMaster) Play(ctx context.Context, id uuid.UUID, player game.PlayerID, move game.Move) error {
	e, err := gm.lookup(id)
	if err != nil {
		return err
	}
	ended, err := e.play(player, move)
	if err != nil || !ended {
		return err
	}

	final := e.State()
	if winner, ok := final.Winner(); ok {
		log.Info().Msgf("match %s is over, winner: %s, scores: %v", id, winner, final.Scores())
	} else {
		log.Info().Msgf("match %s is over without a single winner, scores: %v", id, final.Scores())
	}
	if gm.archive == nil {
		return nil
	}
	if err := gm.archive.RecordMatch(ctx, id.String(), final); err != nil {
		return fmt.Errorf("archive match %s: %w", id, err)
	}
	return nil
}

// Remove drops a match from the registry, archiving it first when it is still
// running so an abandoned match is not lost.
func (gm *GameMaster) Remove(ctx context.Context, id uuid.UUID) error {
	gm.mu.Lock()
	e, ok := gm.matches[id]
	delete(gm.matches, id)
	gm.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMatch, id)
	}

	log.Info().Msgf("match %s removed", id)
	if e.GameOver() || gm.archive == nil {
		return nil
	}
	return gm.archive.RecordMatch(ctx, id.String(), e.State())
}

// Matches lists the ids of hosted matches.
func (gm *GameMaster) Matches() []uuid.UUID {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	ids := make([]uuid.UUID, 0, len(gm.matches))
	for id := range gm.matches {
		ids = append(ids, id)
	}
	return ids
}
