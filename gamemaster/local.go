package gamemaster

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"miners/game"
	"miners/meta"
)

var (
	ErrGameOver     = errors.New("game is over - no moves allowed")
	ErrNotYourTurn  = errors.New("not this player's turn")
	ErrIllegalMove  = errors.New("illegal move")
	ErrUnknownMatch = errors.New("unknown match")
)

// Update is one applied move and a private copy of the state after it.
type Update struct {
	Move  game.Move
	State *game.GameState
	Hash  game.StateHash
}

// UpdateGetter polls the match feed without blocking. ok is false when no
// update is waiting; closed is true once the final update was consumed.
type UpdateGetter func() (u Update, ok bool, closed bool)

type Engine interface {
	Init() (*game.GameState, UpdateGetter)
	Play(id game.PlayerID, move game.Move) error
	State() *game.GameState
	GameOver() bool
}

// localEngine hosts a single match. Every call is serialized on mu so moves
// from different seats can arrive from different goroutines.
var _ Engine = (*localEngine)(nil)

type localEngine struct {
	mu       sync.Mutex
	state    *game.GameState
	updateCh chan Update
	gameOver bool
}

func NewLocalEngine(cfg game.Config) (*localEngine, error) {
	gs, err := game.NewGame(cfg)
	if err != nil {
		return nil, err
	}
	return resumeLocalEngine(gs), nil
}

func resumeLocalEngine(gs *game.GameState) *localEngine {
	return &localEngine{
		state:    gs,
		updateCh: make(chan Update, meta.UpdateBufferSize),
		gameOver: gs.Terminal,
	}
}

// Init returns a copy of the current state and the getter for the update feed.
func (e *localEngine) Init() (*game.GameState, UpdateGetter) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state.Copy(), func() (Update, bool, bool) {
		select {
		case u, ok := <-e.updateCh:
			if !ok { // Game over
				return Update{}, false, true
			}
			return u, true, false
		default:
			// No updates yet, return immediately
			return Update{}, false, false
		}
	}
}

func (e *localEngine) State() *game.GameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Copy()
}

func (e *localEngine) GameOver() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gameOver
}

// Play applies move for id. Unlike the game package, the host enforces turn
// order and reports illegal moves as errors.
func (e *localEngine) Play(id game.PlayerID, move game.Move) error {
	_, err := e.play(id, move)
	return err
}

// play reports whether this move ended the match.
func (e *localEngine) play(id game.PlayerID, move game.Move) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.gameOver {
		return false, ErrGameOver
	}
	if id != e.state.Active {
		return false, fmt.Errorf("%w: %s moved during %s's turn", ErrNotYourTurn, id, e.state.Active)
	}

	ok, err := e.state.Play(move)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, fmt.Errorf("%w: %s by %s", ErrIllegalMove, move.Command(), id)
	}

	e.publish(Update{Move: move, State: e.state.Copy(), Hash: e.state.Hash()})
	if e.state.Terminal {
		e.gameOver = true
		close(e.updateCh)
	}
	return e.gameOver, nil
}

// publish never blocks the match: when nobody drains the feed the oldest
// update is dropped.
func (e *localEngine) publish(u Update) {
	for {
		select {
		case e.updateCh <- u:
			return
		default:
		}
		select {
		case old := <-e.updateCh:
			log.Warn().Msgf("update feed full, dropped %q", old.Move.Command())
		default:
		}
	}
}
