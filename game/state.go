package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"slices"

	"miners/meta"
)

type StateHash uint64

// GameState is one live match. It owns its board exclusively; hosts that
// share a match between goroutines must serialize access themselves.
type GameState struct {
	Board           *Board                 // The grid, mutated only by builds and strikes
	Players         [MaxPlayers + 1]Player // Player slots indexed by PlayerID, index 0 unused
	Active          PlayerID               // Whose turn it is, meaningless once Terminal
	Threshold       int                    // Line power needed to strike
	Terminal        bool                   // Absorbing game-over flag
	AllowManualSkip bool                   // Whether a player may pass without building
	AITurnDelayMs   int                    // Presentation pacing, carried for persistence only
	Combat          CombatMode             // Which combat resolver strikes go through
	EarlyFinish     bool                   // End as soon as a lone survivor leads on score
	Log             []string               // Battle log of applied moves
}

// NewGame places the home stations, marks the home cell of every unseated
// slot inactive and hands the first turn to the lowest seated slot.
func NewGame(cfg Config) (*GameState, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	gs := &GameState{
		Board:           NewBoard(cfg.Size),
		Threshold:       cfg.WeaponThreshold,
		AllowManualSkip: cfg.AllowManualSkip,
		AITurnDelayMs:   cfg.AITurnDelayMs,
		Combat:          cfg.Combat,
		EarlyFinish:     cfg.EarlyFinish,
	}
	for _, id := range AllPlayers {
		p := NewPlayer(id, cfg.Roles[id], cfg.Size)
		gs.Players[id] = p
		home := StationOf(id)
		if !p.Seated() {
			home = InactiveCell
		}
		if err := gs.Board.Set(p.Home.Row, p.Home.Col, home); err != nil {
			return nil, err
		}
	}
	for _, id := range AllPlayers {
		if gs.Players[id].Seated() {
			gs.Active = id
			break
		}
	}
	return gs, nil
}

// Player returns the slot for id, or nil for ids outside 1..4.
func (gs *GameState) Player(id PlayerID) *Player {
	if !id.Valid() {
		return nil
	}
	return &gs.Players[id]
}

// Seated lists the players that joined the match, in id order.
func (gs *GameState) Seated() []PlayerID {
	var ids []PlayerID
	for _, id := range AllPlayers {
		if gs.Players[id].Seated() {
			ids = append(ids, id)
		}
	}
	return ids
}

// InPlay lists the players that still take turns, in id order.
func (gs *GameState) InPlay() []PlayerID {
	var ids []PlayerID
	for _, id := range AllPlayers {
		if gs.Players[id].InPlay() {
			ids = append(ids, id)
		}
	}
	return ids
}

func (gs *GameState) LinePower(id PlayerID) int { return LinePower(gs.Board, id) }

func (gs *GameState) LegalBuildCells(id PlayerID) []Coord { return LegalBuildCells(gs.Board, id) }

// CanStrike reports whether id is charged enough to strike this turn.
func (gs *GameState) CanStrike(id PlayerID) bool {
	_, ok := charged(gs, id)
	return ok
}

// Scores counts mines for every seated player.
func (gs *GameState) Scores() map[PlayerID]int {
	scores := make(map[PlayerID]int)
	for _, id := range gs.Seated() {
		scores[id] = gs.Board.Count(MineOf(id))
	}
	return scores
}

// checkActor validates the common preconditions of every action. A nil
// error with ok=false means the player may not act.
func (gs *GameState) checkActor(id PlayerID, r, c int) (bool, error) {
	if gs.Terminal {
		return false, ErrInvalidState
	}
	if !id.Valid() {
		return false, fmt.Errorf("%w: %d", ErrUnknownPlayer, id)
	}
	if !gs.Board.InBounds(r, c) {
		return false, fmt.Errorf("%s: %w", Coord{r, c}, ErrOutOfRange)
	}
	return gs.Players[id].InPlay(), nil
}

// AttemptBuild places a station or a mine for id. Illegal builds return
// false without touching the board.
func (gs *GameState) AttemptBuild(id PlayerID, r, c int, kind CellKind) (bool, error) {
	ok, err := gs.checkActor(id, r, c)
	if !ok || err != nil {
		return false, err
	}
	var cell Cell
	switch kind {
	case Station:
		cell = StationOf(id)
	case Mine:
		cell = MineOf(id)
	default:
		return false, nil
	}
	if !CanBuild(gs.Board, id, r, c) {
		return false, nil
	}
	return true, gs.Board.Set(r, c, cell)
}

// Strike runs the match's combat resolver for id.
func (gs *GameState) Strike(id PlayerID, target Target) (Outcome, error) {
	ok, err := gs.checkActor(id, target.Row, target.Col)
	if !ok || err != nil {
		return Outcome{}, err
	}
	return NewCombatResolver(gs.Combat).Strike(gs, id, target), nil
}

// AttemptStrike is Strike reduced to whether anything was destroyed.
func (gs *GameState) AttemptStrike(id PlayerID, target Target) (bool, error) {
	outcome, err := gs.Strike(id, target)
	return outcome.Success(), err
}

// Skip is a voluntary pass. It is only legal when the match allows it and
// never changes the board; Advance still runs the elimination checks.
func (gs *GameState) Skip(id PlayerID) (bool, error) {
	if gs.Terminal {
		return false, ErrInvalidState
	}
	if !id.Valid() {
		return false, fmt.Errorf("%w: %d", ErrUnknownPlayer, id)
	}
	return gs.AllowManualSkip && gs.Players[id].InPlay(), nil
}

// Advance eliminates every player without a legal build, then passes the
// turn to the next player still in play, or ends the game.
func (gs *GameState) Advance() error {
	if gs.Terminal {
		return ErrInvalidState
	}
	for _, id := range AllPlayers {
		p := &gs.Players[id]
		if p.InPlay() && !HasAnyLegalBuild(gs.Board, id) {
			p.Eliminated = true
		}
	}

	remaining := gs.InPlay()
	if len(remaining) == 0 {
		gs.Terminal = true
		return nil
	}
	if gs.EarlyFinish && len(remaining) == 1 && gs.leadsAlone(remaining[0]) {
		gs.Terminal = true
		return nil
	}

	next := gs.Active
	for i := 0; i < MaxPlayers; i++ {
		next = next.next()
		if gs.Players[next].InPlay() {
			gs.Active = next
			return nil
		}
	}
	gs.Terminal = true
	return nil
}

// leadsAlone reports whether id's score beats every other seated player's.
func (gs *GameState) leadsAlone(id PlayerID) bool {
	scores := gs.Scores()
	for other, score := range scores {
		if other != id && score >= scores[id] {
			return false
		}
	}
	return true
}

// Play applies one move for the active player. A legal move is appended to
// the battle log and the turn advances; an illegal one changes nothing.
func (gs *GameState) Play(m Move) (bool, error) {
	if gs.Terminal {
		return false, ErrInvalidState
	}
	id := gs.Active
	var ok bool
	var err error
	switch m.Action {
	case BuildStationAction:
		ok, err = gs.AttemptBuild(id, m.Row, m.Col, Station)
	case BuildMineAction:
		ok, err = gs.AttemptBuild(id, m.Row, m.Col, Mine)
	case StrikeAction:
		ok, err = gs.AttemptStrike(id, m.Target())
	case PassAction:
		ok, err = gs.Skip(id)
	default:
		return false, fmt.Errorf("unknown action %d", m.Action)
	}
	if err != nil || !ok {
		return false, err
	}
	gs.Log = append(gs.Log, m.Command())
	return true, gs.Advance()
}

// Validate checks a state that was built outside NewGame, e.g. restored
// from a snapshot.
func (gs *GameState) Validate() error {
	if gs.Board == nil || len(gs.Board.Cells) != gs.Board.Size*gs.Board.Size {
		return fmt.Errorf("%w: malformed board", ErrInvalidConfig)
	}
	if !slices.Contains(meta.BoardSizes, gs.Board.Size) {
		return fmt.Errorf("%w: board size %d", ErrInvalidConfig, gs.Board.Size)
	}
	if gs.Threshold < meta.MinWeaponThreshold || gs.Threshold > meta.MaxWeaponThreshold {
		return fmt.Errorf("%w: weapon threshold %d", ErrInvalidConfig, gs.Threshold)
	}
	for _, id := range AllPlayers {
		if gs.Players[id].ID != id {
			return fmt.Errorf("%w: slot %d holds player %d", ErrInvalidConfig, id, gs.Players[id].ID)
		}
	}
	if len(gs.Seated()) == 0 {
		return fmt.Errorf("%w: no seated players", ErrInvalidConfig)
	}
	if !gs.Terminal && (!gs.Active.Valid() || !gs.Players[gs.Active].InPlay()) {
		return fmt.Errorf("%w: active player %d cannot move", ErrInvalidConfig, gs.Active)
	}
	return nil
}

func (gs *GameState) Copy() *GameState {
	logCopy := make([]string, len(gs.Log))
	copy(logCopy, gs.Log)

	newGs := *gs // Players is an array, copied by value
	newGs.Board = gs.Board.Copy()
	newGs.Log = logCopy
	return &newGs
}

func (gs *GameState) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(gs.Active))
	binary.Write(hasher, binary.LittleEndian, gs.Terminal)

	for _, cell := range gs.Board.Cells {
		binary.Write(hasher, binary.LittleEndian, int64(cell.Kind))
		binary.Write(hasher, binary.LittleEndian, int64(cell.Owner))
	}

	for _, id := range AllPlayers {
		binary.Write(hasher, binary.LittleEndian, gs.Players[id].Eliminated)
	}

	return StateHash(hasher.Sum64())
}
