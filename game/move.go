package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Move represents one turn's action.
type Move struct {
	Action   ActionType
	Row      int
	Col      int
	Vertical bool // beam orientation, strikes only
}

func BuildStation(r, c int) Move { return Move{Action: BuildStationAction, Row: r, Col: c} }
func BuildMine(r, c int) Move    { return Move{Action: BuildMineAction, Row: r, Col: c} }
func Pass() Move                 { return Move{Action: PassAction} }

func StrikeAt(t Target) Move {
	return Move{Action: StrikeAction, Row: t.Row, Col: t.Col, Vertical: t.Vertical}
}

func (m Move) Target() Target {
	return Target{Row: m.Row, Col: m.Col, Vertical: m.Vertical}
}

// Battle log commands. Coordinates are written column first.
const (
	cmdStation = "S"
	cmdMine    = "M"
	cmdStrike  = "L"
	cmdBeamV   = "LV"
	cmdPass    = "P"
)

// Command renders the move as a battle log entry.
func (m Move) Command() string {
	switch m.Action {
	case BuildStationAction:
		return fmt.Sprintf("%s %d %d", cmdStation, m.Col, m.Row)
	case BuildMineAction:
		return fmt.Sprintf("%s %d %d", cmdMine, m.Col, m.Row)
	case StrikeAction:
		if m.Vertical {
			return fmt.Sprintf("%s %d %d", cmdBeamV, m.Col, m.Row)
		}
		return fmt.Sprintf("%s %d %d", cmdStrike, m.Col, m.Row)
	default:
		return cmdPass
	}
}

func (m Move) String() string { return m.Command() }

// ParseCommand parses a battle log entry back into a move.
func ParseCommand(entry string) (Move, error) {
	parts := strings.Fields(entry)
	if len(parts) == 0 {
		return Move{}, fmt.Errorf("empty command")
	}
	cmd := strings.ToUpper(parts[0])
	if cmd == cmdPass {
		if len(parts) != 1 {
			return Move{}, fmt.Errorf("command %q: pass takes no arguments", entry)
		}
		return Pass(), nil
	}
	if len(parts) != 3 {
		return Move{}, fmt.Errorf("command %q: want <cmd> <col> <row>", entry)
	}
	col, err := strconv.Atoi(parts[1])
	if err != nil {
		return Move{}, fmt.Errorf("command %q: column: %w", entry, err)
	}
	row, err := strconv.Atoi(parts[2])
	if err != nil {
		return Move{}, fmt.Errorf("command %q: row: %w", entry, err)
	}
	switch cmd {
	case cmdStation:
		return BuildStation(row, col), nil
	case cmdMine:
		return BuildMine(row, col), nil
	case cmdStrike:
		return StrikeAt(Target{Row: row, Col: col}), nil
	case cmdBeamV:
		return StrikeAt(Target{Row: row, Col: col, Vertical: true}), nil
	}
	return Move{}, fmt.Errorf("command %q: unknown command %q", entry, parts[0])
}

// Replay starts a match from cfg and re-applies a battle log. Every entry
// must be legal for the player whose turn it was.
func Replay(cfg Config, log []string) (*GameState, error) {
	gs, err := NewGame(cfg)
	if err != nil {
		return nil, err
	}
	for i, entry := range log {
		m, err := ParseCommand(entry)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		ok, err := gs.Play(m)
		if err != nil {
			return nil, fmt.Errorf("entry %d %q: %w", i, entry, err)
		}
		if !ok {
			return nil, fmt.Errorf("entry %d %q: illegal for %s", i, entry, gs.Active)
		}
	}
	return gs, nil
}
