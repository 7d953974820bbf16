package game

import "fmt"

type CellKind int

const (
	Empty    CellKind = iota // 0
	Station                  // 1
	Mine                     // 2
	Debris                   // 3
	Inactive                 // 4
)

// Cell is the content of one grid position. Owner is only meaningful for
// stations and mines.
type Cell struct {
	Kind  CellKind
	Owner PlayerID
}

var (
	EmptyCell    = Cell{Kind: Empty}
	DebrisCell   = Cell{Kind: Debris}
	InactiveCell = Cell{Kind: Inactive}
)

func StationOf(p PlayerID) Cell { return Cell{Kind: Station, Owner: p} }
func MineOf(p PlayerID) Cell    { return Cell{Kind: Mine, Owner: p} }

func (c Cell) IsEmpty() bool { return c.Kind == Empty }

// IsStationOf reports whether the cell is a station owned by p.
func (c Cell) IsStationOf(p PlayerID) bool { return c.Kind == Station && c.Owner == p }

func (c Cell) IsMineOf(p PlayerID) bool { return c.Kind == Mine && c.Owner == p }

// IsStructure reports whether the cell holds any player's station or mine.
func (c Cell) IsStructure() bool { return c.Kind == Station || c.Kind == Mine }

const (
	EmptySymbol    = '.'
	DebrisSymbol   = '█'
	InactiveSymbol = 'X'
)

var stationSymbols = [MaxPlayers + 1]rune{0, '↑', '↓', '←', '→'}
var mineSymbols = [MaxPlayers + 1]rune{0, '○', '△', '□', '◇'}

// Symbol returns the printable glyph used on the wire and in the console.
func (c Cell) Symbol() rune {
	switch c.Kind {
	case Station:
		if c.Owner.Valid() {
			return stationSymbols[c.Owner]
		}
	case Mine:
		if c.Owner.Valid() {
			return mineSymbols[c.Owner]
		}
	case Debris:
		return DebrisSymbol
	case Inactive:
		return InactiveSymbol
	case Empty:
		return EmptySymbol
	}
	return '?'
}

func (c Cell) String() string { return string(c.Symbol()) }

// ParseCell maps a glyph back to its cell.
func ParseCell(r rune) (Cell, error) {
	switch r {
	case EmptySymbol:
		return EmptyCell, nil
	case DebrisSymbol:
		return DebrisCell, nil
	case InactiveSymbol:
		return InactiveCell, nil
	}
	for _, p := range AllPlayers {
		if stationSymbols[p] == r {
			return StationOf(p), nil
		}
		if mineSymbols[p] == r {
			return MineOf(p), nil
		}
	}
	return Cell{}, fmt.Errorf("unknown cell symbol %q", r)
}
