package game

import (
	"fmt"
	"strings"
)

const MaxPlayers = 4

// PlayerID identifies one of the four fixed player slots (1..4).
type PlayerID int

// AllPlayers lists the slots in turn order.
var AllPlayers = []PlayerID{1, 2, 3, 4}

func (p PlayerID) Valid() bool { return p >= 1 && p <= MaxPlayers }

// next returns the following slot in cyclic order 1->2->3->4->1.
func (p PlayerID) next() PlayerID { return p%MaxPlayers + 1 }

func (p PlayerID) String() string { return fmt.Sprintf("Player%d", int(p)) }

type Role int

const (
	RoleInactive Role = iota
	RoleHuman
	RoleScripted
)

func (r Role) String() string {
	switch r {
	case RoleHuman:
		return "human"
	case RoleScripted:
		return "scripted"
	default:
		return "inactive"
	}
}

func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "human":
		return RoleHuman, nil
	case "scripted", "ai":
		return RoleScripted, nil
	case "inactive", "none", "":
		return RoleInactive, nil
	}
	return RoleInactive, fmt.Errorf("unknown role %q", s)
}

func (r Role) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *Role) UnmarshalText(text []byte) error {
	role, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// Player is one seat of the registry. Everything except Eliminated is fixed
// at game creation.
type Player struct {
	ID           PlayerID
	Role         Role
	StationGlyph rune
	MineGlyph    rune
	Home         Coord
	Eliminated   bool
}

// Seated reports whether the slot takes part in the match at all.
func (p *Player) Seated() bool { return p.Role != RoleInactive }

// InPlay reports whether the player still takes turns.
func (p *Player) InPlay() bool { return p.Seated() && !p.Eliminated }

// HomePosition returns the start cell of a slot on a board of the given size.
func HomePosition(id PlayerID, size int) Coord {
	switch id {
	case 1:
		return Coord{1, 1}
	case 2:
		return Coord{size - 2, size - 2}
	case 3:
		return Coord{1, size - 2}
	default:
		return Coord{size - 2, 1}
	}
}

// NewPlayer builds the slot record for id. Unseated slots start eliminated.
func NewPlayer(id PlayerID, role Role, size int) Player {
	return Player{
		ID:           id,
		Role:         role,
		StationGlyph: stationSymbols[id],
		MineGlyph:    mineSymbols[id],
		Home:         HomePosition(id, size),
		Eliminated:   role == RoleInactive,
	}
}
