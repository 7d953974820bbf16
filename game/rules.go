package game

// Target is the cell a strike is aimed at. Vertical only matters to resolvers
// that fire along a line.
type Target struct {
	Row      int
	Col      int
	Vertical bool
}

// Outcome lists the cells a strike turned into debris. An empty outcome is an
// illegal or missed strike; nothing was mutated.
type Outcome struct {
	Destroyed []Coord
}

func (o Outcome) Success() bool { return len(o.Destroyed) > 0 }

// CombatResolver converts opposing cells into debris. Implementations must
// finish validating before the first write.
type CombatResolver interface {
	Strike(gs *GameState, attacker PlayerID, target Target) Outcome
}

// NewCombatResolver returns the resolver for a combat mode.
func NewCombatResolver(mode CombatMode) CombatResolver {
	if mode == CombatBeam {
		return NewBeamRules()
	}
	return NewStandardRules()
}

// charged reports whether the attacker's line power meets the threshold.
func charged(gs *GameState, attacker PlayerID) (int, bool) {
	power := LinePower(gs.Board, attacker)
	return power, power >= gs.Threshold
}
