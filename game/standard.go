package game

// StandardRules is the precision strike: once charged, a strike removes
// exactly one opposing station or mine, however much charge is left over.
type StandardRules struct{}

func NewStandardRules() *StandardRules {
	return &StandardRules{}
}

func (sr *StandardRules) Strike(gs *GameState, attacker PlayerID, target Target) Outcome {
	if _, ok := charged(gs, attacker); !ok {
		return Outcome{}
	}
	cell, err := gs.Board.Get(target.Row, target.Col)
	if err != nil || !cell.IsStructure() || cell.Owner == attacker {
		return Outcome{}
	}
	gs.Board.put(target.Row, target.Col, DebrisCell)
	return Outcome{Destroyed: []Coord{{target.Row, target.Col}}}
}

// BeamRules fires a ray from the target to the right (or downward when
// Vertical). The ray destroys the contiguous run of the target owner's
// stations that starts at the target, stopping at the first other cell or
// after as many cells as the attacker's line power.
type BeamRules struct{}

func NewBeamRules() *BeamRules {
	return &BeamRules{}
}

func (br *BeamRules) Strike(gs *GameState, attacker PlayerID, target Target) Outcome {
	power, ok := charged(gs, attacker)
	if !ok {
		return Outcome{}
	}
	b := gs.Board
	cell, err := b.Get(target.Row, target.Col)
	if err != nil || cell.Kind != Station || cell.Owner == attacker {
		return Outcome{}
	}

	d := Coord{0, 1}
	if target.Vertical {
		d = Coord{1, 0}
	}
	var hits []Coord
	for r, c := target.Row, target.Col; b.InBounds(r, c) && len(hits) < power && b.at(r, c) == cell; r, c = r+d.Row, c+d.Col {
		hits = append(hits, Coord{r, c})
	}
	for _, h := range hits {
		b.put(h.Row, h.Col, DebrisCell)
	}
	return Outcome{Destroyed: hits}
}
