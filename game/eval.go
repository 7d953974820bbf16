package game

import "sort"

// Standing is one seated player's final tally.
type Standing struct {
	Player PlayerID
	Score  int
}

// Standings ranks seated players by score, highest first, ties by id.
func (gs *GameState) Standings() []Standing {
	var standings []Standing
	for id, score := range gs.Scores() {
		standings = append(standings, Standing{Player: id, Score: score})
	}
	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Score != standings[j].Score {
			return standings[i].Score > standings[j].Score
		}
		return standings[i].Player < standings[j].Player
	})
	return standings
}

// Winner returns the sole top scorer of a finished match. A tie for first or
// an unfinished match has no winner.
func (gs *GameState) Winner() (PlayerID, bool) {
	if !gs.Terminal {
		return 0, false
	}
	standings := gs.Standings()
	if len(standings) == 0 {
		return 0, false
	}
	if len(standings) > 1 && standings[1].Score == standings[0].Score {
		return 0, false
	}
	return standings[0].Player, true
}

// Evaluate scores id's position between -1 and 1 against its strongest
// opponent, averaging mines, line power and open build cells.
func (gs *GameState) Evaluate(id PlayerID) float64 {
	scores := gs.Scores()
	var rivalMines, rivalPower, rivalMobility float64
	for _, other := range gs.Seated() {
		if other == id {
			continue
		}
		rivalMines = max(rivalMines, float64(scores[other]))
		rivalPower = max(rivalPower, float64(LinePower(gs.Board, other)))
		rivalMobility = max(rivalMobility, float64(len(LegalBuildCells(gs.Board, other))))
	}

	mineScore := normalize(float64(scores[id]), rivalMines)
	powerScore := normalize(float64(LinePower(gs.Board, id)), rivalPower)
	mobilityScore := normalize(float64(len(LegalBuildCells(gs.Board, id))), rivalMobility)

	return (mineScore + powerScore + mobilityScore) / 3.0
}

// normalize normalizes value relative to otherValue to a score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}
