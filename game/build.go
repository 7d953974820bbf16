package game

// CanBuild reports whether p may place a station or a mine at (r, c): the cell
// must be on the board, empty, and orthogonally adjacent to one of p's
// stations. Diagonal contact does not count.
func CanBuild(b *Board, p PlayerID, r, c int) bool {
	if !b.InBounds(r, c) || !b.at(r, c).IsEmpty() {
		return false
	}
	for _, d := range adjacency {
		nr, nc := r+d.Row, c+d.Col
		if b.InBounds(nr, nc) && b.at(nr, nc).IsStationOf(p) {
			return true
		}
	}
	return false
}

// LegalBuildCells returns every cell p can build on, in row-major order.
func LegalBuildCells(b *Board, p PlayerID) []Coord {
	var cells []Coord
	for r := 0; r < b.Size; r++ {
		for c := 0; c < b.Size; c++ {
			if CanBuild(b, p, r, c) {
				cells = append(cells, Coord{r, c})
			}
		}
	}
	return cells
}

// HasAnyLegalBuild is the mobility test used for elimination.
func HasAnyLegalBuild(b *Board, p PlayerID) bool {
	for r := 0; r < b.Size; r++ {
		for c := 0; c < b.Size; c++ {
			if CanBuild(b, p, r, c) {
				return true
			}
		}
	}
	return false
}
