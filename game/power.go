package game

// LinePower is p's weapon charge: the longest contiguous run of p's stations
// in any single row or column. It is recomputed on every call since any build
// or strike can change it.
func LinePower(b *Board, p PlayerID) int {
	maxRun := 0
	for _, line := range b.lines() {
		run := 0
		for _, pos := range line {
			if b.at(pos.Row, pos.Col).IsStationOf(p) {
				run++
				maxRun = max(maxRun, run)
			} else {
				run = 0
			}
		}
	}
	return maxRun
}

// WeaponCells returns p's stations that belong to a run of at least
// threshold cells. Cells shared by a row run and a column run are listed once.
func WeaponCells(b *Board, p PlayerID, threshold int) []Coord {
	seen := make(map[Coord]struct{})
	var cells []Coord
	flush := func(run []Coord) {
		if len(run) < threshold {
			return
		}
		for _, pos := range run {
			if _, ok := seen[pos]; !ok {
				seen[pos] = struct{}{}
				cells = append(cells, pos)
			}
		}
	}
	for _, line := range b.lines() {
		var run []Coord
		for _, pos := range line {
			if b.at(pos.Row, pos.Col).IsStationOf(p) {
				run = append(run, pos)
				continue
			}
			flush(run)
			run = run[:0]
		}
		flush(run)
	}
	return cells
}

// lines lists every row left to right followed by every column top to bottom.
func (b *Board) lines() [][]Coord {
	lines := make([][]Coord, 0, 2*b.Size)
	for r := 0; r < b.Size; r++ {
		row := make([]Coord, b.Size)
		for c := range row {
			row[c] = Coord{r, c}
		}
		lines = append(lines, row)
	}
	for c := 0; c < b.Size; c++ {
		col := make([]Coord, b.Size)
		for r := range col {
			col[r] = Coord{r, c}
		}
		lines = append(lines, col)
	}
	return lines
}
