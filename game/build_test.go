package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanBuild(t *testing.T) {
	t.Run("orthogonal neighbour of an own station qualifies", func(t *testing.T) {
		b := NewBoard(10)
		place(t, b, StationOf(1), Coord{5, 5})

		for _, pos := range []Coord{{4, 5}, {6, 5}, {5, 4}, {5, 6}} {
			require.True(t, CanBuild(b, 1, pos.Row, pos.Col), "Cell %s should be buildable", pos)
		}
	})

	t.Run("diagonal neighbour does not qualify", func(t *testing.T) {
		b := NewBoard(10)
		place(t, b, StationOf(1), Coord{5, 5})

		for _, pos := range []Coord{{4, 4}, {4, 6}, {6, 4}, {6, 6}} {
			require.False(t, CanBuild(b, 1, pos.Row, pos.Col), "Cell %s should not be buildable", pos)
		}
	})

	t.Run("mines and foreign stations do not enable building", func(t *testing.T) {
		b := NewBoard(10)
		place(t, b, MineOf(1), Coord{5, 5})
		place(t, b, StationOf(2), Coord{2, 2})

		require.False(t, CanBuild(b, 1, 4, 5))
		require.False(t, CanBuild(b, 1, 2, 3))
		require.True(t, CanBuild(b, 2, 2, 3))
	})

	t.Run("occupied cells are never buildable", func(t *testing.T) {
		b := NewBoard(10)
		place(t, b, StationOf(1), Coord{5, 5})
		for i, cell := range []Cell{StationOf(1), MineOf(1), StationOf(2), DebrisCell, InactiveCell} {
			place(t, b, cell, Coord{4, 5})
			for _, id := range AllPlayers {
				require.False(t, CanBuild(b, id, 4, 5), "case %d player %d", i, id)
			}
		}
	})

	t.Run("board edges and out of range", func(t *testing.T) {
		b := NewBoard(10)
		place(t, b, StationOf(3), Coord{0, 0})

		require.True(t, CanBuild(b, 3, 0, 1))
		require.True(t, CanBuild(b, 3, 1, 0))
		require.False(t, CanBuild(b, 3, -1, 0))
		require.False(t, CanBuild(b, 3, 0, -1))
		require.False(t, CanBuild(b, 3, 10, 10))
	})

	t.Run("exhaustive: no build without an adjacent own station", func(t *testing.T) {
		b := NewBoard(10)
		place(t, b, StationOf(1), Coord{1, 1}, Coord{4, 7})
		place(t, b, StationOf(2), Coord{8, 8})
		place(t, b, MineOf(1), Coord{5, 5})

		for _, id := range AllPlayers {
			for r := 0; r < b.Size; r++ {
				for c := 0; c < b.Size; c++ {
					adjacent := false
					for _, n := range b.Neighbors(r, c) {
						if b.at(n.Row, n.Col).IsStationOf(id) {
							adjacent = true
						}
					}
					want := adjacent && b.at(r, c).IsEmpty()
					require.Equal(t, want, CanBuild(b, id, r, c), "player %d at (%d,%d)", id, r, c)
				}
			}
		}
	})
}

func TestLegalBuildCells(t *testing.T) {
	b := NewBoard(10)
	place(t, b, StationOf(1), Coord{0, 0}, Coord{0, 1})
	place(t, b, DebrisCell, Coord{1, 0})

	require.Equal(t, []Coord{{0, 2}, {1, 1}}, LegalBuildCells(b, 1))
	require.True(t, HasAnyLegalBuild(b, 1))
	require.Empty(t, LegalBuildCells(b, 2))
	require.False(t, HasAnyLegalBuild(b, 2))
}
