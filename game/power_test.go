package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLinePower(t *testing.T) {
	t.Run("no stations means no power", func(t *testing.T) {
		b := NewBoard(10)
		place(t, b, MineOf(1), Coord{0, 0}, Coord{0, 1}, Coord{0, 2})
		require.Equal(t, 0, LinePower(b, 1))
	})

	t.Run("longest row run", func(t *testing.T) {
		b := NewBoard(10)
		place(t, b, StationOf(1), Coord{2, 0}, Coord{2, 1}, Coord{2, 2}, Coord{2, 4})
		require.Equal(t, 3, LinePower(b, 1))
	})

	t.Run("longest column run", func(t *testing.T) {
		b := NewBoard(10)
		place(t, b, StationOf(2), Coord{5, 9}, Coord{6, 9}, Coord{7, 9}, Coord{8, 9}, Coord{9, 9})
		place(t, b, StationOf(2), Coord{0, 0}, Coord{0, 1})
		require.Equal(t, 5, LinePower(b, 2))
	})

	t.Run("other content breaks the run", func(t *testing.T) {
		b := NewBoard(10)
		place(t, b, StationOf(1), Coord{0, 0}, Coord{0, 1}, Coord{0, 3}, Coord{0, 4})
		place(t, b, StationOf(2), Coord{0, 2})
		require.Equal(t, 2, LinePower(b, 1))

		place(t, b, MineOf(1), Coord{0, 2})
		require.Equal(t, 2, LinePower(b, 1), "Own mines do not extend a line")
	})

	t.Run("diagonals do not count", func(t *testing.T) {
		b := NewBoard(10)
		place(t, b, StationOf(1), Coord{0, 0}, Coord{1, 1}, Coord{2, 2}, Coord{3, 3})
		require.Equal(t, 1, LinePower(b, 1))
	})

	t.Run("transposing the board keeps the power", func(t *testing.T) {
		b := NewBoard(10)
		place(t, b, StationOf(3), Coord{4, 2}, Coord{4, 3}, Coord{4, 4}, Coord{7, 1}, Coord{8, 1})
		transposed := NewBoard(10)
		for r := 0; r < 10; r++ {
			for c := 0; c < 10; c++ {
				place(t, transposed, b.at(r, c), Coord{c, r})
			}
		}
		require.Equal(t, LinePower(b, 3), LinePower(transposed, 3))
	})
}

func TestWeaponCells(t *testing.T) {
	b := NewBoard(10)
	place(t, b, StationOf(1), Coord{0, 0}, Coord{0, 1}, Coord{0, 2})
	place(t, b, StationOf(1), Coord{1, 0}, Coord{2, 0})
	place(t, b, StationOf(1), Coord{5, 5})

	cells := WeaponCells(b, 1, 3)
	require.ElementsMatch(t, []Coord{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {2, 0}}, cells)
	require.Empty(t, WeaponCells(b, 1, 4))
}
