package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoardGetSet(t *testing.T) {
	t.Run("writing a cell changes only that cell", func(t *testing.T) {
		b := NewBoard(10)
		before := b.Copy()

		require.NoError(t, b.Set(3, 4, MineOf(2)))

		got, err := b.Get(3, 4)
		require.NoError(t, err)
		require.Equal(t, MineOf(2), got)
		require.Equal(t, []Coord{{3, 4}}, changedCells(before, b))
	})

	t.Run("out of range coordinates fail", func(t *testing.T) {
		b := NewBoard(10)
		for _, pos := range []Coord{{-1, 0}, {0, -1}, {10, 0}, {0, 10}} {
			_, err := b.Get(pos.Row, pos.Col)
			require.ErrorIs(t, err, ErrOutOfRange)
			require.ErrorIs(t, b.Set(pos.Row, pos.Col, StationOf(1)), ErrOutOfRange)
		}
		require.Equal(t, 100, b.Count(EmptyCell), "Failed writes should not touch the board")
	})
}

func TestBoardNeighbors(t *testing.T) {
	b := NewBoard(10)
	require.Len(t, b.Neighbors(0, 0), 2, "Corner has two neighbours")
	require.Len(t, b.Neighbors(0, 5), 3, "Edge has three neighbours")
	require.Len(t, b.Neighbors(5, 5), 4, "Interior has four neighbours")

	place(t, b, DebrisCell, Coord{4, 5})
	require.Equal(t, 3, b.OpenNeighbors(5, 5))
}

func TestBoardRows(t *testing.T) {
	b := NewBoard(10)
	place(t, b, StationOf(1), Coord{1, 1})
	place(t, b, MineOf(4), Coord{2, 3})
	place(t, b, DebrisCell, Coord{9, 9})
	place(t, b, InactiveCell, Coord{0, 9})

	rows := b.Rows()
	require.Equal(t, ".↑........", rows[1])
	require.Equal(t, "...◇......", rows[2])

	parsed, err := ParseRows(rows)
	require.NoError(t, err)
	require.Equal(t, b, parsed)

	_, err = ParseRows([]string{"..", "."})
	require.Error(t, err, "Ragged rows should be rejected")
	_, err = ParseRows([]string{"..", ".?"})
	require.Error(t, err, "Unknown symbols should be rejected")
}

func TestCellSymbolsAreUnique(t *testing.T) {
	cells := []Cell{EmptyCell, DebrisCell, InactiveCell}
	for _, id := range AllPlayers {
		cells = append(cells, StationOf(id), MineOf(id))
	}
	seen := map[rune]Cell{}
	for _, cell := range cells {
		sym := cell.Symbol()
		_, dup := seen[sym]
		require.False(t, dup, "Symbol %q is shared", sym)
		seen[sym] = cell

		parsed, err := ParseCell(sym)
		require.NoError(t, err)
		require.Equal(t, cell, parsed)
	}
}
