package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var twoPlayers = map[PlayerID]Role{1: RoleHuman, 2: RoleScripted}

func newTestGame(t *testing.T, roles map[PlayerID]Role) *GameState {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Roles = roles
	gs, err := NewGame(cfg)
	require.NoError(t, err)
	return gs
}

func place(t *testing.T, b *Board, cell Cell, coords ...Coord) {
	t.Helper()
	for _, pos := range coords {
		require.NoError(t, b.Set(pos.Row, pos.Col, cell))
	}
}

func fill(b *Board, cell Cell) {
	for i := range b.Cells {
		b.Cells[i] = cell
	}
}

// changedCells lists the positions where two boards of equal size differ.
func changedCells(before, after *Board) []Coord {
	var diff []Coord
	for i := range before.Cells {
		if before.Cells[i] != after.Cells[i] {
			diff = append(diff, Coord{i / before.Size, i % before.Size})
		}
	}
	return diff
}
