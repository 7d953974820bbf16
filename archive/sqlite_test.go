package archive

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"miners/game"
)

func openStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db", "matches.db")
	store, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, path
}

func finishedGame(t *testing.T) *game.GameState {
	t.Helper()
	cfg := game.DefaultConfig()
	cfg.Roles = map[game.PlayerID]game.Role{1: game.RoleHuman, 2: game.RoleScripted}
	gs, err := game.NewGame(cfg)
	require.NoError(t, err)
	for _, m := range []game.Move{game.BuildMine(1, 2), game.BuildMine(8, 7), game.BuildMine(0, 1)} {
		ok, err := gs.Play(m)
		require.NoError(t, err)
		require.True(t, ok, m)
	}
	return gs
}

func TestStore(t *testing.T) {
	ctx := context.Background()

	t.Run("record and restore", func(t *testing.T) {
		store, _ := openStore(t)
		gs := finishedGame(t)
		require.NoError(t, store.RecordMatch(ctx, "m1", gs))

		restored, err := store.Match(ctx, "m1")
		require.NoError(t, err)
		require.Equal(t, gs.Hash(), restored.Hash())
		require.Equal(t, gs.Scores(), restored.Scores())

		log, err := store.BattleLog(ctx, "m1")
		require.NoError(t, err)
		require.Equal(t, []string{"M 2 1", "M 7 8", "M 1 0"}, log)
	})

	t.Run("summaries", func(t *testing.T) {
		store, _ := openStore(t)
		gs := finishedGame(t)
		require.NoError(t, store.RecordMatch(ctx, "m1", gs))

		summaries, err := store.List(ctx, 10)
		require.NoError(t, err)
		require.Len(t, summaries, 1)
		sum := summaries[0]
		require.Equal(t, "m1", sum.ID)
		require.Equal(t, 10, sum.Size)
		require.Equal(t, game.CombatPrecision, sum.Combat)
		require.False(t, sum.Terminal)
		require.Empty(t, sum.Winner)
		require.Equal(t, 3, sum.Moves)
		require.Equal(t, map[game.PlayerID]int{1: 2, 2: 1}, sum.Scores)
		require.False(t, sum.RecordedAt.IsZero())
	})

	t.Run("re-recording replaces the match", func(t *testing.T) {
		store, path := openStore(t)
		gs := finishedGame(t)
		require.NoError(t, store.RecordMatch(ctx, "m1", gs))

		ok, err := gs.Play(game.BuildStation(7, 8))
		require.NoError(t, err)
		require.True(t, ok)
		require.NoError(t, store.RecordMatch(ctx, "m1", gs))

		log, err := store.BattleLog(ctx, "m1")
		require.NoError(t, err)
		require.Len(t, log, 4)

		db, err := sql.Open("sqlite", path)
		require.NoError(t, err)
		defer db.Close()
		var players int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM players WHERE match_id='m1'`).Scan(&players))
		require.Equal(t, 4, players)
	})

	t.Run("winner of a finished match", func(t *testing.T) {
		store, _ := openStore(t)
		gs := finishedGame(t)
		gs.Terminal = true
		require.NoError(t, store.RecordMatch(ctx, "done", gs))
		summaries, err := store.List(ctx, 1)
		require.NoError(t, err)
		require.Equal(t, "Player1", summaries[0].Winner)
		require.True(t, summaries[0].Terminal)
	})

	t.Run("missing and deleted matches", func(t *testing.T) {
		store, _ := openStore(t)
		_, err := store.Match(ctx, "nope")
		require.ErrorIs(t, err, ErrNotFound)
		require.ErrorIs(t, store.Delete(ctx, "nope"), ErrNotFound)

		require.NoError(t, store.RecordMatch(ctx, "m1", finishedGame(t)))
		require.NoError(t, store.Delete(ctx, "m1"))
		_, err = store.Match(ctx, "m1")
		require.ErrorIs(t, err, ErrNotFound)
		log, err := store.BattleLog(ctx, "m1")
		require.NoError(t, err)
		require.Empty(t, log)
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := Open("")
		require.Error(t, err)
	})
}
