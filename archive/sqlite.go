package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"miners/game"
	"miners/snapshot"
)

var ErrNotFound = errors.New("match not found")

// Store keeps finished (or abandoned) matches in a SQLite file: the full
// record, the per-player tally and the battle log.
type Store struct {
	db *sql.DB
}

type Summary struct {
	ID         string
	RecordedAt time.Time
	Size       int
	Combat     game.CombatMode
	Terminal   bool
	Winner     string // Empty on a tie or an unfinished match
	Moves      int
	Scores     map[game.PlayerID]int
}

func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS matches (
			id TEXT PRIMARY KEY,
			recorded_at TEXT NOT NULL,
			size INTEGER NOT NULL,
			combat TEXT NOT NULL,
			terminal INTEGER NOT NULL,
			winner TEXT NOT NULL,
			moves INTEGER NOT NULL,
			record TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS players (
			match_id TEXT NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
			player INTEGER NOT NULL,
			role TEXT NOT NULL,
			mines INTEGER NOT NULL,
			eliminated INTEGER NOT NULL,
			PRIMARY KEY (match_id, player)
		);`,
		`CREATE TABLE IF NOT EXISTS battle_log (
			match_id TEXT NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			command TEXT NOT NULL,
			PRIMARY KEY (match_id, seq)
		);`,
		`CREATE INDEX IF NOT EXISTS matches_recorded_at ON matches(recorded_at);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// RecordMatch stores gs under id, replacing any earlier record with that id.
func (s *Store) RecordMatch(ctx context.Context, id string, gs *game.GameState) error {
	record, err := snapshot.Encode(gs)
	if err != nil {
		return err
	}
	var winner string
	if w, ok := gs.Winner(); ok {
		winner = w.String()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM matches WHERE id=?`, id); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO matches(id,recorded_at,size,combat,terminal,winner,moves,record) VALUES(?,?,?,?,?,?,?,?)`,
		id, time.Now().UTC().Format(time.RFC3339Nano), gs.Board.Size, string(gs.Combat), gs.Terminal, winner, len(gs.Log), string(record))
	if err != nil {
		return fmt.Errorf("insert match %s: %w", id, err)
	}

	scores := gs.Scores()
	for _, p := range game.AllPlayers {
		player := gs.Players[p]
		_, err := tx.ExecContext(ctx,
			`INSERT INTO players(match_id,player,role,mines,eliminated) VALUES(?,?,?,?,?)`,
			id, int(p), player.Role.String(), scores[p], player.Eliminated)
		if err != nil {
			return fmt.Errorf("insert player %d of %s: %w", p, id, err)
		}
	}
	for seq, command := range gs.Log {
		_, err := tx.ExecContext(ctx, `INSERT INTO battle_log(match_id,seq,command) VALUES(?,?,?)`, id, seq, command)
		if err != nil {
			return fmt.Errorf("insert log entry %d of %s: %w", seq, id, err)
		}
	}
	return tx.Commit()
}

// Match restores a recorded match.
func (s *Store) Match(ctx context.Context, id string) (*game.GameState, error) {
	var record string
	err := s.db.QueryRowContext(ctx, `SELECT record FROM matches WHERE id=?`, id).Scan(&record)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return snapshot.Decode([]byte(record))
}

// BattleLog returns the commands of a recorded match in play order.
func (s *Store) BattleLog(ctx context.Context, id string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT command FROM battle_log WHERE match_id=? ORDER BY seq`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var log []string
	for rows.Next() {
		var command string
		if err := rows.Scan(&command); err != nil {
			return nil, err
		}
		log = append(log, command)
	}
	return log, rows.Err()
}

// List returns up to limit summaries, most recent first.
func (s *Store) List(ctx context.Context, limit int) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,recorded_at,size,combat,terminal,winner,moves FROM matches ORDER BY recorded_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	var summaries []Summary
	for rows.Next() {
		var (
			sum        Summary
			recordedAt string
			combat     string
		)
		if err := rows.Scan(&sum.ID, &recordedAt, &sum.Size, &combat, &sum.Terminal, &sum.Winner, &sum.Moves); err != nil {
			rows.Close()
			return nil, err
		}
		sum.Combat = game.CombatMode(combat)
		if sum.RecordedAt, err = time.Parse(time.RFC3339Nano, recordedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("match %s recorded_at: %w", sum.ID, err)
		}
		summaries = append(summaries, sum)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range summaries {
		if summaries[i].Scores, err = s.scores(ctx, summaries[i].ID); err != nil {
			return nil, err
		}
	}
	return summaries, nil
}

// scores returns the mine count of every seated player of a match.
func (s *Store) scores(ctx context.Context, id string) (map[game.PlayerID]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT player,mines FROM players WHERE match_id=? AND role<>?`, id, game.RoleInactive.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := make(map[game.PlayerID]int)
	for rows.Next() {
		var player, mines int
		if err := rows.Scan(&player, &mines); err != nil {
			return nil, err
		}
		scores[game.PlayerID(player)] = mines
	}
	return scores, rows.Err()
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM matches WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
