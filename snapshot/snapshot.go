package snapshot

import (
	"bufio"
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/klauspost/compress/zstd"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"miners/game"
)

//go:embed record.schema.json
var recordSchemaJSON string

var recordSchema = jsonschema.MustCompileString("record.schema.json", recordSchemaJSON)

// Record is the persisted shape of a match.
type Record struct {
	Size            int                         `json:"size"`
	Grid            []string                    `json:"grid"`
	Roles           map[game.PlayerID]game.Role `json:"roles"`
	WeaponThreshold int                         `json:"weapon_threshold"`
	AllowManualSkip bool                        `json:"allow_manual_skip"`
	AITurnDelayMs   int                         `json:"ai_turn_delay_ms"`
	ActivePlayer    game.PlayerID               `json:"active_player"`
	Eliminated      map[game.PlayerID]bool      `json:"eliminated"`
	Terminal        bool                        `json:"terminal"`
	Combat          game.CombatMode             `json:"combat,omitempty"`
	EarlyFinish     bool                        `json:"early_finish,omitempty"`
	BattleLog       []string                    `json:"battle_log,omitempty"`
}

func FromState(gs *game.GameState) Record {
	rec := Record{
		Size:            gs.Board.Size,
		Grid:            gs.Board.Rows(),
		Roles:           make(map[game.PlayerID]game.Role, game.MaxPlayers),
		WeaponThreshold: gs.Threshold,
		AllowManualSkip: gs.AllowManualSkip,
		AITurnDelayMs:   gs.AITurnDelayMs,
		ActivePlayer:    gs.Active,
		Eliminated:      make(map[game.PlayerID]bool, game.MaxPlayers),
		Terminal:        gs.Terminal,
		Combat:          gs.Combat,
		EarlyFinish:     gs.EarlyFinish,
		BattleLog:       append([]string(nil), gs.Log...),
	}
	for _, id := range game.AllPlayers {
		rec.Roles[id] = gs.Players[id].Role
		rec.Eliminated[id] = gs.Players[id].Eliminated
	}
	return rec
}

// State rebuilds a match from the record. Slots missing from roles are
// unseated and unseated slots are always eliminated.
func (rec Record) State() (*game.GameState, error) {
	if len(rec.Grid) != rec.Size {
		return nil, fmt.Errorf("%w: grid has %d rows, want %d", game.ErrInvalidConfig, len(rec.Grid), rec.Size)
	}
	for i, row := range rec.Grid {
		if n := utf8.RuneCountInString(row); n != rec.Size {
			return nil, fmt.Errorf("%w: grid row %d has %d cells, want %d", game.ErrInvalidConfig, i, n, rec.Size)
		}
	}
	board, err := game.ParseRows(rec.Grid)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", game.ErrInvalidConfig, err)
	}

	combat := rec.Combat
	switch combat {
	case "":
		combat = game.CombatPrecision
	case game.CombatPrecision, game.CombatBeam:
	default:
		return nil, fmt.Errorf("%w: unknown combat mode %q", game.ErrInvalidConfig, combat)
	}
	gs := &game.GameState{
		Board:           board,
		Active:          rec.ActivePlayer,
		Threshold:       rec.WeaponThreshold,
		Terminal:        rec.Terminal,
		AllowManualSkip: rec.AllowManualSkip,
		AITurnDelayMs:   rec.AITurnDelayMs,
		Combat:          combat,
		EarlyFinish:     rec.EarlyFinish,
		Log:             append([]string(nil), rec.BattleLog...),
	}
	for _, id := range game.AllPlayers {
		p := game.NewPlayer(id, rec.Roles[id], rec.Size)
		p.Eliminated = p.Eliminated || rec.Eliminated[id]
		gs.Players[id] = p
	}
	if err := gs.Validate(); err != nil {
		return nil, err
	}
	return gs, nil
}

func Encode(gs *game.GameState) ([]byte, error) {
	return json.MarshalIndent(FromState(gs), "", "  ")
}

// Decode validates data against the record schema before rebuilding the match.
func Decode(data []byte) (*game.GameState, error) {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	if err := recordSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", game.ErrInvalidConfig, err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return rec.State()
}

func Write(w io.Writer, gs *game.GameState) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	data, err := Encode(gs)
	if err != nil {
		enc.Close()
		return err
	}
	if _, err := enc.Write(data); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

func Read(r io.Reader) (*game.GameState, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	data, err := io.ReadAll(bufio.NewReader(dec))
	if err != nil {
		return nil, fmt.Errorf("zstd decode: %w", err)
	}
	return Decode(data)
}

// WriteFile stores a zstd compressed record at path, creating parent directories.
func WriteFile(path string, gs *game.GameState) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if err := Write(f, gs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func ReadFile(path string) (*game.GameState, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}
