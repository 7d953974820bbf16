package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"miners/game"
)

// AgentConfig describes one scripted agent taking part in an experiment.
type AgentConfig struct {
	ID              int
	PoolSize        int
	MineProbability float64
}

type GameRecord struct {
	ID     int
	Agents []int // AgentConfig.ID per seat, in seat order
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates root/name/<timestamp> to hold one experiment's CSV files.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string { return w.baseDir }

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "pool_size", "mine_probability"}
	return w.write("agent_configs.csv", header, len(configs), func(i int) []string {
		config := configs[i]
		return []string{
			strconv.Itoa(config.ID),
			strconv.Itoa(config.PoolSize),
			strconv.FormatFloat(config.MineProbability, 'f', -1, 64),
		}
	})
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agents", "starting_player", "winner", "start_time", "end_time", "duration", "total_moves"}
	for _, id := range game.AllPlayers {
		header = append(header, fmt.Sprintf("score%d", id))
	}
	return w.write("game_records.csv", header, len(records), func(i int) []string {
		record := records[i]
		row := []string{
			strconv.Itoa(record.ID),
			fmt.Sprint(record.Agents),
			strconv.Itoa(record.StartingPlayer),
			record.Winner,
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		}
		for _, id := range game.AllPlayers {
			score, seated := record.Scores[id]
			if !seated {
				row = append(row, "")
				continue
			}
			row = append(row, strconv.Itoa(score))
		}
		return row
	})
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "command", "evaluation", "duration", "attempts", "forced"}
	return w.write("move_records.csv", header, len(records), func(i int) []string {
		record := records[i]
		return []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Player),
			record.Command,
			strconv.FormatFloat(record.Evaluation, 'f', 4, 64),
			record.Duration.String(),
			strconv.Itoa(record.Attempts),
			strconv.FormatBool(record.Forced),
		}
	})
}

func (w *Writer) write(name string, header []string, n int, row func(i int) []string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	for i := 0; i < n; i++ {
		err = writer.Write(row(i))
		if err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", name, i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
