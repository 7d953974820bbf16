package metrics

import (
	"sync/atomic"
	"time"

	"miners/game"
)

type TurnMetric struct {
	Duration time.Duration
	Attempts int  // Controller calls made this turn
	Forced   bool // Whether the engine had to pick the move
}

type MoveMetric struct {
	Step       int
	Player     int // Player ID
	Command    string
	Evaluation float64 // Mover's position after the move, see game.Evaluate
	TurnMetric
}

type GameMetric struct {
	StartingPlayer int    // Player ID
	Winner         string // Empty on a tie or when the turn cap was hit
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	Scores         map[game.PlayerID]int
}

type Collector interface {
	Start()
	AddAttempt()
	Forced()
	Complete() TurnMetric
}

type collector struct {
	startTime time.Time
	attempts  atomic.Int32
	forced    atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
}

func (m *collector) AddAttempt() {
	m.attempts.Add(1)
}

func (m *collector) Forced() {
	m.forced.Store(true)
}

func (m *collector) Complete() TurnMetric {
	return TurnMetric{
		Duration: time.Since(m.startTime),
		Attempts: int(m.attempts.Load()),
		Forced:   m.forced.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()               {}
func (m *dummyCollector) AddAttempt()          {}
func (m *dummyCollector) Forced()              {}
func (m *dummyCollector) Complete() TurnMetric { return TurnMetric{} }
