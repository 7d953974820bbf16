package agent

import (
	"cmp"
	"math"
	"slices"
	"time"

	"golang.org/x/exp/rand"

	"miners/game"
	"miners/meta"
)

type Agent interface {
	// FindMove returns the move id should play, or false when id has nothing to do
	FindMove(gs *game.GameState, id game.PlayerID) (game.Move, bool)
}

type Option func(h *Heuristic)

func WithSeed(seed uint64) Option {
	return func(h *Heuristic) {
		h.rng = rand.New(rand.NewSource(seed))
	}
}

func WithPoolSize(size int) Option {
	return func(h *Heuristic) {
		if size > 0 {
			h.poolSize = size
		}
	}
}

func WithMineProbability(p float64) Option {
	return func(h *Heuristic) {
		if p >= 0 && p <= 1 {
			h.mineProbability = p
		}
	}
}

// Heuristic is the scripted opponent. It is not safe for concurrent use since
// it owns its random source.
type Heuristic struct {
	rng             *rand.Rand
	poolSize        int
	mineProbability float64
	minCandidates   int
}

func NewHeuristic(options ...Option) *Heuristic {
	h := &Heuristic{ // Default values
		rng:             rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		poolSize:        meta.AgentPoolSize,
		mineProbability: meta.AgentMineProbability,
		minCandidates:   meta.AgentMineMinCandidates,
	}
	for _, option := range options {
		option(h)
	}
	return h
}

type candidate struct {
	pos     game.Coord
	freedom int
	dist    float64
}

// FindMove makes the most destructive strike it can when charged, otherwise builds on
// one of the most open cells closest to the centre of the board.
func (h *Heuristic) FindMove(gs *game.GameState, id game.PlayerID) (game.Move, bool) {
	if gs.Terminal || gs.Player(id) == nil || !gs.Player(id).InPlay() {
		return game.Move{}, false
	}
	if gs.CanStrike(id) {
		if targets := h.strikeTargets(gs, id); len(targets) > 0 {
			return game.StrikeAt(targets[h.rng.Intn(len(targets))]), true
		}
	}

	cells := gs.LegalBuildCells(id)
	if len(cells) == 0 {
		return game.Move{}, false
	}
	center := float64(gs.Board.Size-1) / 2
	candidates := make([]candidate, len(cells))
	for i, pos := range cells {
		candidates[i] = candidate{
			pos:     pos,
			freedom: gs.Board.OpenNeighbors(pos.Row, pos.Col),
			dist:    math.Hypot(float64(pos.Row)-center, float64(pos.Col)-center),
		}
	}
	slices.SortStableFunc(candidates, func(a, b candidate) int {
		if a.freedom != b.freedom {
			return b.freedom - a.freedom
		}
		return cmp.Compare(a.dist, b.dist)
	})

	pool := candidates[:min(h.poolSize, len(candidates))]
	choice := pool[h.rng.Intn(len(pool))]

	build := game.BuildStation
	if choice.freedom == 0 {
		// a boxed-in cell only extends the line while there is charge to gain
		if gs.CanStrike(id) {
			build = game.BuildMine
		}
	} else if len(candidates) > h.minCandidates && h.rng.Float64() < h.mineProbability {
		build = game.BuildMine
	}
	return build(choice.pos.Row, choice.pos.Col), true
}

// strikeTargets lists the strikes on opposing stations that destroy the most
// cells under the match's combat mode. Beam strikes are tried in both
// orientations so the pick also chooses the orientation.
func (h *Heuristic) strikeTargets(gs *game.GameState, id game.PlayerID) []game.Target {
	orientations := []bool{false}
	if gs.Combat == game.CombatBeam {
		orientations = []bool{false, true}
	}
	var targets []game.Target
	best := 0
	for r := 0; r < gs.Board.Size; r++ {
		for c := 0; c < gs.Board.Size; c++ {
			cell, _ := gs.Board.Get(r, c)
			if cell.Kind != game.Station || cell.Owner == id {
				continue
			}
			for _, vertical := range orientations {
				t := game.Target{Row: r, Col: c, Vertical: vertical}
				outcome, err := gs.Copy().Strike(id, t)
				if err != nil || !outcome.Success() {
					continue
				}
				switch n := len(outcome.Destroyed); {
				case n > best:
					best = n
					targets = append(targets[:0], t)
				case n == best:
					targets = append(targets, t)
				}
			}
		}
	}
	return targets
}
