// meta/meta.go
package meta

// BoardSizes are the supported grid sizes.
var BoardSizes = []int{10, 15, 20}

const DefaultSize = 10

// Weapon (line length) threshold bounds.
const (
	MinWeaponThreshold     = 3
	MaxWeaponThreshold     = 10
	DefaultWeaponThreshold = 4
)

// DefaultAITurnDelayMs paces scripted turns when a human is watching.
const DefaultAITurnDelayMs = 500

// MAX_TURNS caps a local match. Every build fills a cell, so real games end
// long before this; it only guards against drivers that keep passing.
const MAX_TURNS = 4000

// Scripted agent defaults.
const (
	AgentPoolSize        = 3
	AgentMineProbability = 0.2
	// The agent only mixes in mines when it has more candidates than this.
	AgentMineMinCandidates = 5
)

// MaxIllegalAttempts is how many illegal moves a controller may submit in a
// row before the engine plays the first legal build for it.
const MaxIllegalAttempts = 3

// UpdateBufferSize is the per-match update feed capacity in the game master.
const UpdateBufferSize = 64

const (
	DefaultArchivePath    = "data/matches.db"
	DefaultExperimentsDir = "experiments/results"
)
