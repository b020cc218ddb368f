package core

import "github.com/google/uuid"

// RunConfig holds the exploration schedule and persistence cadence of a training session
type RunConfig struct {
	Epsilon      float64
	MinEpsilon   float64
	EpsilonDecay float64
	SaveInterval int
}

func DefaultRunConfig() *RunConfig {
	return &RunConfig{
		Epsilon:      0.2,
		MinEpsilon:   0.05,
		EpsilonDecay: 0.99995,
		SaveInterval: 500,
	}
}

// Stats are the running counters persisted next to the value table
type Stats struct {
	Games   int     `json:"games" db:"games"`
	Wins    int     `json:"wins" db:"wins"`
	Draws   int     `json:"draws" db:"draws"`
	Epsilon float64 `json:"epsilon,omitempty" db:"epsilon"`
}

func (s Stats) Losses() int {
	return s.Games - s.Wins - s.Draws
}

type Outcome int

const (
	// Aborted episodes ended because a side had no move; they are not counted as games
	Aborted Outcome = iota
	Win
	Loss
	Draw
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Loss:
		return "loss"
	case Draw:
		return "draw"
	}
	return "aborted"
}

type EpisodeResult struct {
	Outcome Outcome
	// Moves counts the marks placed by both sides
	Moves int
}

type EpisodeContext struct {
	Session uuid.UUID
	Episode int
	Result  EpisodeResult
	Board   *Board
	Epsilon float64

	Trace *Trace
}

// Analyzer observes every finished episode
type Analyzer interface {
	Analyze(*EpisodeContext)
	DataSet() DataSet
	Reset()
}

type DataSet interface{}

// Comparator consumes the datasets of a finished session
type Comparator interface {
	Compare(session string, datasets map[string]DataSet) error
}

type Status int

const (
	StatusIdle Status = iota
	StatusTraining
	StatusPaused
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusTraining:
		return "Training vs computer..."
	case StatusPaused:
		return "Paused. Value table and stats saved."
	case StatusFailed:
		return "Stopped on error."
	}
	return "Press start to train vs computer."
}

// Display renders training progress. Implemented by the front end.
type Display interface {
	OnMove(cell int, mark Mark)
	OnStatsUpdated(Stats)
	OnStatusChanged(Status)
}

// Scheduler re-invokes the training loop at a cadence of its choosing
type Scheduler interface {
	Schedule(func())
}

// Store is the durable home of the value table and the stats
type Store interface {
	// LoadTable returns an empty table when nothing usable is stored
	LoadTable() map[Key]float64
	SaveTable(map[Key]float64) error
	// LoadStats returns def when nothing usable is stored
	LoadStats(def Stats) Stats
	SaveStats(Stats) error
}

type NopDisplay struct{}

var _ Display = NopDisplay{}

func (NopDisplay) OnMove(int, Mark)       {}
func (NopDisplay) OnStatsUpdated(Stats)   {}
func (NopDisplay) OnStatusChanged(Status) {}
