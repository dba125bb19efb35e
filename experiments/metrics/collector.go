package metrics

import (
	"connect4/game"
	"time"
)

type SearchMetric struct {
	Duration    time.Duration
	Episodes    int
	Rollouts    int // Simulations that ended in a random playout
	Terminals   int // Simulations that ended on a known terminal node
	RootVisits  int
	IsTreeReset bool
}

type MoveMetric struct {
	Step   int
	Player game.Player
	Move   game.Move
	SearchMetric
}

type GameMetric struct {
	StartingPlayer game.Player
	Result         game.Result
	Forfeit        bool // The loser played an invalid move
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start()
	SetTreeReset(value bool)
	AddRollout()
	AddTerminal()
	AddEpisode()
	Complete(rootVisits int) SearchMetric
}

// collector is owned by a single searcher and is not safe for concurrent use.
type collector struct {
	startTime   time.Time
	episodes    int
	rollouts    int
	terminals   int
	isTreeReset bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) SetTreeReset(value bool) {
	m.isTreeReset = value
}

func (m *collector) Start() {
	m.startTime = time.Now()
	m.episodes = 0
	m.rollouts = 0
	m.terminals = 0
}

func (m *collector) AddRollout() {
	m.rollouts++
}

func (m *collector) AddTerminal() {
	m.terminals++
}

func (m *collector) AddEpisode() {
	m.episodes++
}

func (m *collector) Complete(rootVisits int) SearchMetric {
	return SearchMetric{
		Duration:    time.Since(m.startTime),
		Episodes:    m.episodes,
		Rollouts:    m.rollouts,
		Terminals:   m.terminals,
		RootVisits:  rootVisits,
		IsTreeReset: m.isTreeReset,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                    {}
func (m *dummyCollector) SetTreeReset(value bool)   {}
func (m *dummyCollector) AddRollout()               {}
func (m *dummyCollector) AddTerminal()              {}
func (m *dummyCollector) AddEpisode()               {}
func (m *dummyCollector) Complete(int) SearchMetric { return SearchMetric{} }
