package metrics

import (
	"sync/atomic"
	"time"

	"tictactoe/game"
)

type SearchMetric struct {
	Algorithm string
	Depth     int // Root depth, i.e. empty cells when the search started
	Nodes     int // Recursive calls, root included
	Terminals int // Cutoff evaluations
	Duration  time.Duration
}

type MoveMetric struct {
	Step     int
	Player   int // Player ID
	Position game.Position
	Score    int
	Scripted bool // Placed from the player's scripted sequence, no search ran
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int // Player ID
	Winner         int // Player ID, or game.Draw
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(algorithm string, depth int)
	AddNode()
	AddTerminal()
	Complete() SearchMetric
}

type collector struct {
	algorithm string
	depth     int
	startTime time.Time
	nodes     atomic.Int64
	terminals atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(algorithm string, depth int) {
	m.startTime = time.Now()
	m.algorithm = algorithm
	m.depth = depth
	m.nodes.Store(0)
	m.terminals.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddTerminal() {
	m.terminals.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Algorithm: m.algorithm,
		Depth:     m.depth,
		Nodes:     int(m.nodes.Load()),
		Terminals: int(m.terminals.Load()),
		Duration:  time.Since(m.startTime),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(algorithm string, depth int) {}
func (m *dummyCollector) AddNode()                          {}
func (m *dummyCollector) AddTerminal()                      {}
func (m *dummyCollector) Complete() SearchMetric            { return SearchMetric{} }
