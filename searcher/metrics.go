package searcher

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Strategy   string
	Duration   time.Duration
	Nodes      int64
	Depth      int // deepest fully completed iteration
	Goroutines int
	Aborted    bool
}

type Collector interface {
	Start(strategy Strategy, goroutines int)
	AddNode()
	CompleteDepth(depth int)
	Abort()
	Complete() SearchMetric
}

type collector struct {
	strategy   string
	goroutines int
	startTime  time.Time
	nodes      atomic.Int64
	depth      atomic.Int32
	aborted    atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(strategy Strategy, goroutines int) {
	m.startTime = time.Now()
	m.strategy = strategy.String()
	m.goroutines = goroutines
	m.nodes.Store(0)
	m.depth.Store(0)
	m.aborted.Store(false)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) CompleteDepth(depth int) {
	m.depth.Store(int32(depth))
}

func (m *collector) Abort() {
	m.aborted.Store(true)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Strategy:   m.strategy,
		Duration:   time.Since(m.startTime),
		Nodes:      m.nodes.Load(),
		Depth:      int(m.depth.Load()),
		Goroutines: m.goroutines,
		Aborted:    m.aborted.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(strategy Strategy, goroutines int) {}
func (m *dummyCollector) AddNode()                                {}
func (m *dummyCollector) CompleteDepth(depth int)                 {}
func (m *dummyCollector) Abort()                                  {}
func (m *dummyCollector) Complete() SearchMetric                  { return SearchMetric{} }
