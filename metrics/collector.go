package metrics

import (
	"sync"
	"time"
)

// Collector accumulates SolveStats for a single resolution call and
// broadcasts a snapshot to every registered consumer after each update.
// Adapted from the teacher's StatsCollector: thread-safety is kept (a UI
// consumer may run on its own goroutine) but the 1 Hz sampling loop is
// dropped — a resolution has no background ticks to sample, only discrete
// decision points the driver reports directly.
type Collector struct {
	mu        sync.Mutex
	stats     SolveStats
	consumers []StatsConsumer
}

// NewCollector creates a Collector with its start time set to now.
func NewCollector() *Collector {
	return &Collector{stats: SolveStats{StartTime: time.Now()}}
}

// AddConsumer registers a stats consumer, notified in registration order.
func (c *Collector) AddConsumer(consumer StatsConsumer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.consumers = append(c.consumers, consumer)
}

// SetPoolSize records the assembled candidate pool size.
func (c *Collector) SetPoolSize(n int) { c.update(func(s *SolveStats) { s.PoolSize = n }) }

// NodeAdded increments the graph-node counter, called once per rpkg created.
func (c *Collector) NodeAdded() { c.update(func(s *SolveStats) { s.GraphNodes++ }) }

// ConflictsFound records the size of the enumerated conflict list.
func (c *Collector) ConflictsFound(n int) { c.update(func(s *SolveStats) { s.ConflictsFound = n }) }

// DisableAttempted increments the attempted-disable counter, called once
// per node the solver considers disabling (whether or not it commits).
func (c *Collector) DisableAttempted() { c.update(func(s *SolveStats) { s.DisablesAttempted++ }) }

// DisableCommitted increments the committed-disable counter.
func (c *Collector) DisableCommitted() { c.update(func(s *SolveStats) { s.DisablesCommitted++ }) }

// Backtrack increments the backtrack counter, called once per disable
// undone during search.
func (c *Collector) Backtrack() { c.update(func(s *SolveStats) { s.Backtracks++ }) }

// Finish records the terminal outcome and broadcasts a final snapshot.
func (c *Collector) Finish(solved bool, solutionSize int) {
	c.update(func(s *SolveStats) {
		s.Solved = solved
		s.SolutionSize = solutionSize
	})
}

// Snapshot returns a copy of the current stats.
func (c *Collector) Snapshot() SolveStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

func (c *Collector) update(mutate func(*SolveStats)) {
	c.mu.Lock()
	mutate(&c.stats)
	c.stats.Elapsed = time.Since(c.stats.StartTime)
	snapshot := c.stats
	consumers := c.consumers
	c.mu.Unlock()

	for _, consumer := range consumers {
		consumer.OnStatsUpdate(snapshot)
	}
}
