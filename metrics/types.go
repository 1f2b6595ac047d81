// Package metrics provides real-time instrumentation for a single
// resolution call: counters for graph size, conflicts, solver decisions,
// and a StatsConsumer-style callback that a UI can subscribe to.
//
// Adapted from the teacher's stats package, which sampled build-worker
// health once a second. A resolution is synchronous and typically
// sub-second, so SolveStats has no sampling loop: it is updated and
// broadcast once per solver decision point instead of once per second.
package metrics

import (
	"fmt"
	"time"
)

// SolveStats is the snapshot payload shared with every registered
// StatsConsumer, the resolver-domain analogue of the teacher's TopInfo.
type SolveStats struct {
	// Graph Metrics
	GraphNodes int // rpkg nodes added so far
	PoolSize   int // size of the assembled candidate pool

	// Conflict Metrics
	ConflictsFound      int
	DisablesAttempted   int
	DisablesCommitted   int
	Backtracks          int

	// Timing
	Elapsed   time.Duration
	StartTime time.Time

	// Outcome (zero value until the resolution finishes)
	Solved       bool
	SolutionSize int
}

// StatsConsumer receives a SolveStats snapshot at every decision point:
// after pool assembly, after each node is added to the graph, after
// conflict enumeration, after each disable/backtrack, and once at the end
// with the final outcome.
type StatsConsumer interface {
	OnStatsUpdate(info SolveStats)
}

// FormatDuration formats a duration as HH:MM:SS for display, matching the
// teacher's stats.FormatDuration.
func FormatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
