package metrics

import "pmresolve/resolver"

// Budget is a node/backtrack ceiling for the Conflict Solver, implementing
// resolver.Budget. Adapted from the teacher's WorkerThrottler: where that
// capped worker count against load/swap thresholds, this caps the solver's
// disable attempts and backtracks against a fixed ceiling — the "design-level
// extension, not a hard requirement" spec.md §5 allows for pathological
// conflict graphs. A zero MaxAttempts or MaxBacktracks leaves that ceiling
// unlimited; setting Disabled to true (false by default) lifts both
// ceilings, mirroring the throttler's disabled mode.
type Budget struct {
	MaxAttempts  int
	MaxBacktracks int
	Disabled     bool

	collector  *Collector
	attempts   int
	backtracks int
}

// NewBudget creates a Budget capped at maxAttempts disable attempts and
// maxBacktracks backtracks. Pass collector to also feed Collector's own
// DisableAttempted/Backtrack counters from the solver's calls into Budget;
// collector may be nil.
func NewBudget(maxAttempts, maxBacktracks int, collector *Collector) *Budget {
	return &Budget{MaxAttempts: maxAttempts, MaxBacktracks: maxBacktracks, collector: collector}
}

// Allow reports whether the solver may attempt another disable.
func (b *Budget) Allow() bool {
	if b.Disabled {
		return true
	}
	if b.MaxAttempts > 0 && b.attempts >= b.MaxAttempts {
		return false
	}
	if b.MaxBacktracks > 0 && b.backtracks >= b.MaxBacktracks {
		return false
	}
	return true
}

// Visit records a disable attempt.
func (b *Budget) Visit() {
	b.attempts++
	if b.collector != nil {
		b.collector.DisableAttempted()
	}
}

// Backtrack records an undone disable.
func (b *Budget) Backtrack() {
	b.backtracks++
	if b.collector != nil {
		b.collector.Backtrack()
	}
}

// Commit records a disable that survived to the end of the search rather
// than being undone.
func (b *Budget) Commit() {
	if b.collector != nil {
		b.collector.DisableCommitted()
	}
}

var _ resolver.Budget = (*Budget)(nil)
