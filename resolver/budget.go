package resolver

// Budget is an optional backtrack/node ceiling the Conflict Solver consults
// before committing to a disable. Exhausting a budget is treated exactly
// like an irreducible conflict: solveConflicts returns FAIL. This is the
// "design-level extension, not a hard requirement" the driver design
// mentions for pathological conflict graphs.
//
// A concrete implementation (package metrics) also collects the counters a
// budget needs to decide exhaustion; resolver only depends on this
// interface so the core never imports package metrics.
type Budget interface {
	// Allow is consulted before each disable attempt. Returning false
	// aborts the search as FAIL without trying the attempt.
	Allow() bool
	// Visit is called once per disable attempt, whether or not it
	// ultimately succeeds.
	Visit()
	// Backtrack is called whenever a disable is undone during search.
	Backtrack()
	// Commit is called when a disable survives to the end of the search
	// instead of being undone — i.e. the recursive call it guarded
	// returned true and solveConflicts is unwinding successfully.
	Commit()
}
