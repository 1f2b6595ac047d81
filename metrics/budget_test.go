package metrics

import (
	"testing"

	"pmresolve/catalog"
	"pmresolve/resolver"
)

func TestBudget_AllowsUnderCeiling(t *testing.T) {
	b := NewBudget(3, 0, nil)
	for i := 0; i < 3; i++ {
		if !b.Allow() {
			t.Fatalf("Allow() = false before reaching ceiling (attempt %d)", i)
		}
		b.Visit()
	}
	if b.Allow() {
		t.Errorf("Allow() = true after reaching MaxAttempts ceiling")
	}
}

func TestBudget_BacktrackCeiling(t *testing.T) {
	b := NewBudget(0, 2, nil)
	b.Visit()
	b.Backtrack()
	b.Visit()
	b.Backtrack()
	if b.Allow() {
		t.Errorf("Allow() = true after reaching MaxBacktracks ceiling")
	}
}

func TestBudget_Disabled(t *testing.T) {
	b := NewBudget(1, 1, nil)
	b.Disabled = true
	b.Visit()
	b.Backtrack()
	b.Visit()
	if !b.Allow() {
		t.Errorf("Allow() = false on a disabled budget")
	}
}

func TestBudget_ZeroCeilingMeansUnlimited(t *testing.T) {
	b := NewBudget(0, 0, nil)
	for i := 0; i < 1000; i++ {
		if !b.Allow() {
			t.Fatalf("Allow() = false at attempt %d with zero ceilings (unlimited)", i)
		}
		b.Visit()
	}
}

func TestBudget_FeedsCollector(t *testing.T) {
	c := NewCollector()
	b := NewBudget(0, 0, c)
	b.Visit()
	b.Visit()
	b.Backtrack()

	snap := c.Snapshot()
	if snap.DisablesAttempted != 2 {
		t.Errorf("DisablesAttempted = %d, want 2", snap.DisablesAttempted)
	}
	if snap.Backtracks != 1 {
		t.Errorf("Backtracks = %d, want 1", snap.Backtracks)
	}
}

func TestBudget_CommitFeedsCollector(t *testing.T) {
	c := NewCollector()
	b := NewBudget(0, 0, c)
	b.Commit()
	b.Commit()

	snap := c.Snapshot()
	if snap.DisablesCommitted != 2 {
		t.Errorf("DisablesCommitted = %d, want 2", snap.DisablesCommitted)
	}
}

func TestBudget_CommitNilCollectorDoesNotPanic(t *testing.T) {
	b := NewBudget(0, 0, nil)
	b.Commit()
}

// TestBudget_CommitsThroughRealConflictResolution drives a real two-way
// conflict through resolver.ResolveDepsThorough so DisablesCommitted
// reflects an actual solver decision, not just a direct Commit() call.
func TestBudget_CommitsThroughRealConflictResolution(t *testing.T) {
	x1 := catalog.NewPackage("X1", resolver.Sync, "1.0", nil,
		[]resolver.DependencyExpression{{Name: "X2", Mod: resolver.Any}},
		[]resolver.DependencyExpression{{Name: "X", Mod: resolver.Any}})
	x2 := catalog.NewPackage("X2", resolver.Sync, "1.0", nil,
		[]resolver.DependencyExpression{{Name: "X1", Mod: resolver.Any}},
		[]resolver.DependencyExpression{{Name: "X", Mod: resolver.Any}})
	a := catalog.NewPackage("A", resolver.Sync, "1.0",
		[]resolver.DependencyExpression{{Name: "X", Mod: resolver.Any}}, nil, nil)

	handle := &resolver.Handle{
		SyncCatalogues: [][]resolver.Pkg{{x1, x2}},
	}

	c := NewCollector()
	b := NewBudget(0, 0, c)

	_, err := resolver.ResolveDepsThorough(handle, []resolver.Pkg{a}, nil, 0, catalog.Comparator{}, b)
	if err != nil {
		t.Fatalf("ResolveDepsThorough failed: %v", err)
	}

	snap := c.Snapshot()
	if snap.DisablesCommitted == 0 {
		t.Errorf("expected at least one committed disable, got DisablesCommitted=%d", snap.DisablesCommitted)
	}
}
