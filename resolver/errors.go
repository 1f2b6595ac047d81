package resolver

import "fmt"

// Sentinel errors, checked with errors.Is, covering the three error kinds
// from the core's error taxonomy: an unresolvable dependency, an
// unresolvable conflict, and allocation failure surfaced distinctly from
// logical failure.
var (
	// ErrUnresolvableDependency is the base error for
	// UnresolvableDependencyError: a dependency expression has zero
	// satisfiers in the pool.
	ErrUnresolvableDependency = fmt.Errorf("unresolvable dependency")

	// ErrUnresolvableConflict is the base error for
	// UnresolvableConflictError: the backtracking solver exhausted both
	// branches of some conflict.
	ErrUnresolvableConflict = fmt.Errorf("unresolvable conflict")

	// ErrAllocation is the base error for AllocationError.
	ErrAllocation = fmt.Errorf("allocation failure")
)

// UnresolvableDependencyError wraps a dependency that has no satisfier in
// the pool, with the offending package and dependency expression attached
// for diagnostics (not part of the behavioral contract).
type UnresolvableDependencyError struct {
	PkgName string
	Dep     DependencyExpression
}

func (e *UnresolvableDependencyError) Error() string {
	return fmt.Sprintf("unresolvable dependency: %s requires %s (no satisfier in pool)", e.PkgName, e.Dep.Name)
}

func (e *UnresolvableDependencyError) Unwrap() error { return ErrUnresolvableDependency }

// UnresolvableConflictError wraps a conflict pair the solver could not
// resolve by disabling either side.
type UnresolvableConflictError struct {
	Pkg1Name string
	Pkg2Name string
}

func (e *UnresolvableConflictError) Error() string {
	return fmt.Sprintf("unresolvable conflict: %s <-> %s", e.Pkg1Name, e.Pkg2Name)
}

func (e *UnresolvableConflictError) Unwrap() error { return ErrUnresolvableConflict }

// AllocationError wraps a failure to allocate graph state, reported
// distinctly from logical (dependency/conflict) failure.
type AllocationError struct {
	Reason string
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("allocation failure: %s", e.Reason)
}

func (e *AllocationError) Unwrap() error { return ErrAllocation }
