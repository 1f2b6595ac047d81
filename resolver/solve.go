package resolver

// solveConflicts is the recursive backtracking conflict solver. conflict.rpkg1
// is always the preferred side (the earlier graph node); the solver tries
// disabling rpkg2 first so rpkg1 survives whenever possible.
func solveConflicts(conflicts []*rconflict, roots []*rpkg, budget Budget) bool {
	if len(conflicts) == 0 {
		return true
	}

	head := conflicts[0]
	tail := conflicts[1:]

	if head.rpkg1.disabled || head.rpkg2.disabled {
		return solveConflicts(tail, roots, budget)
	}

	if budget != nil && !budget.Allow() {
		return false
	}

	if disableable(head.rpkg2, roots) {
		if budget != nil {
			budget.Visit()
		}
		head.rpkg2.disabled = true
		if solveConflicts(tail, roots, budget) {
			if budget != nil {
				budget.Commit()
			}
			return true
		}
		head.rpkg2.disabled = false
		if budget != nil {
			budget.Backtrack()
		}
	}

	if disableable(head.rpkg1, roots) {
		if budget != nil {
			budget.Visit()
		}
		head.rpkg1.disabled = true
		if solveConflicts(tail, roots, budget) {
			if budget != nil {
				budget.Commit()
			}
			return true
		}
		head.rpkg1.disabled = false
		if budget != nil {
			budget.Backtrack()
		}
	}

	return false
}

// disableable reports whether n may be disabled: it must not be a non-local
// root, and disabling it must not leave any of its owning dependencies
// without an enabled satisfier. Evaluated fresh at every call site, so the
// answer can change across the search as siblings are disabled/restored.
func disableable(n *rpkg, roots []*rpkg) bool {
	for _, r := range roots {
		if r == n && r.pkg.Origin() != Local {
			return false
		}
	}

	for _, o := range n.owners {
		hasAltSatisfier := false
		for _, s := range o.satisfiers {
			if s != n && !s.disabled {
				hasAltSatisfier = true
				break
			}
		}
		if !hasAltSatisfier {
			return false
		}
	}

	return true
}
