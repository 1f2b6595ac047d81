package resolver

// findConflicts enumerates every unordered pair (i, j), i < j, in graph
// node order and records a conflict for every pair whose packages conflict.
// rpkg1 is always the earlier node (the preferred side in solveConflicts).
func findConflicts(nodes []*rpkg, cmp Comparator) []*rconflict {
	var out []*rconflict
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			if pkgsConflict(nodes[i].pkg, nodes[j].pkg, cmp) {
				out = append(out, &rconflict{rpkg1: nodes[i], rpkg2: nodes[j]})
			}
		}
	}
	return out
}

// pkgsConflict reports whether a and b conflict: same name (two different
// packages claiming the same identity), or either's conflicts list matches
// the other package.
func pkgsConflict(a, b Pkg, cmp Comparator) bool {
	if a.Name() == b.Name() {
		return true
	}
	for _, c := range a.Conflicts() {
		if cmp.Satisfies(b, c) {
			return true
		}
	}
	for _, c := range b.Conflicts() {
		if cmp.Satisfies(a, c) {
			return true
		}
	}
	return false
}
