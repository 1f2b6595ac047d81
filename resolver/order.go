package resolver

import "sort"

// OrderForInstall reorders a resolved solution so dependencies precede their
// dependents. ResolveDepsThorough (via reduce) emits a package before the
// nodes it depends on, matching the Reducer's pre-order-on-emission
// traversal (spec.md §4.5); callers that need install order must reverse or
// post-process, which is exactly what this does.
//
// The algorithm is Kahn's algorithm over the solution's own Depends() edges
// (restricted to packages that are themselves part of the solution — an
// already-installed or externally-satisfied dependency is not a node here),
// with ties among simultaneously-ready packages broken by dependency depth
// and fan-out so high-impact packages install as early as their
// dependencies allow: adapted from the teacher's GetBuildOrder/
// sortQueueByPriority build-queue scheduler, applied to install order
// instead of a ports-tree build order.
func OrderForInstall(solution []Pkg) []Pkg {
	inSolution := make(map[Pkg]bool, len(solution))
	for _, p := range solution {
		inSolution[p] = true
	}

	byName := make(map[string]Pkg, len(solution))
	for _, p := range solution {
		byName[p.Name()] = p
	}

	dependents := make(map[Pkg][]Pkg)
	inDegree := make(map[Pkg]int, len(solution))
	for _, p := range solution {
		inDegree[p] = 0
	}
	for _, p := range solution {
		for _, d := range p.Depends() {
			dep, ok := byName[d.Name]
			if !ok || !inSolution[dep] || dep == p {
				continue
			}
			dependents[dep] = append(dependents[dep], p)
			inDegree[p]++
		}
	}

	depth := make(map[Pkg]int, len(solution))
	var calcDepth func(Pkg) int
	calcDepth = func(p Pkg) int {
		if d, ok := depth[p]; ok {
			return d
		}
		depth[p] = 1 // break cycles: a node under calculation reports depth 1
		max := 0
		for _, child := range dependents[p] {
			if d := calcDepth(child); d > max {
				max = d
			}
		}
		depth[p] = max + 1
		return depth[p]
	}
	for _, p := range solution {
		calcDepth(p)
	}

	priority := func(queue []Pkg) {
		sort.Slice(queue, func(i, j int) bool {
			a, b := queue[i], queue[j]
			if depth[a] != depth[b] {
				return depth[a] > depth[b]
			}
			if len(dependents[a]) != len(dependents[b]) {
				return len(dependents[a]) > len(dependents[b])
			}
			return a.Name() < b.Name()
		})
	}

	var queue []Pkg
	for _, p := range solution {
		if inDegree[p] == 0 {
			queue = append(queue, p)
		}
	}
	priority(queue)

	result := make([]Pkg, 0, len(solution))
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		result = append(result, p)

		var newlyReady []Pkg
		for _, dependent := range dependents[p] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				newlyReady = append(newlyReady, dependent)
			}
		}
		if len(newlyReady) > 0 {
			priority(newlyReady)
			queue = append(queue, newlyReady...)
		}
	}

	// A cycle among solution packages (rare but not excluded by the core,
	// see spec.md §9 Design Notes) leaves some packages un-enqueued; append
	// them in their original order rather than dropping them.
	if len(result) != len(solution) {
		seen := make(map[Pkg]bool, len(result))
		for _, p := range result {
			seen[p] = true
		}
		for _, p := range solution {
			if !seen[p] {
				result = append(result, p)
			}
		}
	}

	return result
}
