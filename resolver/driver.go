package resolver

// Handle bundles the external collaborators a resolution call needs: the
// installed-package cache, the ordered sync catalogues, the
// assume-installed virtual-provides list, and the ignore predicate.
type Handle struct {
	LocalPackages   []Pkg
	SyncCatalogues  [][]Pkg
	AssumeInstalled []DependencyExpression
	ShouldIgnore    func(pkg Pkg) bool

	// Observer, if set, is notified at the pool-assembly, graph-built, and
	// conflicts-found milestones of the resolution.
	Observer Observer
}

// ResolveDepsThorough is the core's single entry point. It assembles the
// candidate pool, seeds the graph from add and from every installed
// package not being added or removed, solves conflicts, reduces the
// surviving graph to a solution, and returns the ordered list of non-local
// packages to install. A nil, non-error return happens when add and the
// local-DB-derived roots produce no non-local packages; a failure to find
// any solution is reported as an error, never as a nil/empty result.
func ResolveDepsThorough(handle *Handle, add, remove []Pkg, flags Flags, cmp Comparator, budget Budget) ([]Pkg, error) {
	pool := assemblePool(handle, add, remove)
	if handle.Observer != nil {
		handle.Observer.PoolAssembled(len(pool))
	}

	g := newGraph()
	var roots []*rpkg

	for _, pkg := range add {
		node, err := extendGraph(g, pkg, pool, flags, cmp, handle.AssumeInstalled)
		if err != nil {
			return nil, err
		}
		roots = append(roots, node)
	}

	for _, pkg := range handle.LocalPackages {
		if pkgFind(add, pkg.Name()) != nil || pkgFind(remove, pkg.Name()) != nil {
			continue
		}
		node, err := extendGraph(g, pkg, pool, flags, cmp, handle.AssumeInstalled)
		if err != nil {
			return nil, err
		}
		roots = append(roots, node)
	}

	if handle.Observer != nil {
		handle.Observer.GraphBuilt(len(g.nodes))
	}

	conflicts := findConflicts(g.nodes, cmp)
	if handle.Observer != nil {
		handle.Observer.ConflictsFound(len(conflicts))
	}
	if !solveConflicts(conflicts, roots, budget) {
		if len(conflicts) > 0 {
			return nil, &UnresolvableConflictError{
				Pkg1Name: conflicts[0].rpkg1.pkg.Name(),
				Pkg2Name: conflicts[0].rpkg2.pkg.Name(),
			}
		}
		return nil, ErrUnresolvableConflict
	}

	var solution []Pkg
	for _, root := range roots {
		reduce(root, &solution)
	}

	return solution, nil
}

// assemblePool builds the ordered candidate pool: every add package, then
// every local package not in add/remove, then for each sync catalogue in
// order every package not in add/remove and not ignored. This order is
// load-bearing: it fixes which satisfier the Reducer picks and which side
// of a conflict is preferred.
func assemblePool(handle *Handle, add, remove []Pkg) []Pkg {
	var pool []Pkg
	pool = append(pool, add...)

	for _, pkg := range handle.LocalPackages {
		if pkgFind(add, pkg.Name()) != nil || pkgFind(remove, pkg.Name()) != nil {
			continue
		}
		pool = append(pool, pkg)
	}

	for _, catalogue := range handle.SyncCatalogues {
		for _, pkg := range catalogue {
			if pkgFind(add, pkg.Name()) != nil || pkgFind(remove, pkg.Name()) != nil {
				continue
			}
			if handle.ShouldIgnore != nil && handle.ShouldIgnore(pkg) {
				continue
			}
			pool = append(pool, pkg)
		}
	}

	return pool
}

// pkgFind returns the first package in list named name, or nil.
func pkgFind(list []Pkg, name string) Pkg {
	for _, pkg := range list {
		if pkg.Name() == name {
			return pkg
		}
	}
	return nil
}
