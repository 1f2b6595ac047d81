package resolver

// Flags is a bitmask passed through to the satisfier oracle and the graph
// builder.
type Flags uint32

// IgnoreDependencyVersion makes the satisfier oracle treat every dependency
// expression as if its mod were Any for the duration of the scan.
const IgnoreDependencyVersion Flags = 1 << iota

// rpkg is a graph node: a package together with its outgoing dependency
// edges, its incoming owning edges, and the two flags mutated during
// conflict solving (disabled) and reduction (picked).
type rpkg struct {
	pkg      Pkg
	rdeps    []*rdep
	owners   []*rdep
	disabled bool
	picked   bool
}

// rdep is a directed edge: a dependency expression owned by rpkg, together
// with the ordered list of graph nodes that can satisfy it.
type rdep struct {
	owner      *rpkg
	dep        DependencyExpression
	satisfiers []*rpkg
}

// rconflict is an unordered conflicting pair with a preferred side: rpkg1
// was seeded into the graph earlier than rpkg2, so the solver always tries
// disabling rpkg2 first.
type rconflict struct {
	rpkg1 *rpkg
	rpkg2 *rpkg
}

// graph owns every rpkg created during one resolution, indexed by package
// identity so extendGraph stays idempotent.
type graph struct {
	nodes []*rpkg
	byPkg map[Pkg]*rpkg
}

func newGraph() *graph {
	return &graph{byPkg: make(map[Pkg]*rpkg)}
}

// satisfiers returns the subsequence of pool that satisfies dep under cmp,
// preserving pool order. When flags carries IgnoreDependencyVersion, dep is
// evaluated as if its mod were Any; dep itself is never mutated since Go
// passes DependencyExpression by value.
func satisfiers(dep DependencyExpression, pool []Pkg, flags Flags, cmp Comparator) []Pkg {
	effective := dep
	if flags&IgnoreDependencyVersion != 0 {
		effective.Mod = Any
	}

	var out []Pkg
	for _, candidate := range pool {
		if cmp.Satisfies(candidate, effective) {
			out = append(out, candidate)
		}
	}
	return out
}

// extendGraph idempotently adds pkg to g, recursively expanding every
// dependency that isn't covered by the assume-installed shortcut. Returns
// the node for pkg, or an error on the first dependency with zero
// satisfiers — the caller is responsible for aborting the whole resolution
// on error; partial graph state is retained (no rollback of prior nodes).
func extendGraph(g *graph, pkg Pkg, pool []Pkg, flags Flags, cmp Comparator, assumeInstalled []DependencyExpression) (*rpkg, error) {
	if existing, ok := g.byPkg[pkg]; ok {
		return existing, nil
	}

	node := &rpkg{pkg: pkg}
	g.byPkg[pkg] = node
	g.nodes = append(g.nodes, node)

	for _, d := range pkg.Depends() {
		if cmp.ProvidesMatch(d, assumeInstalled) {
			continue
		}

		candidates := satisfiers(d, pool, flags, cmp)
		if len(candidates) == 0 {
			return nil, &UnresolvableDependencyError{PkgName: pkg.Name(), Dep: d}
		}

		dep := &rdep{owner: node, dep: d}
		node.rdeps = append(node.rdeps, dep)

		for _, candidate := range candidates {
			satisfierNode, err := extendGraph(g, candidate, pool, flags, cmp, assumeInstalled)
			if err != nil {
				return nil, err
			}
			dep.satisfiers = append(dep.satisfiers, satisfierNode)
			satisfierNode.owners = append(satisfierNode.owners, dep)
		}
	}

	return node, nil
}
