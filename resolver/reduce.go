package resolver

// reduce performs a guided pre-order-on-emission traversal of the enabled
// subgraph rooted at node: it emits node.pkg (unless disabled/already
// picked/of Local origin), then follows the first enabled satisfier of
// each dependency. Only one satisfier is visited per dependency even when
// several remain enabled — the first-enabled one is the canonical choice,
// matching graph construction order.
func reduce(node *rpkg, solution *[]Pkg) {
	if node.disabled || node.picked {
		return
	}
	node.picked = true

	if node.pkg.Origin() != Local {
		*solution = append(*solution, node.pkg)
	}

	for _, dep := range node.rdeps {
		for _, satisfier := range dep.satisfiers {
			if !satisfier.disabled {
				reduce(satisfier, solution)
				break
			}
		}
	}
}
