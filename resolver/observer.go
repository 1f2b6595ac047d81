package resolver

// Observer receives progress notifications at the three driver-level
// milestones of a resolution call: pool assembly, graph construction, and
// conflict enumeration. It exists so a caller's metrics collector or UI can
// observe a resolution without the core importing either — the same
// decoupling Budget gives the solver.
//
// A nil Handle.Observer means no one is listening; ResolveDepsThorough
// guards every call with a nil check.
type Observer interface {
	// PoolAssembled reports the size of the candidate pool built from add,
	// local packages, and sync catalogues.
	PoolAssembled(size int)
	// GraphBuilt reports the total number of rpkg nodes once every root
	// has been expanded.
	GraphBuilt(nodeCount int)
	// ConflictsFound reports the size of the enumerated conflict list,
	// before the solver attempts to resolve any of it.
	ConflictsFound(n int)
}
