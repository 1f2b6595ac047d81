// Package resolver implements the core of a package-dependency resolver:
// building a dependency graph rooted at requested changes, enumerating
// inter-package conflicts, searching for an assignment that disables
// conflicting nodes without orphaning a dependency, and reducing the
// surviving graph to a solution that lists each package before its
// dependencies (OrderForInstall rearranges it into install order).
//
// The package treats packages, dependency expressions, and version
// comparison as opaque, externally supplied concepts: callers implement Pkg
// and Comparator against their own package data model (see package catalog
// for a concrete one) and hand them to ResolveDepsThorough.
package resolver

// Origin classifies a package as already installed (Local) or available
// from a remote catalogue (Sync). Emission to the solution is gated on
// non-Local origin.
type Origin int

const (
	Local Origin = iota
	Sync
)

// Mod is the comparison operator carried by a DependencyExpression.
type Mod int

const (
	Any Mod = iota
	EQ
	GE
	LE
	GT
	LT
)

// DependencyExpression is the {name, mod, version} triple the Comparator
// oracle evaluates against candidate packages.
type DependencyExpression struct {
	Name    string
	Mod     Mod
	Version string
}

// Pkg is the external package data model the core queries. Equality
// between two Pkg values is by identity (the same underlying object),
// never by value — callers must hand the resolver the same pointer for the
// same package across a resolution.
type Pkg interface {
	Name() string
	Origin() Origin
	Version() string
	Depends() []DependencyExpression
	Conflicts() []DependencyExpression
	Provides() []DependencyExpression
}

// Comparator is the version-constrained comparison oracle (depcmp /
// depcmp_provides in the original design). Satisfies reports whether pkg
// satisfies dep. ProvidesMatch reports whether dep is satisfied by any
// entry of a virtual-provides list (used for the assume-installed
// shortcut, where no backing package exists at all).
type Comparator interface {
	Satisfies(pkg Pkg, dep DependencyExpression) bool
	ProvidesMatch(dep DependencyExpression, virtuals []DependencyExpression) bool
}
