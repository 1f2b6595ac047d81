// Package catalog provides the package data model, catalogue loading, and
// version-comparison oracle that the resolver core treats as external
// collaborators: a concrete Package type, a concurrency-safe registry, an
// INI-backed catalogue loader, and a concurrent bulk loader for sync
// catalogues. The resolver core never imports this package — it only ever
// sees the small interfaces it declares (resolver.Pkg, resolver.Comparator),
// which Package and Comparator below satisfy.
package catalog

import "pmresolve/resolver"

// Package is the concrete, in-memory package data model. It implements
// resolver.Pkg so it can be handed directly to the core.
type Package struct {
	name      string
	origin    resolver.Origin
	version   string
	depends   []resolver.DependencyExpression
	conflicts []resolver.DependencyExpression
	provides  []resolver.DependencyExpression
}

// NewPackage builds a Package. Slices are kept as given (not copied) —
// callers should not mutate them after construction.
func NewPackage(name string, origin resolver.Origin, version string, depends, conflicts, provides []resolver.DependencyExpression) *Package {
	return &Package{
		name:      name,
		origin:    origin,
		version:   version,
		depends:   depends,
		conflicts: conflicts,
		provides:  provides,
	}
}

func (p *Package) Name() string      { return p.name }
func (p *Package) Origin() resolver.Origin { return p.origin }
func (p *Package) Version() string   { return p.version }

func (p *Package) Depends() []resolver.DependencyExpression   { return p.depends }
func (p *Package) Conflicts() []resolver.DependencyExpression { return p.conflicts }
func (p *Package) Provides() []resolver.DependencyExpression  { return p.provides }

var _ resolver.Pkg = (*Package)(nil)
