package resolver

// fixturePkg is a minimal Pkg implementation for tests: a plain struct
// compared by identity, the way the spec's Package equality contract
// requires (two fixturePkg values with identical fields are still distinct
// packages unless they are the same pointer).
type fixturePkg struct {
	name      string
	origin    Origin
	version   string
	depends   []DependencyExpression
	conflicts []DependencyExpression
	provides  []DependencyExpression
}

func (p *fixturePkg) Name() string                      { return p.name }
func (p *fixturePkg) Origin() Origin                     { return p.origin }
func (p *fixturePkg) Version() string                    { return p.version }
func (p *fixturePkg) Depends() []DependencyExpression    { return p.depends }
func (p *fixturePkg) Conflicts() []DependencyExpression  { return p.conflicts }
func (p *fixturePkg) Provides() []DependencyExpression   { return p.provides }

func dep(name string) DependencyExpression {
	return DependencyExpression{Name: name, Mod: Any}
}

func pkg(name string, origin Origin, depends ...string) *fixturePkg {
	p := &fixturePkg{name: name, origin: origin, version: "1"}
	for _, d := range depends {
		p.depends = append(p.depends, dep(d))
	}
	return p
}

// fixtureComparator implements Comparator with bare name-equality matching
// (every fixture dependency expression carries Mod: Any), which is all the
// resolver-level tests need — version-constrained comparison is package
// catalog's concern, exercised separately there.
type fixtureComparator struct{}

func (fixtureComparator) Satisfies(p Pkg, d DependencyExpression) bool {
	if p.Name() == d.Name {
		return true
	}
	for _, pr := range p.Provides() {
		if pr.Name == d.Name {
			return true
		}
	}
	return false
}

func (fixtureComparator) ProvidesMatch(d DependencyExpression, virtuals []DependencyExpression) bool {
	for _, v := range virtuals {
		if v.Name == d.Name {
			return true
		}
	}
	return false
}
