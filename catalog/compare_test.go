package catalog

import (
	"testing"

	"pmresolve/resolver"
)

func TestComparator_SatisfiesByName(t *testing.T) {
	c := Comparator{}
	pkg := NewPackage("foo", resolver.Sync, "1.2.0", nil, nil, nil)

	if !c.Satisfies(pkg, resolver.DependencyExpression{Name: "foo", Mod: resolver.Any}) {
		t.Error("expected ANY-mod dependency to be satisfied regardless of version")
	}
	if !c.Satisfies(pkg, resolver.DependencyExpression{Name: "foo", Mod: resolver.EQ, Version: "1.2.0"}) {
		t.Error("expected exact version match to satisfy")
	}
	if c.Satisfies(pkg, resolver.DependencyExpression{Name: "foo", Mod: resolver.EQ, Version: "1.3.0"}) {
		t.Error("expected version mismatch to fail EQ")
	}
	if !c.Satisfies(pkg, resolver.DependencyExpression{Name: "foo", Mod: resolver.GE, Version: "1.1.0"}) {
		t.Error("expected 1.2.0 >= 1.1.0")
	}
	if c.Satisfies(pkg, resolver.DependencyExpression{Name: "foo", Mod: resolver.GT, Version: "1.2.0"}) {
		t.Error("expected 1.2.0 not > 1.2.0")
	}
}

func TestComparator_SatisfiesByProvides(t *testing.T) {
	c := Comparator{}
	pkg := NewPackage("mta-compat", resolver.Sync, "1.0", nil, nil,
		[]resolver.DependencyExpression{{Name: "mta", Mod: resolver.EQ, Version: "2.0"}})

	if !c.Satisfies(pkg, resolver.DependencyExpression{Name: "mta", Mod: resolver.Any}) {
		t.Error("expected provides entry to satisfy a name-only dependency")
	}
	if !c.Satisfies(pkg, resolver.DependencyExpression{Name: "mta", Mod: resolver.GE, Version: "1.5"}) {
		t.Error("expected provides version to satisfy GE constraint")
	}
	if c.Satisfies(pkg, resolver.DependencyExpression{Name: "unrelated", Mod: resolver.Any}) {
		t.Error("unrelated name should not match")
	}
}

func TestComparator_ProvidesMatch(t *testing.T) {
	c := Comparator{}
	virtuals := []resolver.DependencyExpression{{Name: "libc.so", Mod: resolver.Any}}

	if !c.ProvidesMatch(resolver.DependencyExpression{Name: "libc.so", Mod: resolver.Any}, virtuals) {
		t.Error("expected assume-installed list to satisfy matching virtual dependency")
	}
	if c.ProvidesMatch(resolver.DependencyExpression{Name: "libfoo.so", Mod: resolver.Any}, virtuals) {
		t.Error("unrelated virtual dependency should not match")
	}
}

func TestVercmp(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"1.0", "1.0", 0},
		{"1.0", "1.1", -1},
		{"1.10", "1.9", 1},
		{"2.0", "1.9", 1},
		{"1.0.0", "1.0", 1},
		{"1.0-1", "1.0-2", -1},
	}
	for _, tc := range cases {
		if got := vercmp(tc.a, tc.b); sign(got) != sign(tc.want) {
			t.Errorf("vercmp(%q, %q) = %d, want sign %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
