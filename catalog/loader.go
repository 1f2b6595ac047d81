package catalog

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"

	"pmresolve/resolver"
)

// CatalogLoader loads the packages described by a single catalogue
// (local.catalog or one sync catalogue) into memory.
type CatalogLoader interface {
	// Load returns every package described by the catalogue, tagged with
	// origin.
	Load(path string, origin resolver.Origin) ([]*Package, error)
}

// IniCatalogLoader parses an ini-formatted catalogue file: one section per
// package, keyed by package name, with Version/Depends/Conflicts/Provides
// keys. Dependency expressions are written as "name op version" triples
// separated by commas (op is one of =, >=, <=, >, <, or omitted for ANY).
type IniCatalogLoader struct{}

func (IniCatalogLoader) Load(path string, origin resolver.Origin) ([]*Package, error) {
	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load catalogue %s: %w", path, err)
	}

	var pkgs []*Package
	for _, sec := range f.Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}
		depends, err := parseDepList(sec.Key("Depends").String())
		if err != nil {
			return nil, fmt.Errorf("catalogue %s, package %s: %w", path, sec.Name(), err)
		}
		conflicts, err := parseDepList(sec.Key("Conflicts").String())
		if err != nil {
			return nil, fmt.Errorf("catalogue %s, package %s: %w", path, sec.Name(), err)
		}
		provides, err := parseDepList(sec.Key("Provides").String())
		if err != nil {
			return nil, fmt.Errorf("catalogue %s, package %s: %w", path, sec.Name(), err)
		}

		pkgs = append(pkgs, NewPackage(sec.Name(), origin, sec.Key("Version").String(), depends, conflicts, provides))
	}
	return pkgs, nil
}

// parseDepList parses a comma-separated list of dependency expressions like
// "libfoo>=1.2, libbar".
func parseDepList(value string) ([]resolver.DependencyExpression, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	var out []resolver.DependencyExpression
	for _, field := range strings.Split(value, ",") {
		expr, err := parseDepExpr(strings.TrimSpace(field))
		if err != nil {
			return nil, err
		}
		out = append(out, expr)
	}
	return out, nil
}

var modOps = []struct {
	op  string
	mod resolver.Mod
}{
	{">=", resolver.GE},
	{"<=", resolver.LE},
	{"==", resolver.EQ},
	{"=", resolver.EQ},
	{">", resolver.GT},
	{"<", resolver.LT},
}

func parseDepExpr(field string) (resolver.DependencyExpression, error) {
	if field == "" {
		return resolver.DependencyExpression{}, fmt.Errorf("empty dependency expression")
	}
	for _, m := range modOps {
		if idx := strings.Index(field, m.op); idx >= 0 {
			name := strings.TrimSpace(field[:idx])
			version := strings.TrimSpace(field[idx+len(m.op):])
			if name == "" {
				return resolver.DependencyExpression{}, fmt.Errorf("malformed dependency expression %q", field)
			}
			return resolver.DependencyExpression{Name: name, Mod: m.mod, Version: version}, nil
		}
	}
	return resolver.DependencyExpression{Name: field, Mod: resolver.Any}, nil
}

// FixtureCatalogLoader loads packages from an in-memory map, grounded on
// the teacher's testFixtureQuerier pattern: tests hand it pre-built
// fixtures instead of requiring a real catalogue file on disk.
type FixtureCatalogLoader struct {
	// Catalogues maps a catalogue path to the packages it contains.
	Catalogues map[string][]*Package
}

func NewFixtureCatalogLoader() *FixtureCatalogLoader {
	return &FixtureCatalogLoader{Catalogues: make(map[string][]*Package)}
}

func (f *FixtureCatalogLoader) Add(path string, pkgs ...*Package) {
	f.Catalogues[path] = append(f.Catalogues[path], pkgs...)
}

func (f *FixtureCatalogLoader) Load(path string, origin resolver.Origin) ([]*Package, error) {
	pkgs, ok := f.Catalogues[path]
	if !ok {
		return nil, fmt.Errorf("no fixture registered for catalogue %s", path)
	}
	out := make([]*Package, len(pkgs))
	for i, p := range pkgs {
		// Re-tag with the requested origin so the same fixture package can
		// be reused as both a local and a sync entry across test cases.
		out[i] = NewPackage(p.Name(), origin, p.Version(), p.Depends(), p.Conflicts(), p.Provides())
	}
	return out, nil
}
