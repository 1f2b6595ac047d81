package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"pmresolve/resolver"
)

func TestIniCatalogLoader_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.catalog")
	contents := `[foo]
Version = 1.2.0
Depends = bar>=1.0, baz

[bar]
Version = 1.0.0

[baz]
Version = 2.0.0
Conflicts = qux
Provides = virtual-baz
`
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("write catalogue: %v", err)
	}

	loader := IniCatalogLoader{}
	pkgs, err := loader.Load(path, resolver.Sync)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(pkgs) != 3 {
		t.Fatalf("got %d packages, want 3", len(pkgs))
	}

	byName := make(map[string]*Package)
	for _, p := range pkgs {
		byName[p.Name()] = p
		if p.Origin() != resolver.Sync {
			t.Errorf("package %s has origin %v, want Sync", p.Name(), p.Origin())
		}
	}

	foo, ok := byName["foo"]
	if !ok {
		t.Fatal("missing package foo")
	}
	if len(foo.Depends()) != 2 {
		t.Fatalf("foo depends = %v, want 2 entries", foo.Depends())
	}
	if foo.Depends()[0].Name != "bar" || foo.Depends()[0].Mod != resolver.GE || foo.Depends()[0].Version != "1.0" {
		t.Errorf("foo depends[0] = %+v", foo.Depends()[0])
	}
	if foo.Depends()[1].Name != "baz" || foo.Depends()[1].Mod != resolver.Any {
		t.Errorf("foo depends[1] = %+v", foo.Depends()[1])
	}

	baz, ok := byName["baz"]
	if !ok {
		t.Fatal("missing package baz")
	}
	if len(baz.Conflicts()) != 1 || baz.Conflicts()[0].Name != "qux" {
		t.Errorf("baz conflicts = %+v", baz.Conflicts())
	}
	if len(baz.Provides()) != 1 || baz.Provides()[0].Name != "virtual-baz" {
		t.Errorf("baz provides = %+v", baz.Provides())
	}
}

func TestIniCatalogLoader_MalformedDependency(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.catalog")
	if err := os.WriteFile(path, []byte("[foo]\nDepends = >=1.0\n"), 0644); err != nil {
		t.Fatalf("write catalogue: %v", err)
	}

	_, err := IniCatalogLoader{}.Load(path, resolver.Sync)
	if err == nil {
		t.Fatal("expected error for dependency expression with no name")
	}
}

func TestFixtureCatalogLoader(t *testing.T) {
	loader := NewFixtureCatalogLoader()
	loader.Add("local.catalog", NewPackage("installed-a", resolver.Local, "1.0", nil, nil, nil))

	pkgs, err := loader.Load("local.catalog", resolver.Local)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(pkgs) != 1 || pkgs[0].Name() != "installed-a" {
		t.Fatalf("got %+v", pkgs)
	}

	if _, err := loader.Load("missing.catalog", resolver.Sync); err == nil {
		t.Fatal("expected error for unregistered catalogue path")
	}
}
