package catalog

import "sync"

// PackageRegistry is a concurrency-safe by-name index over loaded packages.
// BulkLoader.LoadSyncCatalogues uses one to dedupe packages of the same
// name fetched from different sync catalogues, keeping the copy from the
// earliest-listed catalogue. Grounded on the teacher's PackageRegistry.Enter/
// Find pattern for deduplicating port entries discovered by parallel
// workers; the lock makes it safe to share across the bulk loader's worker
// goroutines too, though the current dedup pass itself runs after they've
// all finished.
type PackageRegistry struct {
	mu    sync.RWMutex
	byKey map[string]*Package
}

// NewPackageRegistry creates an empty registry.
func NewPackageRegistry() *PackageRegistry {
	return &PackageRegistry{byKey: make(map[string]*Package)}
}

// Enter registers pkg under its name, unless a package with that name is
// already present — in which case the existing package is returned and pkg
// is discarded. This mirrors the teacher's "first writer wins" dedup so
// concurrent loaders never race on which copy becomes canonical.
func (r *PackageRegistry) Enter(pkg *Package) *Package {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byKey[pkg.Name()]; ok {
		return existing
	}
	r.byKey[pkg.Name()] = pkg
	return pkg
}

// Find returns the package registered under name, or nil.
func (r *PackageRegistry) Find(name string) *Package {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byKey[name]
}

// All returns every registered package. Order is unspecified.
func (r *PackageRegistry) All() []*Package {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Package, 0, len(r.byKey))
	for _, pkg := range r.byKey {
		out = append(out, pkg)
	}
	return out
}

// Len returns the number of registered packages.
func (r *PackageRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byKey)
}
