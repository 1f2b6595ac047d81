package catalog

import (
	"context"
	"fmt"
	"sync"

	"pmresolve/log"
	"pmresolve/resolver"
)

// BulkLoader loads N sync catalogues concurrently via a worker pool,
// grounded on the teacher's BulkQueue channel-based design. Concurrency
// lives entirely here: once LoadSyncCatalogues returns, the resolver core consumes a
// single, ordered, already-assembled pool and never spawns a goroutine
// itself (the core is single-threaded per its concurrency model).
type BulkLoader struct {
	loader     CatalogLoader
	maxWorkers int

	// Logger receives a Debug line per catalogue as it's dispatched and
	// fetched. It's a log.LibraryLogger rather than *log.Logger so this
	// package doesn't have to depend on the multi-file, config-backed
	// logger just to report per-fetch progress; callers that don't care
	// get log.NoOpLogger by default.
	Logger log.LibraryLogger
}

// dedupeAcrossCatalogues drops any package whose name was already claimed
// by an earlier catalogue in paths order (e.g. a mirror listed in two sync
// catalogues), grounded on the teacher's PackageRegistry.Enter first-writer-
// wins dedup for entries discovered by parallel workers. It walks ordered
// in catalogue order rather than completion order, so "first" always means
// "from the earliest-listed catalogue" regardless of which worker finished
// fetching it first.
func dedupeAcrossCatalogues(ordered [][]*Package) [][]*Package {
	registry := NewPackageRegistry()
	deduped := make([][]*Package, len(ordered))
	for i, pkgs := range ordered {
		var kept []*Package
		for _, p := range pkgs {
			if registry.Enter(p) == p {
				kept = append(kept, p)
			}
		}
		deduped[i] = kept
	}
	return deduped
}

// NewBulkLoader creates a loader that fetches catalogues using loader,
// with up to maxWorkers concurrent fetches.
func NewBulkLoader(loader CatalogLoader, maxWorkers int) *BulkLoader {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &BulkLoader{loader: loader, maxWorkers: maxWorkers, Logger: log.NoOpLogger{}}
}

func (b *BulkLoader) logger() log.LibraryLogger {
	if b.Logger == nil {
		return log.NoOpLogger{}
	}
	return b.Logger
}

type catalogueJob struct {
	index int
	path  string
}

type catalogueResult struct {
	index int
	pkgs  []*Package
	err   error
}

// LoadSyncCatalogues loads every path in paths (origin Sync), preserving
// input order in the returned slice-of-slices regardless of which worker
// finished first — pool assembly order is load-bearing for the resolver's
// conflict-preference policy, so the concurrency used to build it must not
// leak into the result's ordering.
func (b *BulkLoader) LoadSyncCatalogues(ctx context.Context, paths []string) ([][]*Package, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	jobs := make(chan catalogueJob, len(paths))
	results := make(chan catalogueResult, len(paths))

	var wg sync.WaitGroup
	workers := b.maxWorkers
	if workers > len(paths) {
		workers = len(paths)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				select {
				case <-ctx.Done():
					results <- catalogueResult{index: job.index, err: ctx.Err()}
					continue
				default:
				}
				logger := b.logger()
				logger.Debug("fetching sync catalogue %s", job.path)
				pkgs, err := b.loader.Load(job.path, resolver.Sync)
				if err != nil {
					logger.Warn("catalogue %s failed: %v", job.path, err)
				} else {
					logger.Debug("catalogue %s: %d packages", job.path, len(pkgs))
				}
				results <- catalogueResult{index: job.index, pkgs: pkgs, err: err}
			}
		}()
	}

	for i, path := range paths {
		jobs <- catalogueJob{index: i, path: path}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	ordered := make([][]*Package, len(paths))
	var firstErr error
	for res := range results {
		if res.err != nil && firstErr == nil {
			firstErr = fmt.Errorf("catalogue %s: %w", paths[res.index], res.err)
			continue
		}
		ordered[res.index] = res.pkgs
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return dedupeAcrossCatalogues(ordered), nil
}
