package catalog

import (
	"context"
	"testing"

	"pmresolve/log"
	"pmresolve/resolver"
)

func TestBulkLoader_PreservesOrder(t *testing.T) {
	loader := NewFixtureCatalogLoader()
	loader.Add("main.catalog", NewPackage("main-a", resolver.Sync, "1.0", nil, nil, nil))
	loader.Add("extra.catalog", NewPackage("extra-a", resolver.Sync, "1.0", nil, nil, nil))
	loader.Add("ports.catalog", NewPackage("ports-a", resolver.Sync, "1.0", nil, nil, nil))

	bulk := NewBulkLoader(loader, 4)
	results, err := bulk.LoadSyncCatalogues(context.Background(), []string{"main.catalog", "extra.catalog", "ports.catalog"})
	if err != nil {
		t.Fatalf("LoadSyncCatalogues failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d result slots, want 3", len(results))
	}
	if results[0][0].Name() != "main-a" || results[1][0].Name() != "extra-a" || results[2][0].Name() != "ports-a" {
		t.Errorf("catalogue order not preserved: %+v", results)
	}
}

func TestBulkLoader_Empty(t *testing.T) {
	bulk := NewBulkLoader(NewFixtureCatalogLoader(), 2)
	results, err := bulk.LoadSyncCatalogues(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results != nil {
		t.Errorf("expected nil results for empty input, got %+v", results)
	}
}

func TestBulkLoader_PropagatesError(t *testing.T) {
	bulk := NewBulkLoader(NewFixtureCatalogLoader(), 2)
	_, err := bulk.LoadSyncCatalogues(context.Background(), []string{"missing.catalog"})
	if err == nil {
		t.Fatal("expected error for missing catalogue")
	}
}

func TestBulkLoader_DedupesAcrossCatalogues(t *testing.T) {
	loader := NewFixtureCatalogLoader()
	loader.Add("main.catalog",
		NewPackage("vim", resolver.Sync, "9.0", nil, nil, nil),
		NewPackage("main-only", resolver.Sync, "1.0", nil, nil, nil))
	loader.Add("mirror.catalog",
		NewPackage("vim", resolver.Sync, "9.1", nil, nil, nil),
		NewPackage("mirror-only", resolver.Sync, "1.0", nil, nil, nil))

	bulk := NewBulkLoader(loader, 4)
	results, err := bulk.LoadSyncCatalogues(context.Background(), []string{"main.catalog", "mirror.catalog"})
	if err != nil {
		t.Fatalf("LoadSyncCatalogues failed: %v", err)
	}

	if len(results[0]) != 2 {
		t.Fatalf("main.catalog: got %d packages, want 2 (vim, main-only)", len(results[0]))
	}
	if results[0][0].Name() != "vim" || results[0][0].Version() != "9.0" {
		t.Errorf("main.catalog's vim should survive with its own version: %+v", results[0][0])
	}

	if len(results[1]) != 1 || results[1][0].Name() != "mirror-only" {
		t.Fatalf("mirror.catalog: want only mirror-only (vim deduped away), got %+v", results[1])
	}
}

func TestBulkLoader_LogsFetchProgress(t *testing.T) {
	loader := NewFixtureCatalogLoader()
	loader.Add("main.catalog", NewPackage("main-a", resolver.Sync, "1.0", nil, nil, nil))

	mem := log.NewMemoryLogger()
	bulk := NewBulkLoader(loader, 4)
	bulk.Logger = mem

	_, err := bulk.LoadSyncCatalogues(context.Background(), []string{"main.catalog"})
	if err != nil {
		t.Fatalf("LoadSyncCatalogues failed: %v", err)
	}

	if !mem.HasMessageWithLevel("DEBUG", "main.catalog") {
		t.Errorf("expected a DEBUG message mentioning main.catalog, got: %s", mem.String())
	}
	if mem.CountByLevel("WARN") != 0 {
		t.Errorf("expected no WARN messages for a successful fetch, got: %s", mem.String())
	}
}

func TestBulkLoader_LogsFetchFailure(t *testing.T) {
	mem := log.NewMemoryLogger()
	bulk := NewBulkLoader(NewFixtureCatalogLoader(), 2)
	bulk.Logger = mem

	_, err := bulk.LoadSyncCatalogues(context.Background(), []string{"missing.catalog"})
	if err == nil {
		t.Fatal("expected error for missing catalogue")
	}
	if !mem.HasMessageWithLevel("WARN", "missing.catalog") {
		t.Errorf("expected a WARN message mentioning missing.catalog, got: %s", mem.String())
	}
}

func TestBulkLoader_SingleWorkerFallback(t *testing.T) {
	loader := NewFixtureCatalogLoader()
	loader.Add("a.catalog", NewPackage("a", resolver.Sync, "1.0", nil, nil, nil))

	bulk := NewBulkLoader(loader, 0)
	results, err := bulk.LoadSyncCatalogues(context.Background(), []string{"a.catalog"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0][0].Name() != "a" {
		t.Errorf("got %+v", results)
	}
}
