package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/ini.v1"
)

func TestLoadConfigDefaults(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := LoadConfig(filepath.Join(tmpDir, "nonexistent"), "default")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if cfg.MaxLoaders < 1 {
		t.Fatalf("MaxLoaders = %d, want >= 1", cfg.MaxLoaders)
	}
	if cfg.LocalCatalog == "" {
		t.Fatal("LocalCatalog default not set")
	}
	if cfg.HistoryDBPath == "" {
		t.Fatal("HistoryDBPath default not set")
	}
}

func TestLoadConfigParsesGlobalSection(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "pmresolve.ini")

	contents := `[Global]
Local_catalog = /var/db/pmresolve/local.catalog
Sync_catalogs = /var/db/pmresolve/main.catalog, /var/db/pmresolve/extra.catalog
Assume_installed = libc.so
Ignore_patterns = obsolete-pkg
Ignore_dependency_version = true
Max_loaders = 8
`
	if err := writeFile(configFile, contents); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(tmpDir, "default")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if cfg.LocalCatalog != "/var/db/pmresolve/local.catalog" {
		t.Errorf("LocalCatalog = %q", cfg.LocalCatalog)
	}
	if len(cfg.SyncCatalogs) != 2 {
		t.Fatalf("SyncCatalogs = %v, want 2 entries", cfg.SyncCatalogs)
	}
	if !cfg.IgnoreDependencyVersion {
		t.Error("IgnoreDependencyVersion should be true")
	}
	if cfg.MaxLoaders != 8 {
		t.Errorf("MaxLoaders = %d, want 8", cfg.MaxLoaders)
	}
	if len(cfg.AssumeInstalled) != 1 || cfg.AssumeInstalled[0] != "libc.so" {
		t.Errorf("AssumeInstalled = %v", cfg.AssumeInstalled)
	}
}

func TestLoadConfigProfileOverride(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "pmresolve.ini")

	contents := `[Global]
Max_loaders = 4

[staging]
Max_loaders = 16
`
	if err := writeFile(configFile, contents); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(tmpDir, "staging")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if cfg.MaxLoaders != 16 {
		t.Errorf("MaxLoaders = %d, want profile override 16", cfg.MaxLoaders)
	}
}

func TestSaveConfigWritesIni(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := &Config{
		Profile:                 "default",
		LocalCatalog:            filepath.Join(tmpDir, "local.catalog"),
		SyncCatalogs:            []string{filepath.Join(tmpDir, "main.catalog")},
		LogsPath:                filepath.Join(tmpDir, "logs"),
		HistoryDBPath:           filepath.Join(tmpDir, "resolutions.db"),
		IgnoreDependencyVersion: true,
		MaxLoaders:              4,
	}

	configPath := filepath.Join(tmpDir, "etc", "pmresolve", "pmresolve.ini")
	if err := SaveConfig(configPath, cfg); err != nil {
		t.Fatalf("SaveConfig() failed: %v", err)
	}

	iniFile, err := ini.Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load saved config: %v", err)
	}

	sec := iniFile.Section("Global")
	if sec.Key("Local_catalog").String() != cfg.LocalCatalog {
		t.Fatalf("Local_catalog mismatch: %s", sec.Key("Local_catalog").String())
	}
	if got := sec.Key("Max_loaders").String(); got != "4" {
		t.Fatalf("Max_loaders mismatch: %s", got)
	}
	if got := sec.Key("Ignore_dependency_version").String(); got != "true" {
		t.Fatalf("Ignore_dependency_version mismatch: %s", got)
	}

	if cfg.ConfigPath != filepath.Dir(configPath) {
		t.Fatalf("ConfigPath not updated, got %s", cfg.ConfigPath)
	}
}

func TestValidateRequiresLocalCatalog(t *testing.T) {
	cfg := &Config{MaxLoaders: 1, LogsPath: filepath.Join(t.TempDir(), "logs")}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing LocalCatalog")
	}
}

func writeFile(path, contents string) error {
	return os.WriteFile(path, []byte(contents), 0644)
}
