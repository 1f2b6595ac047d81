// Package config loads pmresolve's configuration: where to find the local
// and sync package catalogues, the assume-installed list, ignore patterns,
// and resolver behavior flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sys/unix"
	"gopkg.in/ini.v1"
)

// Config holds all pmresolve configuration.
type Config struct {
	// Paths
	ConfigPath      string
	LocalCatalog    string   // path to the installed-package catalogue
	SyncCatalogs    []string // ordered paths to available-package catalogues
	LogsPath        string
	HistoryDBPath   string

	// Resolver behavior
	AssumeInstalled         []string // virtual package names treated as always satisfied (any version)
	IgnorePatterns          []string // package names never offered as sync satisfiers
	IgnoreDependencyVersion bool     // default value of the IGNORE_DEPENDENCY_VERSION flag

	// Loader settings
	MaxLoaders int // parallel workers used to load sync catalogues

	// Behavior
	Debug     bool
	DisableUI bool

	// Profile
	Profile string
}

// LoadConfig loads configuration from an ini file under configDir, applying
// profile-scoped overrides the way the teacher's dsynth.ini does: a section
// whose name matches the profile wins, everything else is global.
func LoadConfig(configDir string, profile string) (*Config, error) {
	cfg := &Config{
		Profile:    profile,
		MaxLoaders: runtime.NumCPU(),
	}

	if configDir == "" {
		if _, err := os.Stat("/etc/pmresolve"); err == nil {
			configDir = "/etc/pmresolve"
		} else {
			configDir = filepath.Join(os.Getenv("HOME"), ".config", "pmresolve")
		}
	}
	cfg.ConfigPath = configDir

	configFile := filepath.Join(configDir, "pmresolve.ini")
	if _, err := os.Stat(configFile); err == nil {
		if err := cfg.parseINI(configFile); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if cfg.LocalCatalog == "" {
		cfg.LocalCatalog = filepath.Join(configDir, "local.catalog")
	}
	if cfg.LogsPath == "" {
		cfg.LogsPath = filepath.Join(configDir, "logs")
	}
	if cfg.HistoryDBPath == "" {
		cfg.HistoryDBPath = filepath.Join(configDir, "resolutions.db")
	}
	if cfg.MaxLoaders < 1 {
		cfg.MaxLoaders = 1
	}

	return cfg, nil
}

// parseINI parses a pmresolve.ini configuration file using gopkg.in/ini.v1.
// Keys under [Global] always apply; keys under a section matching the
// active profile (case-insensitively) override them.
func (cfg *Config) parseINI(filename string) error {
	f, err := ini.Load(filename)
	if err != nil {
		return err
	}

	sections := []string{"Global"}
	if cfg.Profile != "" {
		for _, name := range f.SectionStrings() {
			if strings.EqualFold(name, cfg.Profile) {
				sections = append(sections, name)
			}
		}
	}

	for _, name := range sections {
		if !f.HasSection(name) {
			continue
		}
		sec := f.Section(name)
		cfg.applySection(sec)
	}

	return nil
}

func (cfg *Config) applySection(sec *ini.Section) {
	if sec.HasKey("Local_catalog") {
		cfg.LocalCatalog = sec.Key("Local_catalog").String()
	}
	if sec.HasKey("Sync_catalogs") {
		cfg.SyncCatalogs = splitList(sec.Key("Sync_catalogs").String())
	}
	if sec.HasKey("Logs_path") {
		cfg.LogsPath = sec.Key("Logs_path").String()
	}
	if sec.HasKey("History_db") {
		cfg.HistoryDBPath = sec.Key("History_db").String()
	}
	if sec.HasKey("Assume_installed") {
		cfg.AssumeInstalled = splitList(sec.Key("Assume_installed").String())
	}
	if sec.HasKey("Ignore_patterns") {
		cfg.IgnorePatterns = splitList(sec.Key("Ignore_patterns").String())
	}
	if sec.HasKey("Ignore_dependency_version") {
		cfg.IgnoreDependencyVersion = sec.Key("Ignore_dependency_version").MustBool(false)
	}
	if sec.HasKey("Max_loaders") {
		cfg.MaxLoaders = sec.Key("Max_loaders").MustInt(cfg.MaxLoaders)
	}
	if sec.HasKey("Debug") {
		cfg.Debug = sec.Key("Debug").MustBool(false)
	}
	if sec.HasKey("Disable_ui") {
		cfg.DisableUI = sec.Key("Disable_ui").MustBool(false)
	}
}

func splitList(value string) []string {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// SaveConfig writes cfg to filename in ini format, mirroring the layout
// LoadConfig understands (a single [Global] section).
func SaveConfig(filename string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return err
	}

	f := ini.Empty()
	sec, err := f.NewSection("Global")
	if err != nil {
		return err
	}

	sec.NewKey("Local_catalog", cfg.LocalCatalog)
	sec.NewKey("Sync_catalogs", strings.Join(cfg.SyncCatalogs, ","))
	sec.NewKey("Logs_path", cfg.LogsPath)
	sec.NewKey("History_db", cfg.HistoryDBPath)
	sec.NewKey("Assume_installed", strings.Join(cfg.AssumeInstalled, ","))
	sec.NewKey("Ignore_patterns", strings.Join(cfg.IgnorePatterns, ","))
	sec.NewKey("Ignore_dependency_version", fmt.Sprintf("%v", cfg.IgnoreDependencyVersion))
	sec.NewKey("Max_loaders", fmt.Sprintf("%d", cfg.MaxLoaders))
	sec.NewKey("Debug", fmt.Sprintf("%v", cfg.Debug))
	sec.NewKey("Disable_ui", fmt.Sprintf("%v", cfg.DisableUI))

	if err := f.SaveTo(filename); err != nil {
		return err
	}
	cfg.ConfigPath = filepath.Dir(filename)
	return nil
}

// Validate checks configuration validity before a resolution is attempted.
func (cfg *Config) Validate() error {
	if cfg.LocalCatalog == "" {
		return fmt.Errorf("LocalCatalog is not configured")
	}
	if cfg.MaxLoaders < 1 {
		return fmt.Errorf("MaxLoaders must be at least 1")
	}
	if err := os.MkdirAll(cfg.LogsPath, 0755); err != nil {
		return fmt.Errorf("cannot create logs directory %s: %w", cfg.LogsPath, err)
	}
	return nil
}

// LockLocalCatalogue takes an advisory exclusive flock on the local
// catalogue file for the duration of a resolution, so a concurrent
// transaction engine cannot mutate installed-package state mid-resolve.
// Returns a release function that must be called when the resolution ends.
func LockLocalCatalogue(path string) (func() error, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_CREAT, 0644)
	if err != nil {
		return nil, fmt.Errorf("open %s for locking: %w", path, err)
	}
	if err := unix.Flock(fd, unix.LOCK_EX); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("flock %s: %w", path, err)
	}
	return func() error {
		defer unix.Close(fd)
		return unix.Flock(fd, unix.LOCK_UN)
	}, nil
}

// GetSystemInfo returns basic host information, used in diagnostic logging.
func GetSystemInfo() (osname, osversion, arch string, ncpus int) {
	var utsname unix.Utsname
	if err := unix.Uname(&utsname); err == nil {
		osname = strings.TrimRight(string(utsname.Sysname[:]), "\x00")
		osversion = strings.TrimRight(string(utsname.Release[:]), "\x00")
		arch = strings.TrimRight(string(utsname.Machine[:]), "\x00")
	}
	ncpus = runtime.NumCPU()
	return
}
