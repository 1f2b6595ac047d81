package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pmresolve/catalog"
	"pmresolve/config"
	"pmresolve/log"
	"pmresolve/metrics"
	"pmresolve/resolvelog"
	"pmresolve/resolver"
	"pmresolve/ui"
	"pmresolve/util"
)

var (
	flagRemove         []string
	flagIgnoreVersion  bool
	flagMaxAttempts    int
	flagMaxBacktracks  int
	flagConfigDir      string
	flagProfile        string
	flagVerbose        bool
)

// ResolveCmd is the `resolve` subcommand: `pmresolve resolve <add...>`.
var ResolveCmd = &cobra.Command{
	Use:   "resolve [packages...]",
	Short: "Resolve a set of package changes against the configured catalogues",
	Long:  `Resolve computes the package set that must be installed/kept to satisfy the requested additions and removals, disabling conflicting alternatives where necessary.`,
	RunE:  runResolve,
}

func init() {
	ResolveCmd.Flags().StringSliceVarP(&flagRemove, "remove", "r", nil, "packages to remove from the installed set")
	ResolveCmd.Flags().BoolVar(&flagIgnoreVersion, "ignore-version", false, "ignore dependency version constraints")
	ResolveCmd.Flags().IntVar(&flagMaxAttempts, "max-attempts", 0, "maximum disable attempts the solver may make (0 = unlimited)")
	ResolveCmd.Flags().IntVar(&flagMaxBacktracks, "max-backtracks", 0, "maximum backtracks the solver may make (0 = unlimited)")
	ResolveCmd.Flags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: /etc/pmresolve or ~/.config/pmresolve)")
	ResolveCmd.Flags().StringVar(&flagProfile, "profile", "", "named configuration profile to apply")
	ResolveCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "echo catalogue fetch progress to stdout")
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(flagConfigDir, flagProfile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := log.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("open logger: %w", err)
	}
	defer logger.Close()

	release, err := config.LockLocalCatalogue(cfg.LocalCatalog)
	if err != nil {
		return fmt.Errorf("lock local catalogue: %w", err)
	}
	defer release()

	loader := catalog.IniCatalogLoader{}
	localPkgs, err := loadLocal(loader, cfg.LocalCatalog)
	if err != nil {
		return fmt.Errorf("load local catalogue: %w", err)
	}
	logger.PoolLoaded(cfg.LocalCatalog, len(localPkgs))

	bulk := catalog.NewBulkLoader(loader, cfg.MaxLoaders)
	if flagVerbose {
		bulk.Logger = log.StdoutLogger{}
	}
	syncSets, err := bulk.LoadSyncCatalogues(context.Background(), cfg.SyncCatalogs)
	if err != nil {
		return fmt.Errorf("load sync catalogues: %w", err)
	}
	for i, path := range cfg.SyncCatalogs {
		logger.PoolLoaded(path, len(syncSets[i]))
	}

	localHandle := make([]resolver.Pkg, 0, len(localPkgs))
	for _, p := range localPkgs {
		localHandle = append(localHandle, p)
	}
	syncHandle := make([][]resolver.Pkg, 0, len(syncSets))
	for _, set := range syncSets {
		pkgs := make([]resolver.Pkg, 0, len(set))
		for _, p := range set {
			pkgs = append(pkgs, p)
		}
		syncHandle = append(syncHandle, pkgs)
	}

	add, remove, err := resolveArgs(args, flagRemove, localPkgs, syncSets)
	if err != nil {
		return err
	}

	assumeInstalled := make([]resolver.DependencyExpression, 0, len(cfg.AssumeInstalled))
	for _, name := range cfg.AssumeInstalled {
		assumeInstalled = append(assumeInstalled, resolver.DependencyExpression{Name: name, Mod: resolver.Any})
	}

	ignore := buildIgnorePredicate(cfg.IgnorePatterns)

	collector := metrics.NewCollector()
	budget := metrics.NewBudget(flagMaxAttempts, flagMaxBacktracks, collector)

	handle := &resolver.Handle{
		LocalPackages:   localHandle,
		SyncCatalogues:  syncHandle,
		AssumeInstalled: assumeInstalled,
		ShouldIgnore:    ignore,
		Observer:        metrics.NewObserver(collector),
	}

	var flags resolver.Flags
	if cfg.IgnoreDependencyVersion || flagIgnoreVersion {
		flags |= resolver.IgnoreDependencyVersion
	}

	var screen ui.ResolverUI
	if cfg.DisableUI {
		screen = ui.NewStdoutUI()
	} else {
		screen = ui.NewNcursesUI()
	}
	collector.AddConsumer(screen)
	if err := screen.Start(); err != nil {
		return fmt.Errorf("start ui: %w", err)
	}
	defer screen.Stop()

	start := time.Now()
	solution, resolveErr := resolver.ResolveDepsThorough(handle, add, remove, flags, catalog.Comparator{}, budget)
	elapsed := time.Since(start)

	snapshot := collector.Snapshot()
	solved := resolveErr == nil

	names := make([]string, 0, len(solution))
	for _, p := range solution {
		names = append(names, p.Name())
	}
	collector.Finish(solved, len(names))

	historyDB, dbErr := resolvelog.OpenDB(cfg.HistoryDBPath)
	if dbErr == nil {
		defer historyDB.Close()
		rec := &resolvelog.ResolutionRecord{
			ID:            resolvelog.NewID(),
			AddNames:      argNames(args),
			RemoveNames:   flagRemove,
			SolutionNames: names,
			ConflictCount: snapshot.ConflictsFound,
			Success:       solved,
			StartTime:     start,
			EndTime:       start.Add(elapsed),
		}
		if !solved {
			rec.FailureReason = resolveErr.Error()
		}
		if err := historyDB.SaveRecord(rec); err != nil {
			logger.Warn("failed to save resolution history: %v", err)
		}
	} else {
		logger.Warn("failed to open resolution history db: %v", dbErr)
	}

	if resolveErr != nil {
		logger.Unresolvable(resolveErr.Error())
		logger.WriteSummary(len(add), 0, snapshot.ConflictsFound, snapshot.Backtracks, elapsed)
		return resolveErr
	}

	ordered := resolver.OrderForInstall(solution)
	orderedNames := make([]string, 0, len(ordered))
	for _, p := range ordered {
		orderedNames = append(orderedNames, p.Name())
	}

	logger.Solution(orderedNames)
	logger.WriteSummary(len(add), len(orderedNames), snapshot.ConflictsFound, snapshot.Backtracks, elapsed)
	screen.LogSolution(orderedNames)

	fmt.Printf("\nResolved %d package(s) to install in %s:\n", len(orderedNames), util.FormatDuration(int64(elapsed.Seconds())))
	for _, name := range orderedNames {
		fmt.Printf("  %s\n", name)
	}
	return nil
}

func loadLocal(loader catalog.IniCatalogLoader, path string) ([]*catalog.Package, error) {
	if !util.FileExists(path) {
		return nil, nil
	}
	return loader.Load(path, resolver.Local)
}

// resolveArgs maps the requested add names to Pkg values found in the sync
// catalogues (preferring the first catalogue that has them, mirroring pool
// assembly order), and the requested remove names to Pkg values found in
// the local catalogue.
func resolveArgs(addNames, removeNames []string, local []*catalog.Package, syncSets [][]*catalog.Package) ([]resolver.Pkg, []resolver.Pkg, error) {
	var add []resolver.Pkg
	for _, name := range addNames {
		pkg := findByName(syncSets, name)
		if pkg == nil {
			return nil, nil, fmt.Errorf("package %q not found in any sync catalogue", name)
		}
		add = append(add, pkg)
	}

	var remove []resolver.Pkg
	for _, name := range removeNames {
		var found resolver.Pkg
		for _, p := range local {
			if p.Name() == name {
				found = p
				break
			}
		}
		if found == nil {
			return nil, nil, fmt.Errorf("package %q not found in local catalogue", name)
		}
		remove = append(remove, found)
	}

	return add, remove, nil
}

func findByName(syncSets [][]*catalog.Package, name string) resolver.Pkg {
	for _, set := range syncSets {
		for _, p := range set {
			if p.Name() == name {
				return p
			}
		}
	}
	return nil
}

func buildIgnorePredicate(patterns []string) func(resolver.Pkg) bool {
	if len(patterns) == 0 {
		return nil
	}
	set := make(map[string]bool, len(patterns))
	for _, p := range patterns {
		set[p] = true
	}
	return func(pkg resolver.Pkg) bool {
		return set[pkg.Name()]
	}
}

func argNames(args []string) []string {
	out := make([]string, len(args))
	copy(out, args)
	return out
}
