package log

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"pmresolve/config"
)

// Logger writes one file per resolution phase under cfg.LogsPath: pool
// assembly, graph construction, conflicts found, solver decisions, and the
// final solution, plus a running results digest and a debug log.
type Logger struct {
	cfg          *config.Config
	resultsFile  *os.File
	poolFile     *os.File
	graphFile    *os.File
	conflictFile *os.File
	solverFile   *os.File
	solutionFile *os.File
	debugFile    *os.File
	mu           sync.Mutex
}

// NewLogger creates a new logger, opening one file per resolution phase.
func NewLogger(cfg *config.Config) (*Logger, error) {
	if err := os.MkdirAll(cfg.LogsPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	l := &Logger{cfg: cfg}

	var err error
	if l.resultsFile, err = os.Create(filepath.Join(cfg.LogsPath, "00_resolution.log")); err != nil {
		return nil, err
	}
	if l.poolFile, err = os.Create(filepath.Join(cfg.LogsPath, "01_pool_assembly.log")); err != nil {
		return nil, err
	}
	if l.graphFile, err = os.Create(filepath.Join(cfg.LogsPath, "02_graph_construction.log")); err != nil {
		return nil, err
	}
	if l.conflictFile, err = os.Create(filepath.Join(cfg.LogsPath, "03_conflicts_found.log")); err != nil {
		return nil, err
	}
	if l.solverFile, err = os.Create(filepath.Join(cfg.LogsPath, "04_solver_decisions.log")); err != nil {
		return nil, err
	}
	if l.solutionFile, err = os.Create(filepath.Join(cfg.LogsPath, "05_solution.log")); err != nil {
		return nil, err
	}
	if l.debugFile, err = os.Create(filepath.Join(cfg.LogsPath, "06_debug.log")); err != nil {
		return nil, err
	}

	l.writeHeaders()
	return l, nil
}

// Close closes all log files.
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, f := range []*os.File{l.resultsFile, l.poolFile, l.graphFile, l.conflictFile, l.solverFile, l.solutionFile, l.debugFile} {
		if f != nil {
			f.Close()
		}
	}
}

func (l *Logger) writeHeaders() {
	timestamp := time.Now().Format(time.RFC3339)

	fmt.Fprintf(l.resultsFile, "pmresolve resolution log - %s\n", timestamp)
	fmt.Fprintf(l.resultsFile, "%s\n\n", strings.Repeat("=", 70))

	fmt.Fprintf(l.poolFile, "Pool assembly - %s\n\n", timestamp)
	fmt.Fprintf(l.graphFile, "Graph construction - %s\n\n", timestamp)
	fmt.Fprintf(l.conflictFile, "Conflicts found - %s\n\n", timestamp)
	fmt.Fprintf(l.solverFile, "Solver decisions - %s\n\n", timestamp)
	fmt.Fprintf(l.solutionFile, "Final solution - %s\n\n", timestamp)
	fmt.Fprintf(l.debugFile, "Debug log - %s\n\n", timestamp)
}

// PoolLoaded records a catalogue having been added to the resolution pool.
func (l *Logger) PoolLoaded(catalog string, count int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("15:04:05")
	msg := fmt.Sprintf("[%s] loaded %d packages from %s\n", timestamp, count, catalog)

	l.resultsFile.WriteString(msg)
	l.poolFile.WriteString(msg)
	l.resultsFile.Sync()
	l.poolFile.Sync()
}

// NodeAdded records a graph node being created for a package.
func (l *Logger) NodeAdded(pkgName, reason string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("15:04:05")
	l.graphFile.WriteString(fmt.Sprintf("[%s] node: %s (%s)\n", timestamp, pkgName, reason))
	l.graphFile.Sync()
}

// ConflictFound logs a detected conflict between two packages.
func (l *Logger) ConflictFound(pkg1, pkg2 string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("15:04:05")
	msg := fmt.Sprintf("[%s] CONFLICT: %s <-> %s\n", timestamp, pkg1, pkg2)

	l.resultsFile.WriteString(msg)
	l.conflictFile.WriteString(msg)
	l.resultsFile.Sync()
	l.conflictFile.Sync()
}

// SolverDecision logs one disable/backtrack decision made by the solver.
func (l *Logger) SolverDecision(action, pkgName string, depth int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("15:04:05")
	l.solverFile.WriteString(fmt.Sprintf("[%s] depth=%d %s: %s\n", timestamp, depth, action, pkgName))
	l.solverFile.Sync()
}

// Unresolvable logs that the solver could not find a solution.
func (l *Logger) Unresolvable(reason string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("15:04:05")
	msg := fmt.Sprintf("[%s] UNRESOLVABLE: %s\n", timestamp, reason)

	l.resultsFile.WriteString(msg)
	l.solverFile.WriteString(msg)
	l.resultsFile.Sync()
	l.solverFile.Sync()
}

// Solution logs the final ordered set of packages to install/keep.
func (l *Logger) Solution(names []string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("15:04:05")
	fmt.Fprintf(l.solutionFile, "[%s] %d packages:\n", timestamp, len(names))
	for _, name := range names {
		fmt.Fprintf(l.solutionFile, "  %s\n", name)
	}
	l.solutionFile.Sync()

	l.resultsFile.WriteString(fmt.Sprintf("[%s] RESOLVED: %d packages\n", timestamp, len(names)))
	l.resultsFile.Sync()
}

// Debug logs debug information.
func (l *Logger) Debug(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("15:04:05")
	l.debugFile.WriteString(fmt.Sprintf("[%s] %s\n", timestamp, fmt.Sprintf(format, args...)))
	l.debugFile.Sync()
}

// Error logs an error message to both the results and debug logs.
func (l *Logger) Error(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("15:04:05")
	errMsg := fmt.Sprintf("[%s] ERROR: %s\n", timestamp, fmt.Sprintf(format, args...))

	l.resultsFile.WriteString(errMsg)
	l.debugFile.WriteString(errMsg)
	l.resultsFile.Sync()
	l.debugFile.Sync()
}

// Info logs an informational message to the results log.
func (l *Logger) Info(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("15:04:05")
	l.resultsFile.WriteString(fmt.Sprintf("[%s] INFO: %s\n", timestamp, fmt.Sprintf(format, args...)))
	l.resultsFile.Sync()
}

// Warn logs a warning message to both the results and debug logs.
func (l *Logger) Warn(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("15:04:05")
	msg := fmt.Sprintf(format, args...)
	warnMsg := fmt.Sprintf("[%s] WARN: %s\n", timestamp, msg)

	l.resultsFile.WriteString(warnMsg)
	l.debugFile.WriteString(warnMsg)
	l.resultsFile.Sync()
	l.debugFile.Sync()
}

// WriteSummary writes a summary of the resolution to the results log.
func (l *Logger) WriteSummary(requested, resolved, conflicts, backtracks int, duration time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.resultsFile, "\n%s\n", strings.Repeat("=", 70))
	fmt.Fprintf(l.resultsFile, "RESOLUTION SUMMARY\n")
	fmt.Fprintf(l.resultsFile, "%s\n", strings.Repeat("=", 70))
	fmt.Fprintf(l.resultsFile, "Requested packages: %d\n", requested)
	fmt.Fprintf(l.resultsFile, "Resolved packages:  %d\n", resolved)
	fmt.Fprintf(l.resultsFile, "Conflicts found:    %d\n", conflicts)
	fmt.Fprintf(l.resultsFile, "Backtracks:         %d\n", backtracks)
	fmt.Fprintf(l.resultsFile, "Duration:           %s\n", duration)
	fmt.Fprintf(l.resultsFile, "%s\n", strings.Repeat("=", 70))

	l.resultsFile.Sync()
}
