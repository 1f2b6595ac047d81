// Package ui displays resolution progress: pool assembly counts, graph
// nodes added, conflicts found/resolved, and the final ordered solution.
// Adapted from the teacher's build package (BuildUI/StdoutUI/NcursesUI),
// which showed worker-slot build progress; here the same shapes show
// solver decisions instead.
package ui

import "pmresolve/metrics"

// ResolverUI is the interface for displaying resolution progress.
// Implementations may be stdout (default), ncurses, or anything else a
// caller wants to wire in — renamed from the teacher's BuildUI.
type ResolverUI interface {
	// Start initializes the UI (e.g. sets up the ncurses screen).
	Start() error

	// Stop cleanly shuts down the UI (e.g. restores the terminal).
	Stop()

	// LogEvent logs a single resolution decision, e.g.
	// "added node devel/pkgconf" or "disabled X2 (conflicts with X1)".
	LogEvent(message string)

	// LogSolution renders the final ordered solution.
	LogSolution(names []string)

	// OnStatsUpdate receives a metrics.SolveStats snapshot at every solver
	// decision point; part of the metrics.StatsConsumer interface.
	OnStatsUpdate(info metrics.SolveStats)
}
