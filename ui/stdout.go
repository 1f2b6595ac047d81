package ui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"pmresolve/metrics"
)

// StdoutUI implements ResolverUI using plain stdout output, grounded on the
// teacher's StdoutUI.
type StdoutUI struct {
	mu        sync.Mutex
	lastPrint time.Time
}

// NewStdoutUI creates a new stdout-based UI.
func NewStdoutUI() *StdoutUI {
	return &StdoutUI{}
}

func (ui *StdoutUI) Start() error { return nil }

func (ui *StdoutUI) Stop() {
	fmt.Println()
}

func (ui *StdoutUI) LogEvent(message string) {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	fmt.Printf("\r%-80s\n", message)
}

func (ui *StdoutUI) LogSolution(names []string) {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	fmt.Printf("Solution (%d packages): %s\n", len(names), strings.Join(names, " "))
}

// OnStatsUpdate prints a condensed status line, throttled to every 200ms
// since a resolution is synchronous and typically sub-second (the
// teacher's analogous 5-second throttle on a minutes-long build is scaled
// down accordingly).
func (ui *StdoutUI) OnStatsUpdate(info metrics.SolveStats) {
	ui.mu.Lock()
	defer ui.mu.Unlock()

	now := time.Now()
	if !info.Solved && info.SolutionSize == 0 && now.Sub(ui.lastPrint) < 200*time.Millisecond {
		return
	}
	ui.lastPrint = now

	statusLine := fmt.Sprintf("\r[%s] pool=%d nodes=%d conflicts=%d disables=%d/%d backtracks=%d",
		metrics.FormatDuration(info.Elapsed), info.PoolSize, info.GraphNodes,
		info.ConflictsFound, info.DisablesCommitted, info.DisablesAttempted, info.Backtracks)
	fmt.Printf("%-100s\n", statusLine)
}
