package ui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"pmresolve/metrics"
)

// NcursesUI implements ResolverUI using tview/tcell for a rich TUI,
// adapted from the teacher's NcursesUI: the worker-events pane becomes a
// solver-decisions pane, and the progress pane shows graph/conflict
// counters instead of build totals.
type NcursesUI struct {
	app           *tview.Application
	headerText    *tview.TextView
	progressText  *tview.TextView
	eventsText    *tview.TextView
	layout        *tview.Flex
	mu            sync.Mutex
	eventLines    []string
	maxEventLines int
	stopped       bool
	onInterrupt   func()
}

// NewNcursesUI creates a new ncurses-based UI.
func NewNcursesUI() *NcursesUI {
	return &NcursesUI{maxEventLines: 200}
}

// SetInterruptHandler sets a callback invoked when Ctrl+C or 'q' is pressed.
func (ui *NcursesUI) SetInterruptHandler(handler func()) {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	ui.onInterrupt = handler
}

func (ui *NcursesUI) Start() error {
	ui.mu.Lock()
	defer ui.mu.Unlock()

	ui.app = tview.NewApplication()

	ui.headerText = tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignLeft)
	ui.headerText.SetBorder(true).SetTitle(" pmresolve ").SetTitleAlign(tview.AlignLeft)
	ui.headerText.SetText("[yellow]Resolving...[white]")

	ui.progressText = tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignLeft)
	ui.progressText.SetBorder(true).SetTitle(" Graph ").SetTitleAlign(tview.AlignLeft)
	ui.progressText.SetText("Waiting for resolution to start...")

	ui.eventsText = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetChangedFunc(func() { ui.app.Draw() })
	ui.eventsText.SetBorder(true).SetTitle(" Decisions ").SetTitleAlign(tview.AlignLeft)
	ui.eventsText.SetText("No decisions yet...")

	ui.layout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(ui.headerText, 3, 0, false).
		AddItem(ui.progressText, 5, 0, false).
		AddItem(ui.eventsText, 0, 1, false)

	ui.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		interrupted := event.Key() == tcell.KeyCtrlC ||
			(event.Key() == tcell.KeyRune && (event.Rune() == 'q' || event.Rune() == 'Q'))
		if !interrupted {
			return event
		}
		ui.app.Stop()
		ui.mu.Lock()
		handler := ui.onInterrupt
		ui.mu.Unlock()
		if handler != nil {
			go handler()
		}
		return nil
	})

	go func() {
		ui.app.SetRoot(ui.layout, true).EnableMouse(true).Run()
	}()

	time.Sleep(100 * time.Millisecond)
	return nil
}

func (ui *NcursesUI) Stop() {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	if ui.stopped {
		return
	}
	ui.stopped = true
	if ui.app != nil {
		ui.app.Stop()
	}
	time.Sleep(100 * time.Millisecond)
}

func (ui *NcursesUI) LogEvent(message string) {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	if ui.app == nil || ui.stopped {
		return
	}

	timestamp := time.Now().Format("15:04:05")
	ui.eventLines = append(ui.eventLines, fmt.Sprintf("[%s] %s", timestamp, message))
	if len(ui.eventLines) > ui.maxEventLines {
		ui.eventLines = ui.eventLines[1:]
	}

	text := strings.Join(ui.eventLines, "\n")
	ui.app.QueueUpdateDraw(func() {
		ui.eventsText.SetText(text)
		ui.eventsText.ScrollToEnd()
	})
}

func (ui *NcursesUI) LogSolution(names []string) {
	ui.LogEvent(fmt.Sprintf("[green]solution:[white] %s", strings.Join(names, " ")))
}

func (ui *NcursesUI) OnStatsUpdate(info metrics.SolveStats) {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	if ui.app == nil || ui.stopped {
		return
	}

	header := fmt.Sprintf("[yellow]Pool:[white] %d  [yellow]Elapsed:[white] %s",
		info.PoolSize, metrics.FormatDuration(info.Elapsed))
	progress := fmt.Sprintf(
		"[green]Nodes:[white]       %3d\n"+
			"[yellow]Conflicts:[white]   %3d\n"+
			"[red]Disabled:[white]    %3d/%3d\n"+
			"[yellow]Backtracks:[white] %3d",
		info.GraphNodes, info.ConflictsFound, info.DisablesCommitted, info.DisablesAttempted, info.Backtracks,
	)

	ui.app.QueueUpdateDraw(func() {
		ui.headerText.SetText(header)
		ui.progressText.SetText(progress)
	})
}
