package frontend

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/logrusorgru/aurora"
	"github.com/zeu5/ttt-rl/core"
	"github.com/zeu5/ttt-rl/util"
)

// TerminalDisplay redraws the current board, the status and the counters in place
type TerminalDisplay struct {
	mtx     sync.Mutex
	au      aurora.Aurora
	printer *util.TerminalPrinter

	status *util.Line
	rows   [3]*util.Line
	stats  *util.Line

	cells    [core.BoardSize]core.Mark
	gameOver bool
}

var _ core.Display = &TerminalDisplay{}

func NewTerminalDisplay(out io.Writer, refresh time.Duration, colors bool) *TerminalDisplay {
	d := &TerminalDisplay{
		au:      aurora.NewAurora(colors),
		printer: util.NewTerminalPrinter(out, refresh),
	}
	d.status = d.printer.NewLine()
	for i := range d.rows {
		d.rows[i] = d.printer.NewLine()
	}
	d.stats = d.printer.NewLine()

	d.clear()
	d.status.Set(FormatStatus(d.au, core.StatusIdle))
	d.stats.Set(FormatStats(core.Stats{}))
	return d
}

func (d *TerminalDisplay) Start(ctx context.Context) {
	d.printer.Start(ctx)
}

func (d *TerminalDisplay) Stop() {
	d.printer.Stop()
}

func (d *TerminalDisplay) OnMove(cell int, mark core.Mark) {
	d.mtx.Lock()
	defer d.mtx.Unlock()
	if d.gameOver {
		d.clear()
	}
	if cell < 0 || cell >= core.BoardSize {
		return
	}
	d.cells[cell] = mark
	d.render()
}

// OnStatsUpdated is called once per finished episode. The final board stays on
// screen until the next move.
func (d *TerminalDisplay) OnStatsUpdated(stats core.Stats) {
	d.mtx.Lock()
	defer d.mtx.Unlock()
	d.gameOver = true
	d.stats.TrySet(FormatStats(stats))
}

func (d *TerminalDisplay) OnStatusChanged(status core.Status) {
	d.status.Set(FormatStatus(d.au, status))
}

// Cells returns the board as currently shown
func (d *TerminalDisplay) Cells() [core.BoardSize]core.Mark {
	d.mtx.Lock()
	defer d.mtx.Unlock()
	return d.cells
}

func (d *TerminalDisplay) clear() {
	for i := range d.cells {
		d.cells[i] = core.Empty
	}
	d.gameOver = false
	d.render()
}

func (d *TerminalDisplay) render() {
	for i, row := range BoardRows(d.au, d.cells) {
		d.rows[i].TrySet(row)
	}
}
