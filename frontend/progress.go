package frontend

import (
	"io"
	"sync"

	"github.com/schollz/progressbar/v3"
	"github.com/zeu5/ttt-rl/core"
)

// ProgressDisplay shows a progress bar over the episodes of the run and
// describes it with the running counters. Individual moves are not shown.
type ProgressDisplay struct {
	mtx      sync.Mutex
	bar      *progressbar.ProgressBar
	episodes int
	last     core.Stats
}

var _ core.Display = &ProgressDisplay{}

// NewProgressDisplay creates a bar over the episodes of this run. Zero episodes means an unbounded run.
func NewProgressDisplay(out io.Writer, episodes int) *ProgressDisplay {
	total := int64(episodes)
	if episodes <= 0 {
		total = -1
	}
	return &ProgressDisplay{
		bar: progressbar.NewOptions64(
			total,
			progressbar.OptionSetWriter(out),
			progressbar.OptionSetDescription("training"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetItsString("episodes"),
			progressbar.OptionShowIts(),
		),
	}
}

func (p *ProgressDisplay) OnMove(int, core.Mark) {}

func (p *ProgressDisplay) OnStatsUpdated(stats core.Stats) {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	p.episodes++
	p.last = stats
	p.bar.Describe(FormatStats(stats))
	p.bar.Set(p.episodes)
}

func (p *ProgressDisplay) OnStatusChanged(status core.Status) {
	if status == core.StatusPaused || status == core.StatusFailed {
		p.bar.Finish()
	}
}

// Episodes returns the number of episodes finished since the display was created
func (p *ProgressDisplay) Episodes() int {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	return p.episodes
}

// Last returns the most recent counters seen by the display
func (p *ProgressDisplay) Last() core.Stats {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	return p.last
}
