package analysis

import (
	"bytes"
	"fmt"
	"os"
	"path"

	"github.com/golang/glog"
	"github.com/zeu5/ttt-rl/core"
)

// TraceAnalyzer dumps the learner's moves of every episode past the threshold
type TraceAnalyzer struct {
	savePath string
	// will save the trace to the file only after the episode number exceeds this threshold
	thresholdEpisode int
	written          int
}

var _ core.Analyzer = &TraceAnalyzer{}

func NewTraceAnalyzer(savePath string, threshold int) *TraceAnalyzer {
	return &TraceAnalyzer{
		savePath:         path.Join(savePath, "traces"),
		thresholdEpisode: threshold,
	}
}

func (a *TraceAnalyzer) Analyze(ctx *core.EpisodeContext) {
	if ctx.Episode < a.thresholdEpisode || ctx.Trace == nil {
		return
	}
	buf := new(bytes.Buffer)
	fmt.Fprintf(buf, "Episode %d: %s in %d moves, epsilon %.5f\n\n", ctx.Episode, ctx.Result.Outcome, ctx.Result.Moves, ctx.Epsilon)
	for i := 0; i < ctx.Trace.Len(); i++ {
		step := ctx.Trace.Step(i)
		fmt.Fprintf(buf, "Step %d\n%s\nAction: %d\n\n", i, core.BoardFromState(step.State), step.Action)
	}
	if ctx.Board != nil {
		fmt.Fprintf(buf, "Final\n%s\n", ctx.Board)
	}

	if err := os.MkdirAll(a.savePath, 0755); err != nil {
		glog.Warningf("failed to create %s: %s", a.savePath, err)
		return
	}
	file := path.Join(a.savePath, fmt.Sprintf("%s_trace_%d.txt", ctx.Session, ctx.Episode))
	if err := os.WriteFile(file, buf.Bytes(), 0644); err != nil {
		glog.Warningf("failed to write trace %s: %s", file, err)
		return
	}
	a.written++
}

// Written returns the number of traces saved since the last reset
func (a *TraceAnalyzer) Written() int {
	return a.written
}

func (a *TraceAnalyzer) DataSet() core.DataSet {
	return nil
}

func (a *TraceAnalyzer) Reset() {
	a.written = 0
}
