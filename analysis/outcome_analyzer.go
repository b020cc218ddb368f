package analysis

import (
	"github.com/idsulik/go-collections/v3/queue"
	"github.com/zeu5/ttt-rl/core"
	"github.com/zeu5/ttt-rl/util"
	"gonum.org/v1/gonum/stat"
)

type outcomeDataset struct {
	Episodes []int
	WinRate  []float64
	DrawRate []float64
	LossRate []float64
	Epsilon  []float64
}

func (o *outcomeDataset) Copy() *outcomeDataset {
	return &outcomeDataset{
		Episodes: util.CopyIntSlice(o.Episodes),
		WinRate:  util.CopyFloatSlice(o.WinRate),
		DrawRate: util.CopyFloatSlice(o.DrawRate),
		LossRate: util.CopyFloatSlice(o.LossRate),
		Epsilon:  util.CopyFloatSlice(o.Epsilon),
	}
}

func (o *outcomeDataset) Len() int {
	return len(o.Episodes)
}

// OutcomeAnalyzer tracks win/draw/loss rates over a sliding window of counted games
// and records a sample every window games.
type OutcomeAnalyzer struct {
	window  int
	recent  *queue.Queue[core.Outcome]
	games   int
	dataset *outcomeDataset
}

var _ core.Analyzer = &OutcomeAnalyzer{}

func NewOutcomeAnalyzer(window int) *OutcomeAnalyzer {
	if window <= 0 {
		window = 1
	}
	return &OutcomeAnalyzer{
		window:  window,
		recent:  queue.New[core.Outcome](window),
		dataset: newOutcomeDataset(),
	}
}

func newOutcomeDataset() *outcomeDataset {
	return &outcomeDataset{
		Episodes: make([]int, 0),
		WinRate:  make([]float64, 0),
		DrawRate: make([]float64, 0),
		LossRate: make([]float64, 0),
		Epsilon:  make([]float64, 0),
	}
}

func (o *OutcomeAnalyzer) Reset() {
	o.recent = queue.New[core.Outcome](o.window)
	o.games = 0
	o.dataset = newOutcomeDataset()
}

func (o *OutcomeAnalyzer) Analyze(eCtx *core.EpisodeContext) {
	if eCtx.Result.Outcome == core.Aborted {
		return
	}
	if o.recent.Len() >= o.window {
		o.recent.Dequeue()
	}
	o.recent.Enqueue(eCtx.Result.Outcome)
	o.games++
	if o.games%o.window != 0 {
		return
	}
	win, draw, loss := o.Rates()
	o.dataset.Episodes = append(o.dataset.Episodes, eCtx.Episode+1)
	o.dataset.WinRate = append(o.dataset.WinRate, win)
	o.dataset.DrawRate = append(o.dataset.DrawRate, draw)
	o.dataset.LossRate = append(o.dataset.LossRate, loss)
	o.dataset.Epsilon = append(o.dataset.Epsilon, eCtx.Epsilon)
}

// Rates returns the win, draw and loss fractions of the current window
func (o *OutcomeAnalyzer) Rates() (float64, float64, float64) {
	n := o.recent.Len()
	if n == 0 {
		return 0, 0, 0
	}
	wins := make([]float64, 0, n)
	draws := make([]float64, 0, n)
	losses := make([]float64, 0, n)
	o.recent.ForEach(func(out core.Outcome) {
		wins = append(wins, indicator(out == core.Win))
		draws = append(draws, indicator(out == core.Draw))
		losses = append(losses, indicator(out == core.Loss))
	})
	return stat.Mean(wins, nil), stat.Mean(draws, nil), stat.Mean(losses, nil)
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func (o *OutcomeAnalyzer) DataSet() core.DataSet {
	return o.dataset.Copy()
}
