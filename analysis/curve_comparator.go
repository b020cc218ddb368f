package analysis

import (
	"os"
	"path"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/zeu5/ttt-rl/core"
	"github.com/zeu5/ttt-rl/util"
)

// CurveComparator writes the datasets of a session as JSON and renders the
// outcome curves into an HTML page.
type CurveComparator struct {
	savePath string
}

var _ core.Comparator = &CurveComparator{}

func NewCurveComparator(savePath string) *CurveComparator {
	return &CurveComparator{
		savePath: savePath,
	}
}

func (c *CurveComparator) Compare(session string, datasets map[string]core.DataSet) error {
	dir := path.Join(c.savePath, session)
	if err := util.SaveJson(path.Join(dir, "datasets.json"), datasets); err != nil {
		return errors.Wrapf(err, "failed to save datasets for session %s", session)
	}

	page := components.NewPage()
	added := 0
	for name, ds := range datasets {
		outcomes, ok := ds.(*outcomeDataset)
		if !ok || outcomes.Len() == 0 {
			continue
		}
		page.AddCharts(outcomeChart(name, outcomes))
		added++
	}
	if added == 0 {
		return nil
	}

	file := path.Join(dir, "learning_curve.html")
	f, err := os.Create(file)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", file)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		return errors.Wrapf(err, "failed to render %s", file)
	}
	glog.Infof("session %s: learning curve written to %s", session, file)
	return nil
}

func outcomeChart(name string, ds *outcomeDataset) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: name,
		}),
	)

	xs := make([]string, 0, ds.Len())
	for _, e := range ds.Episodes {
		xs = append(xs, strconv.Itoa(e))
	}
	line.SetXAxis(xs).
		AddSeries("win rate", lineData(ds.WinRate)).
		AddSeries("draw rate", lineData(ds.DrawRate)).
		AddSeries("loss rate", lineData(ds.LossRate)).
		AddSeries("epsilon", lineData(ds.Epsilon))
	return line
}

func lineData(values []float64) []opts.LineData {
	items := make([]opts.LineData, 0, len(values))
	for _, v := range values {
		items = append(items, opts.LineData{Value: v})
	}
	return items
}
