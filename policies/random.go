package policies

import (
	"github.com/zeu5/ttt-rl/core"
	erand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// RandomOpponent plays a uniformly random empty cell
type RandomOpponent struct {
	mark core.Mark
	rand erand.Source
}

var _ core.Opponent = &RandomOpponent{}

func NewRandomOpponent(mark core.Mark, src erand.Source) *RandomOpponent {
	return &RandomOpponent{
		mark: mark,
		rand: src,
	}
}

func (r *RandomOpponent) Mark() core.Mark {
	return r.mark
}

func (r *RandomOpponent) Move(board *core.Board) (core.Action, bool) {
	return r.pick(board.ValidActions())
}

func (r *RandomOpponent) pick(actions []core.Action) (core.Action, bool) {
	if len(actions) == 0 {
		return 0, false
	}
	weights := make([]float64, len(actions))
	for i := range weights {
		weights[i] = 1
	}
	i, ok := sampleuv.NewWeighted(weights, r.rand).Take()
	if !ok {
		return 0, false
	}
	return actions[i], true
}
