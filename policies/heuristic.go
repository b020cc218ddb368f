package policies

import (
	"github.com/zeu5/ttt-rl/core"
	erand "golang.org/x/exp/rand"
)

var (
	corners = []core.Action{0, 2, 6, 8}
	center  = core.Action(4)
	sides   = []core.Action{1, 3, 5, 7}
)

// HeuristicOpponent is the deterministic rule based sparring partner:
// win, block, corner, center, side, then random.
type HeuristicOpponent struct {
	mark     core.Mark
	fallback *RandomOpponent
}

var _ core.Opponent = &HeuristicOpponent{}

func NewHeuristicOpponent(mark core.Mark, src erand.Source) *HeuristicOpponent {
	return &HeuristicOpponent{
		mark:     mark,
		fallback: NewRandomOpponent(mark, src),
	}
}

func (h *HeuristicOpponent) Mark() core.Mark {
	return h.mark
}

func (h *HeuristicOpponent) Move(board *core.Board) (core.Action, bool) {
	empty := board.ValidActions()
	if len(empty) == 0 {
		return 0, false
	}

	if a, ok := completesLine(board, empty, h.mark); ok {
		return a, true
	}
	if a, ok := completesLine(board, empty, h.mark.Other()); ok {
		return a, true
	}
	for _, a := range corners {
		if board.Cell(int(a)) == core.Empty {
			return a, true
		}
	}
	if board.Cell(int(center)) == core.Empty {
		return center, true
	}
	for _, a := range sides {
		if board.Cell(int(a)) == core.Empty {
			return a, true
		}
	}
	return h.fallback.pick(empty)
}

// completesLine tries mark on every empty cell and reverts each attempt
func completesLine(board *core.Board, empty []core.Action, mark core.Mark) (core.Action, bool) {
	for _, a := range empty {
		if err := board.Apply(a, mark); err != nil {
			continue
		}
		won := board.IsWin(mark)
		board.Clear(a)
		if won {
			return a, true
		}
	}
	return 0, false
}
