package policies

import (
	"github.com/zeu5/ttt-rl/core"
	erand "golang.org/x/exp/rand"
)

const (
	Alpha = 0.3
	Gamma = 0.9
)

// QLearningAgent is the epsilon-greedy tabular learner.
// The exploration rate is owned by the caller and passed on every pick.
type QLearningAgent struct {
	mark     core.Mark
	opponent core.Mark
	values   *ValueTable
	rand     *erand.Rand
}

var _ core.Learner = &QLearningAgent{}

func NewQLearningAgent(mark core.Mark, values *ValueTable, src erand.Source) *QLearningAgent {
	return &QLearningAgent{
		mark:     mark,
		opponent: mark.Other(),
		values:   values,
		rand:     erand.New(src),
	}
}

func (q *QLearningAgent) Mark() core.Mark {
	return q.mark
}

func (q *QLearningAgent) Opponent() core.Mark {
	return q.opponent
}

func (q *QLearningAgent) ChooseAction(board *core.Board, explore bool, epsilon float64) (core.Action, bool) {
	actions := board.ValidActions()
	if len(actions) == 0 {
		return 0, false
	}
	if explore && q.rand.Float64() < epsilon {
		return actions[q.rand.Intn(len(actions))], true
	}
	action, _ := q.values.MaxAmong(board.State(), actions, q.rand)
	return action, true
}

func (q *QLearningAgent) UpdateValue(state core.State, action core.Action, reward float64, nextState core.State, nextActions []core.Action) {
	q.values.UpdateTD(core.Key{State: state, Action: action}, Alpha, Gamma, reward, nextState, nextActions)
}

// ActionValues returns the estimate of every valid action on the board
func (q *QLearningAgent) ActionValues(board *core.Board) map[core.Action]float64 {
	state := board.State()
	out := make(map[core.Action]float64)
	for _, a := range board.ValidActions() {
		out[a] = q.values.Get(state, a)
	}
	return out
}
