package policies

import (
	"math"
	"sync"

	"github.com/zeu5/ttt-rl/core"
	erand "golang.org/x/exp/rand"
)

// ValueTable maps (state, action) pairs to value estimates.
// Unknown pairs read as zero and are only stored once updated.
type ValueTable struct {
	mtx   sync.RWMutex
	table map[core.Key]float64
}

var _ core.ValueSnapshotter = &ValueTable{}

func NewValueTable() *ValueTable {
	return &ValueTable{
		table: make(map[core.Key]float64),
	}
}

// NewValueTableFrom takes ownership of values
func NewValueTableFrom(values map[core.Key]float64) *ValueTable {
	if values == nil {
		values = make(map[core.Key]float64)
	}
	return &ValueTable{
		table: values,
	}
}

func (q *ValueTable) Get(state core.State, action core.Action) float64 {
	q.mtx.RLock()
	defer q.mtx.RUnlock()
	return q.table[core.Key{State: state, Action: action}]
}

func (q *ValueTable) Set(state core.State, action core.Action, val float64) {
	q.mtx.Lock()
	defer q.mtx.Unlock()
	q.table[core.Key{State: state, Action: action}] = val
}

func (q *ValueTable) Exists(state core.State, action core.Action) bool {
	q.mtx.RLock()
	defer q.mtx.RUnlock()
	_, ok := q.table[core.Key{State: state, Action: action}]
	return ok
}

func (q *ValueTable) Size() int {
	q.mtx.RLock()
	defer q.mtx.RUnlock()
	return len(q.table)
}

// Max returns the largest value among actions, 0 when actions is empty
func (q *ValueTable) Max(state core.State, actions []core.Action) float64 {
	q.mtx.RLock()
	defer q.mtx.RUnlock()
	return q.max(state, actions)
}

func (q *ValueTable) max(state core.State, actions []core.Action) float64 {
	if len(actions) == 0 {
		return 0
	}
	maxVal := math.Inf(-1)
	for _, a := range actions {
		if val := q.table[core.Key{State: state, Action: a}]; val > maxVal {
			maxVal = val
		}
	}
	return maxVal
}

// MaxAmong returns one of the best actions, picked uniformly among ties
func (q *ValueTable) MaxAmong(state core.State, actions []core.Action, rand *erand.Rand) (core.Action, float64) {
	q.mtx.RLock()
	defer q.mtx.RUnlock()

	maxActions := make([]core.Action, 0, len(actions))
	maxVal := math.Inf(-1)
	for _, a := range actions {
		val := q.table[core.Key{State: state, Action: a}]
		if val > maxVal {
			maxActions = maxActions[:0]
			maxVal = val
		}
		if val == maxVal {
			maxActions = append(maxActions, a)
		}
	}
	return maxActions[rand.Intn(len(maxActions))], maxVal
}

// UpdateTD is the temporal difference step towards reward + gamma * max next value
func (q *ValueTable) UpdateTD(key core.Key, alpha, gamma, reward float64, next core.State, nextActions []core.Action) float64 {
	q.mtx.Lock()
	defer q.mtx.Unlock()
	target := reward + gamma*q.max(next, nextActions)
	old := q.table[key]
	val := old + alpha*(target-old)
	q.table[key] = val
	return val
}

func (q *ValueTable) Snapshot() map[core.Key]float64 {
	q.mtx.RLock()
	defer q.mtx.RUnlock()
	out := make(map[core.Key]float64, len(q.table))
	for k, v := range q.table {
		out[k] = v
	}
	return out
}
