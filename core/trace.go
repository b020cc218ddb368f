package core

import "sync"

// Step is one move taken by the learner
type Step struct {
	State  State
	Action Action
}

// Trace is the episode history of the learner's own moves
type Trace struct {
	mtx   *sync.Mutex
	steps []*Step
}

func NewTrace() *Trace {
	return &Trace{
		steps: make([]*Step, 0),
		mtx:   &sync.Mutex{},
	}
}

func (t *Trace) AddStep(s *Step) {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	t.steps = append(t.steps, s)
}

func (t *Trace) Step(i int) *Step {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	return t.steps[i]
}

func (t *Trace) Len() int {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	return len(t.steps)
}

func (t *Trace) Last() *Step {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	return t.steps[len(t.steps)-1]
}

func (t *Trace) Reset() {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	t.steps = t.steps[:0]
}

// Copy returns a trace with the same steps that is safe to keep past the episode
func (t *Trace) Copy() *Trace {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	steps := make([]*Step, len(t.steps))
	for i, s := range t.steps {
		cp := *s
		steps[i] = &cp
	}
	return &Trace{
		steps: steps,
		mtx:   &sync.Mutex{},
	}
}
