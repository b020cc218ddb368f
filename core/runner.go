package core

import (
	"errors"
	"sync"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/zeu5/ttt-rl/util"
)

const (
	RewardWin  = 1.0
	RewardDraw = 0.2
	RewardLoss = -1.0
)

var (
	ErrNoStore = errors.New("no store configured")
)

type TrainerConfig struct {
	Learner   Learner
	Opponent  Opponent
	Table     ValueSnapshotter
	Store     Store
	Display   Display
	Scheduler Scheduler
	*RunConfig
}

// Trainer plays the learner against the opponent one episode at a time.
// It never loops on its own: the Scheduler decides when the next episode runs.
type Trainer struct {
	mtx sync.Mutex

	learner   Learner
	opponent  Opponent
	table     ValueSnapshotter
	store     Store
	display   Display
	scheduler Scheduler
	analyzers map[string]Analyzer
	config    RunConfig

	board   *Board
	history *Trace

	session        uuid.UUID
	episode        int
	stats          Stats
	epsilon        float64
	flushedAtGames int
	running        bool
	err            error
}

// NewTrainer loads the persisted stats and restores the exploration rate from them
func NewTrainer(c TrainerConfig) *Trainer {
	rc := DefaultRunConfig()
	if c.RunConfig != nil {
		rc = c.RunConfig
	}
	display := c.Display
	if display == nil {
		display = NopDisplay{}
	}
	t := &Trainer{
		learner:   c.Learner,
		opponent:  c.Opponent,
		table:     c.Table,
		store:     c.Store,
		display:   display,
		scheduler: c.Scheduler,
		analyzers: make(map[string]Analyzer),
		config:    *rc,
		board:     NewBoard(),
		history:   NewTrace(),
		session:   uuid.New(),
		epsilon:   rc.Epsilon,
	}
	if t.store != nil {
		t.stats = t.store.LoadStats(Stats{})
	}
	if t.stats.Epsilon > 0 && t.stats.Epsilon < t.epsilon {
		t.epsilon = t.stats.Epsilon
	}
	if t.epsilon < t.config.MinEpsilon {
		t.epsilon = t.config.MinEpsilon
	}
	t.stats.Epsilon = t.epsilon
	t.flushedAtGames = t.stats.Games
	glog.Infof("session %s: resuming at %d games, epsilon %.4f", t.session, t.stats.Games, t.epsilon)
	return t
}

func (t *Trainer) AddAnalyzer(name string, a Analyzer) {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	t.analyzers[name] = a
}

func (t *Trainer) DataSets() map[string]DataSet {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	out := make(map[string]DataSet)
	for name, a := range t.analyzers {
		out[name] = a.DataSet()
	}
	return out
}

func (t *Trainer) Session() uuid.UUID {
	return t.session
}

func (t *Trainer) Stats() Stats {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	return t.stats
}

func (t *Trainer) Epsilon() float64 {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	return t.epsilon
}

func (t *Trainer) Running() bool {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	return t.running
}

// Err returns the error that halted the scheduled loop, if any
func (t *Trainer) Err() error {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	return t.err
}

// RunOneEpisode plays a full game and applies the terminal updates
func (t *Trainer) RunOneEpisode() (EpisodeResult, error) {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	return t.runEpisode()
}

// Start begins the scheduled repetition of episodes. Calling it while running does nothing.
func (t *Trainer) Start() {
	t.mtx.Lock()
	if t.running {
		t.mtx.Unlock()
		return
	}
	t.running = true
	t.err = nil
	t.display.OnStatusChanged(StatusTraining)
	t.mtx.Unlock()

	t.loop()
}

// Stop halts further episodes and always flushes the table and the stats.
// An episode in progress is allowed to finish first.
func (t *Trainer) Stop() error {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	t.running = false
	if err := t.flush(); err != nil {
		t.display.OnStatusChanged(StatusFailed)
		return err
	}
	t.display.OnStatusChanged(StatusPaused)
	return nil
}

func (t *Trainer) loop() {
	t.mtx.Lock()
	if !t.running {
		t.mtx.Unlock()
		return
	}
	if _, err := t.runEpisode(); err != nil {
		glog.Errorf("session %s: episode %d failed: %s", t.session, t.episode, err)
		t.running = false
		t.err = err
		t.display.OnStatusChanged(StatusFailed)
		t.mtx.Unlock()
		return
	}
	t.mtx.Unlock()

	if t.scheduler != nil {
		t.scheduler.Schedule(t.loop)
	}
}

func (t *Trainer) runEpisode() (EpisodeResult, error) {
	t.board.Reset()
	t.history.Reset()

	result := EpisodeResult{Outcome: Aborted}
	lm := t.learner.Mark()
	om := t.opponent.Mark()

	for {
		state := t.board.State()
		action, ok := t.learner.ChooseAction(t.board, true, t.epsilon)
		if !ok {
			break
		}
		if err := t.board.Apply(action, lm); err != nil {
			return result, err
		}
		result.Moves++
		t.history.AddStep(&Step{State: state, Action: action})
		t.display.OnMove(int(action), lm)

		if t.board.IsWin(lm) {
			final := t.board.State()
			for i := t.history.Len() - 1; i >= 0; i-- {
				s := t.history.Step(i)
				t.learner.UpdateValue(s.State, s.Action, RewardWin, final, nil)
			}
			t.stats.Games++
			t.stats.Wins++
			result.Outcome = Win
			break
		}
		if t.board.IsDraw() {
			t.rewardDraw()
			result.Outcome = Draw
			break
		}

		reply, ok := t.opponent.Move(t.board)
		if !ok {
			break
		}
		if err := t.board.Apply(reply, om); err != nil {
			return result, err
		}
		result.Moves++
		t.display.OnMove(int(reply), om)

		if t.board.IsWin(om) {
			// only the move that allowed the loss is blamed
			last := t.history.Last()
			t.learner.UpdateValue(last.State, last.Action, RewardLoss, t.board.State(), nil)
			t.stats.Games++
			result.Outcome = Loss
			break
		}
		if t.board.IsDraw() {
			t.rewardDraw()
			result.Outcome = Draw
			break
		}
	}

	return result, t.finishEpisode(result)
}

func (t *Trainer) rewardDraw() {
	final := t.board.State()
	for i := 0; i < t.history.Len(); i++ {
		s := t.history.Step(i)
		t.learner.UpdateValue(s.State, s.Action, RewardDraw, final, nil)
	}
	t.stats.Games++
	t.stats.Draws++
}

func (t *Trainer) finishEpisode(result EpisodeResult) error {
	t.epsilon = util.MaxFloat(t.config.MinEpsilon, t.epsilon*t.config.EpsilonDecay)
	t.stats.Epsilon = t.epsilon

	if len(t.analyzers) > 0 {
		eCtx := &EpisodeContext{
			Session: t.session,
			Episode: t.episode,
			Result:  result,
			Board:   t.board.Clone(),
			Epsilon: t.epsilon,
			Trace:   t.history.Copy(),
		}
		for _, a := range t.analyzers {
			a.Analyze(eCtx)
		}
	}
	t.episode++

	var err error
	if t.config.SaveInterval > 0 && t.stats.Games-t.flushedAtGames >= t.config.SaveInterval {
		err = t.flush()
	}
	t.display.OnStatsUpdated(t.stats)
	return err
}

func (t *Trainer) flush() error {
	if t.store == nil {
		return ErrNoStore
	}
	var tableErr error
	if t.table != nil {
		tableErr = t.store.SaveTable(t.table.Snapshot())
	}
	statsErr := t.store.SaveStats(t.stats)
	if err := errors.Join(tableErr, statsErr); err != nil {
		return err
	}
	t.flushedAtGames = t.stats.Games
	glog.Infof("session %s: saved value table and stats at %d games", t.session, t.stats.Games)
	return nil
}
