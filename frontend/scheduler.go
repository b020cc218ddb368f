package frontend

import (
	"context"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/zeu5/ttt-rl/core"
)

// TimerScheduler runs scheduled functions one at a time on its own goroutine,
// waiting delay before each one. It is done when the context is cancelled,
// when maxRuns functions have run (if positive) or when a function returns
// without scheduling a successor.
type TimerScheduler struct {
	delay   time.Duration
	maxRuns int

	fnCh     chan func()
	doneCh   chan struct{}
	doneOnce sync.Once

	mtx  sync.Mutex
	runs int
}

var _ core.Scheduler = &TimerScheduler{}

func NewTimerScheduler(delay time.Duration, maxRuns int) *TimerScheduler {
	return &TimerScheduler{
		delay:   delay,
		maxRuns: maxRuns,
		fnCh:    make(chan func(), 1),
		doneCh:  make(chan struct{}),
	}
}

// Schedule queues fn. Only one function can be pending at a time; extra ones are dropped.
func (s *TimerScheduler) Schedule(fn func()) {
	select {
	case s.fnCh <- fn:
	default:
		glog.Warning("scheduler busy, dropping function")
	}
}

func (s *TimerScheduler) Start(ctx context.Context) {
	go s.run(ctx)
}

// Done is closed once the scheduler stops running functions
func (s *TimerScheduler) Done() <-chan struct{} {
	return s.doneCh
}

// Runs returns the number of functions run so far
func (s *TimerScheduler) Runs() int {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.runs
}

func (s *TimerScheduler) run(ctx context.Context) {
	defer s.doneOnce.Do(func() { close(s.doneCh) })
	for {
		var fn func()
		select {
		case <-ctx.Done():
			return
		case fn = <-s.fnCh:
		}
		if s.delay > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.delay):
			}
		}
		fn()

		s.mtx.Lock()
		s.runs++
		runs := s.runs
		s.mtx.Unlock()
		if s.maxRuns > 0 && runs >= s.maxRuns {
			return
		}
		if len(s.fnCh) == 0 {
			return
		}
	}
}
