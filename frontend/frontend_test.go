package frontend

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/logrusorgru/aurora"
	"github.com/zeu5/ttt-rl/core"
)

func waitDone(t *testing.T, s *TimerScheduler) {
	t.Helper()
	select {
	case <-s.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not finish")
	}
}

func TestSchedulerStopsAfterMaxRuns(t *testing.T) {
	s := NewTimerScheduler(time.Millisecond, 5)
	calls := 0
	var fn func()
	fn = func() {
		calls++
		s.Schedule(fn)
	}
	s.Start(context.Background())
	s.Schedule(fn)
	waitDone(t, s)
	if calls != 5 || s.Runs() != 5 {
		t.Fatalf("expected 5 runs, got %d/%d", calls, s.Runs())
	}
}

func TestSchedulerIsDoneWhenIdle(t *testing.T) {
	s := NewTimerScheduler(0, 0)
	calls := 0
	s.Start(context.Background())
	s.Schedule(func() { calls++ })
	waitDone(t, s)
	if calls != 1 {
		t.Fatalf("expected a single run, got %d", calls)
	}
}

func TestSchedulerStopsOnCancel(t *testing.T) {
	s := NewTimerScheduler(time.Hour, 0)
	ctx, cancel := context.WithCancel(context.Background())
	ran := false
	s.Start(ctx)
	s.Schedule(func() { ran = true })
	cancel()
	waitDone(t, s)
	if ran {
		t.Fatal("function ran after cancel")
	}
}

func TestTerminalDisplayTracksTheBoard(t *testing.T) {
	d := NewTerminalDisplay(io.Discard, time.Hour, false)
	d.OnMove(4, core.X)
	d.OnMove(0, core.O)
	cells := d.Cells()
	if cells[4] != core.X || cells[0] != core.O || cells[8] != core.Empty {
		t.Fatalf("unexpected cells %v", cells)
	}

	// the finished board stays until the next game starts
	d.OnStatsUpdated(core.Stats{Games: 1, Wins: 1})
	if d.Cells()[4] != core.X {
		t.Fatal("board cleared before the next move")
	}
	d.OnMove(2, core.X)
	cells = d.Cells()
	if cells[4] != core.Empty || cells[2] != core.X {
		t.Fatalf("board not reset for the new game: %v", cells)
	}
	if !strings.Contains(d.stats.Get(), "games 1") {
		t.Fatalf("unexpected stats line %q", d.stats.Get())
	}
}

func TestTerminalDisplayPrints(t *testing.T) {
	buf := new(bytes.Buffer)
	d := NewTerminalDisplay(buf, time.Hour, false)
	d.Start(context.Background())
	d.OnStatusChanged(core.StatusTraining)
	d.OnMove(4, core.X)
	d.OnStatsUpdated(core.Stats{Games: 1234, Wins: 1000, Draws: 200, Epsilon: 0.15})
	d.Stop()

	out := buf.String()
	for _, want := range []string{core.StatusTraining.String(), " . X .", "games 1,234"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestProgressDisplayCountsEpisodes(t *testing.T) {
	p := NewProgressDisplay(io.Discard, 3)
	p.OnMove(0, core.X)
	p.OnStatsUpdated(core.Stats{Games: 11, Wins: 5})
	p.OnStatsUpdated(core.Stats{Games: 12, Wins: 6})
	p.OnStatusChanged(core.StatusPaused)
	if p.Episodes() != 2 || p.Last().Games != 12 {
		t.Fatalf("unexpected progress %d %+v", p.Episodes(), p.Last())
	}
}

func TestFormatStats(t *testing.T) {
	got := FormatStats(core.Stats{Games: 2000, Wins: 1500, Draws: 400, Epsilon: 0.05})
	for _, want := range []string{"games 2,000", "wins 1,500", "draws 400", "losses 100", "win rate 75.0%", "epsilon 0.0500"} {
		if !strings.Contains(got, want) {
			t.Errorf("%q missing %q", got, want)
		}
	}
	if !strings.Contains(FormatStats(core.Stats{}), "win rate 0.0%") {
		t.Error("empty stats must show a zero win rate")
	}
}

func TestBoardRows(t *testing.T) {
	var cells [core.BoardSize]core.Mark
	for i := range cells {
		cells[i] = core.Empty
	}
	cells[0], cells[4], cells[8] = core.X, core.O, core.X
	rows := BoardRows(aurora.NewAurora(false), cells)
	want := []string{" X . .", " . O .", " . . X"}
	for i := range want {
		if rows[i] != want[i] {
			t.Fatalf("row %d: expected %q, got %q", i, want[i], rows[i])
		}
	}
}
