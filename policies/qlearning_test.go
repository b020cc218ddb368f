package policies

import (
	"math"
	"testing"

	"github.com/zeu5/ttt-rl/core"
	erand "golang.org/x/exp/rand"
)

func mustState(t *testing.T, s string) core.State {
	t.Helper()
	st, err := core.ParseState(s)
	if err != nil {
		t.Fatal(err)
	}
	return st
}

func TestTerminalUpdateFromZero(t *testing.T) {
	values := NewValueTable()
	agent := NewQLearningAgent(core.X, values, erand.NewSource(1))

	after := mustState(t, "____X____")
	agent.UpdateValue(core.EmptyState, 4, 1, after, nil)
	if got := values.Get(core.EmptyState, 4); math.Abs(got-0.3) > 1e-12 {
		t.Fatalf("expected 0.3, got %v", got)
	}
	agent.UpdateValue(core.EmptyState, 4, 1, after, nil)
	if got := values.Get(core.EmptyState, 4); math.Abs(got-0.51) > 1e-12 {
		t.Fatalf("expected 0.51, got %v", got)
	}
	if values.Size() != 1 {
		t.Fatalf("expected a single entry, got %d", values.Size())
	}
}

func TestUpdateBootstrapsFromNextState(t *testing.T) {
	values := NewValueTable()
	next := mustState(t, "X___O____")
	values.Set(next, 2, 0.5)
	values.Set(next, 8, -0.4)

	values.UpdateTD(core.Key{State: core.EmptyState, Action: 0}, Alpha, Gamma, 0, next, []core.Action{1, 2, 8})
	want := Alpha * Gamma * 0.5
	if got := values.Get(core.EmptyState, 0); math.Abs(got-want) > 1e-12 {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if values.Max(next, nil) != 0 {
		t.Fatal("max over no actions must be 0")
	}
}

func TestGreedyPicksBestAction(t *testing.T) {
	values := NewValueTable()
	board := core.NewBoard()
	values.Set(board.State(), 6, 0.7)
	values.Set(board.State(), 4, 0.2)
	agent := NewQLearningAgent(core.X, values, erand.NewSource(7))

	for i := 0; i < 50; i++ {
		a, ok := agent.ChooseAction(board, true, 0)
		if !ok || a != 6 {
			t.Fatalf("expected 6, got %d %v", a, ok)
		}
	}
}

func TestGreedyTieBreakIsSpread(t *testing.T) {
	agent := NewQLearningAgent(core.X, NewValueTable(), erand.NewSource(42))
	board := core.NewBoard()

	counts := make(map[core.Action]int)
	for i := 0; i < 900; i++ {
		a, ok := agent.ChooseAction(board, false, 1)
		if !ok {
			t.Fatal("no action on an empty board")
		}
		counts[a]++
	}
	for a := core.Action(0); a < core.BoardSize; a++ {
		if counts[a] < 40 {
			t.Errorf("action %d picked %d times out of 900", a, counts[a])
		}
	}
}

func TestExplorationStaysOnFreeCells(t *testing.T) {
	agent := NewQLearningAgent(core.X, NewValueTable(), erand.NewSource(3))
	st := mustState(t, "XO_OX_X_O")
	board := core.BoardFromState(st)
	free := map[core.Action]bool{2: true, 5: true, 7: true}

	for i := 0; i < 100; i++ {
		a, ok := agent.ChooseAction(board, true, 1)
		if !ok || !free[a] {
			t.Fatalf("picked %d on %s", a, st)
		}
	}
	if board.State() != st {
		t.Fatal("choosing an action changed the board")
	}
}

func TestNoActionOnFullBoard(t *testing.T) {
	agent := NewQLearningAgent(core.X, NewValueTable(), erand.NewSource(3))
	board := core.BoardFromState(mustState(t, "XOXXOOOXX"))
	if _, ok := agent.ChooseAction(board, true, 0.5); ok {
		t.Fatal("expected no action")
	}
}

func TestActionValues(t *testing.T) {
	values := NewValueTable()
	st := mustState(t, "X_O______")
	values.Set(st, 4, 0.25)
	agent := NewQLearningAgent(core.X, values, erand.NewSource(1))

	got := agent.ActionValues(core.BoardFromState(st))
	if len(got) != 7 {
		t.Fatalf("expected 7 free cells, got %d", len(got))
	}
	if got[4] != 0.25 || got[1] != 0 {
		t.Fatalf("unexpected values %v", got)
	}
	if _, ok := got[0]; ok {
		t.Fatal("occupied cell has a value")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	values := NewValueTable()
	values.Set(core.EmptyState, 0, 1)
	snap := values.Snapshot()
	values.Set(core.EmptyState, 0, 2)
	if snap[core.Key{State: core.EmptyState, Action: 0}] != 1 {
		t.Fatal("snapshot follows later writes")
	}
	if !values.Exists(core.EmptyState, 0) || values.Exists(core.EmptyState, 1) {
		t.Fatal("unexpected entries")
	}
}
