package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zeu5/ttt-rl/core"
)

func key(t *testing.T, state string, action core.Action) core.Key {
	t.Helper()
	st, err := core.ParseState(state)
	if err != nil {
		t.Fatal(err)
	}
	return core.Key{State: st, Action: action}
}

func sampleTable(t *testing.T) map[core.Key]float64 {
	return map[core.Key]float64{
		key(t, "_________", 4): 0.3,
		key(t, "X___O____", 8): 0.1 + 0.2,
		key(t, "XO__O___X", 7): -1.0 / 3.0,
		key(t, "XOXXOO___", 6): 1e-17,
		key(t, "X_O______", 1): -0.999999999999,
	}
}

func TestKeyEncoding(t *testing.T) {
	k := key(t, "X_O_X__O_", 5)
	s := EncodeKey(k)
	if s != "X_O_X__O_:5" {
		t.Fatalf("unexpected key %q", s)
	}
	back, err := DecodeKey(s)
	if err != nil || back != k {
		t.Fatalf("decode gave %+v %v", back, err)
	}
	for _, bad := range []string{"X_O_X__O_", "X_O_X__O_:9", "X_O_X__O_:-1", "X_O_X__O_:a", "X_O_X__O:5", "X_O_Z__O_:5"} {
		if _, err := DecodeKey(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestJSONTableRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewJSONStore(filepath.Join(dir, "nested", "qtable.json"), filepath.Join(dir, "stats.json"))
	table := sampleTable(t)

	if err := store.SaveTable(table); err != nil {
		t.Fatal(err)
	}
	got := store.LoadTable()
	if len(got) != len(table) {
		t.Fatalf("expected %d values, got %d", len(table), len(got))
	}
	for k, v := range table {
		if got[k] != v {
			t.Errorf("%s: expected %v, got %v", EncodeKey(k), v, got[k])
		}
	}

	// saving overwrites the previous contents
	if err := store.SaveTable(map[core.Key]float64{key(t, "_________", 0): 1}); err != nil {
		t.Fatal(err)
	}
	if got := store.LoadTable(); len(got) != 1 {
		t.Fatalf("expected a single value after overwrite, got %d", len(got))
	}
}

func TestJSONStatsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewJSONStore(filepath.Join(dir, "qtable.json"), filepath.Join(dir, "stats.json"))
	stats := core.Stats{Games: 1200, Wins: 700, Draws: 300, Epsilon: 0.18834}
	if err := store.SaveStats(stats); err != nil {
		t.Fatal(err)
	}
	if got := store.LoadStats(core.Stats{}); got != stats {
		t.Fatalf("expected %+v, got %+v", stats, got)
	}
}

func TestJSONStatsWithoutEpsilon(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stats.json")
	if err := os.WriteFile(path, []byte(`{"games": 10, "wins": 4, "draws": 3}`), 0644); err != nil {
		t.Fatal(err)
	}
	store := NewJSONStore(filepath.Join(dir, "qtable.json"), path)
	got := store.LoadStats(core.Stats{Epsilon: 0.2})
	want := core.Stats{Games: 10, Wins: 4, Draws: 3, Epsilon: 0.2}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestJSONMissingFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewJSONStore(filepath.Join(dir, "qtable.json"), filepath.Join(dir, "stats.json"))
	if got := store.LoadTable(); len(got) != 0 {
		t.Fatalf("expected empty table, got %d values", len(got))
	}
	def := core.Stats{Epsilon: 0.2}
	if got := store.LoadStats(def); got != def {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestJSONCorruptFilesFallBack(t *testing.T) {
	tests := []struct {
		name  string
		table string
		stats string
	}{
		{"malformed", `{"_________:4": 0.3,`, `{"games": `},
		{"wrong types", `{"_________:4": "high"}`, `{"games": "many"}`},
		{"bad key", `{"_________:4": 0.3, "nonsense": 1}`, `{"games": 2, "wins": 3, "draws": 0}`},
		{"bad state", `{"____Q____:4": 0.3}`, `{"games": -1, "wins": 0, "draws": 0}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			tp := filepath.Join(dir, "qtable.json")
			sp := filepath.Join(dir, "stats.json")
			os.WriteFile(tp, []byte(tt.table), 0644)
			os.WriteFile(sp, []byte(tt.stats), 0644)

			store := NewJSONStore(tp, sp)
			if got := store.LoadTable(); len(got) != 0 {
				t.Fatalf("expected empty table, got %v", got)
			}
			def := core.Stats{Epsilon: 0.2}
			if got := store.LoadStats(def); got != def {
				t.Fatalf("expected defaults, got %+v", got)
			}
		})
	}
}

func TestJSONWriteFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	store := NewJSONStore(filepath.Join(blocker, "qtable.json"), filepath.Join(blocker, "stats.json"))
	if err := store.SaveTable(sampleTable(t)); err == nil {
		t.Fatal("expected table write error")
	}
	if err := store.SaveStats(core.Stats{Games: 1}); err == nil {
		t.Fatal("expected stats write error")
	}
}
