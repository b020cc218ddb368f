package storage

import (
	"path/filepath"
	"testing"

	"github.com/zeu5/ttt-rl/core"
)

func openTestStore(t *testing.T, path string) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSQLiteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ttt.db")
	s := openTestStore(t, path)

	table := sampleTable(t)
	stats := core.Stats{Games: 42, Wins: 20, Draws: 12, Epsilon: 0.1234567890123}
	if err := s.SaveTable(table); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveStats(stats); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s = openTestStore(t, path)
	defer s.Close()
	got := s.LoadTable()
	if len(got) != len(table) {
		t.Fatalf("expected %d values, got %d", len(table), len(got))
	}
	for k, v := range table {
		if got[k] != v {
			t.Errorf("%s: expected %v, got %v", EncodeKey(k), v, got[k])
		}
	}
	if gotStats := s.LoadStats(core.Stats{}); gotStats != stats {
		t.Fatalf("expected %+v, got %+v", stats, gotStats)
	}
}

func TestSQLiteSaveReplacesContents(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "ttt.db"))
	defer s.Close()

	if err := s.SaveTable(sampleTable(t)); err != nil {
		t.Fatal(err)
	}
	only := map[core.Key]float64{key(t, "_________", 4): 0.51}
	if err := s.SaveTable(only); err != nil {
		t.Fatal(err)
	}
	got := s.LoadTable()
	if len(got) != 1 || got[key(t, "_________", 4)] != 0.51 {
		t.Fatalf("unexpected table %v", got)
	}

	s.SaveStats(core.Stats{Games: 1, Wins: 1, Epsilon: 0.2})
	s.SaveStats(core.Stats{Games: 2, Wins: 1, Draws: 1, Epsilon: 0.19})
	if got := s.LoadStats(core.Stats{}); got.Games != 2 || got.Draws != 1 {
		t.Fatalf("unexpected stats %+v", got)
	}
}

func TestSQLiteEmptyDatabase(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "ttt.db"))
	defer s.Close()
	if got := s.LoadTable(); len(got) != 0 {
		t.Fatalf("expected empty table, got %d values", len(got))
	}
	def := core.Stats{Epsilon: 0.2}
	if got := s.LoadStats(def); got != def {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestSQLiteBadRowFallsBack(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "ttt.db"))
	defer s.Close()
	if err := s.SaveTable(sampleTable(t)); err != nil {
		t.Fatal(err)
	}
	if _, err := s.db.Exec("INSERT INTO q_values (state, action, value) VALUES ('bogus', 4, 1)"); err != nil {
		t.Fatal(err)
	}
	if got := s.LoadTable(); len(got) != 0 {
		t.Fatalf("expected empty table, got %d values", len(got))
	}
}

func TestSQLiteWriteAfterClose(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "ttt.db"))
	s.Close()
	if err := s.SaveTable(sampleTable(t)); err == nil {
		t.Fatal("expected table write error")
	}
	if err := s.SaveStats(core.Stats{Games: 1}); err == nil {
		t.Fatal("expected stats write error")
	}
}
