package storage

import (
	"database/sql"

	"github.com/golang/glog"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/zeu5/ttt-rl/core"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS q_values (
	state  TEXT    NOT NULL,
	action INTEGER NOT NULL,
	value  REAL    NOT NULL,
	PRIMARY KEY (state, action)
);
CREATE TABLE IF NOT EXISTS stats (
	id      INTEGER PRIMARY KEY CHECK (id = 1),
	games   INTEGER NOT NULL,
	wins    INTEGER NOT NULL,
	draws   INTEGER NOT NULL,
	epsilon REAL    NOT NULL
);`

type valueRow struct {
	State  string  `db:"state"`
	Action int     `db:"action"`
	Value  float64 `db:"value"`
}

// SQLiteStore keeps the table and the stats in a single SQLite database
type SQLiteStore struct {
	path string
	db   *sqlx.DB
}

var _ core.Store = &SQLiteStore{}

func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	// a single connection keeps writes serialized on the one file
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "failed to prepare schema in %s", path)
	}
	return &SQLiteStore{
		path: path,
		db:   db,
	}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) LoadTable() map[core.Key]float64 {
	out := make(map[core.Key]float64)
	rows := make([]valueRow, 0)
	if err := s.db.Select(&rows, "SELECT state, action, value FROM q_values"); err != nil {
		glog.Warningf("failed to load values from %s, resetting: %s", s.path, err)
		return out
	}
	for _, r := range rows {
		st, err := core.ParseState(r.State)
		if err != nil || !core.Action(r.Action).Valid() {
			glog.Warningf("failed to load values from %s, resetting: bad row %+v", s.path, r)
			return make(map[core.Key]float64)
		}
		out[core.Key{State: st, Action: core.Action(r.Action)}] = r.Value
	}
	glog.Infof("loaded %d values from %s", len(out), s.path)
	return out
}

// SaveTable replaces the stored table with values in one transaction
func (s *SQLiteStore) SaveTable(values map[core.Key]float64) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return errors.Wrapf(err, "failed to save value table to %s", s.path)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM q_values"); err != nil {
		return errors.Wrapf(err, "failed to save value table to %s", s.path)
	}
	stmt, err := tx.Preparex("INSERT INTO q_values (state, action, value) VALUES (?, ?, ?)")
	if err != nil {
		return errors.Wrapf(err, "failed to save value table to %s", s.path)
	}
	defer stmt.Close()
	for k, v := range values {
		if _, err := stmt.Exec(k.State.String(), int(k.Action), v); err != nil {
			return errors.Wrapf(err, "failed to save value table to %s", s.path)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrapf(err, "failed to save value table to %s", s.path)
	}
	return nil
}

func (s *SQLiteStore) LoadStats(def core.Stats) core.Stats {
	var stats core.Stats
	err := s.db.Get(&stats, "SELECT games, wins, draws, epsilon FROM stats WHERE id = 1")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			glog.Infof("no stats in %s, starting fresh", s.path)
		} else {
			glog.Warningf("failed to load stats from %s, resetting: %s", s.path, err)
		}
		return def
	}
	return stats
}

func (s *SQLiteStore) SaveStats(stats core.Stats) error {
	_, err := s.db.NamedExec(
		`INSERT INTO stats (id, games, wins, draws, epsilon) VALUES (1, :games, :wins, :draws, :epsilon)
		ON CONFLICT (id) DO UPDATE SET games = excluded.games, wins = excluded.wins, draws = excluded.draws, epsilon = excluded.epsilon`,
		stats,
	)
	if err != nil {
		return errors.Wrapf(err, "failed to save stats to %s", s.path)
	}
	return nil
}
