package storage

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/zeu5/ttt-rl/core"
	"github.com/zeu5/ttt-rl/util"
)

// KeyDelimiter separates the state from the action digit in persisted keys
const KeyDelimiter = ":"

func EncodeKey(k core.Key) string {
	return k.State.String() + KeyDelimiter + strconv.Itoa(int(k.Action))
}

func DecodeKey(s string) (core.Key, error) {
	state, action, ok := strings.Cut(s, KeyDelimiter)
	if !ok {
		return core.Key{}, fmt.Errorf("key %q: missing delimiter", s)
	}
	st, err := core.ParseState(state)
	if err != nil {
		return core.Key{}, err
	}
	a, err := strconv.Atoi(action)
	if err != nil || !core.Action(a).Valid() {
		return core.Key{}, fmt.Errorf("key %q: bad action %q", s, action)
	}
	return core.Key{State: st, Action: core.Action(a)}, nil
}

// JSONStore keeps the table and the stats in two JSON files
type JSONStore struct {
	TablePath string
	StatsPath string
}

var _ core.Store = &JSONStore{}

func NewJSONStore(tablePath, statsPath string) *JSONStore {
	return &JSONStore{
		TablePath: tablePath,
		StatsPath: statsPath,
	}
}

func (j *JSONStore) LoadTable() map[core.Key]float64 {
	raw := make(map[string]float64)
	if !loadJson(j.TablePath, &raw) {
		return make(map[core.Key]float64)
	}
	out := make(map[core.Key]float64, len(raw))
	for k, v := range raw {
		key, err := DecodeKey(k)
		if err != nil {
			glog.Warningf("failed to load %s, resetting: %s", j.TablePath, err)
			return make(map[core.Key]float64)
		}
		out[key] = v
	}
	glog.Infof("loaded %d values from %s", len(out), j.TablePath)
	return out
}

func (j *JSONStore) SaveTable(values map[core.Key]float64) error {
	raw := make(map[string]float64, len(values))
	for k, v := range values {
		raw[EncodeKey(k)] = v
	}
	if err := util.SaveJson(j.TablePath, raw); err != nil {
		return errors.Wrapf(err, "failed to save value table to %s", j.TablePath)
	}
	return nil
}

func (j *JSONStore) LoadStats(def core.Stats) core.Stats {
	stats := def
	if !loadJson(j.StatsPath, &stats) {
		return def
	}
	if stats.Games < 0 || stats.Wins < 0 || stats.Draws < 0 || stats.Wins+stats.Draws > stats.Games {
		glog.Warningf("failed to load %s, resetting: inconsistent counters %+v", j.StatsPath, stats)
		return def
	}
	return stats
}

func (j *JSONStore) SaveStats(stats core.Stats) error {
	if err := util.SaveJson(j.StatsPath, stats); err != nil {
		return errors.Wrapf(err, "failed to save stats to %s", j.StatsPath)
	}
	return nil
}

func loadJson(path string, data interface{}) bool {
	err := util.LoadJson(path, data)
	if err == nil {
		return true
	}
	if os.IsNotExist(err) {
		glog.Infof("%s not found, starting fresh", path)
	} else {
		glog.Warningf("failed to load %s, resetting: %s", path, err)
	}
	return false
}
