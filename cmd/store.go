package cmd

import (
	"time"

	"github.com/zeu5/ttt-rl/config"
	"github.com/zeu5/ttt-rl/core"
	"github.com/zeu5/ttt-rl/storage"
	erand "golang.org/x/exp/rand"
)

func openStore(f *config.Flags) (core.Store, func() error, error) {
	switch f.Store {
	case "sqlite":
		s, err := storage.OpenSQLiteStore(f.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return storage.NewJSONStore(f.TablePath, f.StatsPath), func() error { return nil }, nil
	}
}

// sources returns n independent random sources derived from the seed
func sources(seed uint64, n int) []erand.Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	out := make([]erand.Source, n)
	for i := range out {
		out[i] = erand.NewSource(seed + uint64(i))
	}
	return out
}
