package config

import (
	"os"
	"path"
	"time"

	"github.com/golang/glog"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/zeu5/ttt-rl/core"
	"github.com/zeu5/ttt-rl/util"
)

type Flags struct {
	SavePath string `yaml:"save_path" json:"save_path" env:"TTT_SAVE_PATH"`
	Debug    bool   `yaml:"debug" json:"debug" env:"TTT_DEBUG"`
	Seed     uint64 `yaml:"seed" json:"seed" env:"TTT_SEED"`

	TrainFlags `yaml:",inline"`
	StoreFlags `yaml:",inline"`
}

type TrainFlags struct {
	Episodes     int           `yaml:"episodes" json:"episodes" env:"TTT_EPISODES"`
	Delay        time.Duration `yaml:"delay" json:"delay" env:"TTT_DELAY"`
	Display      string        `yaml:"display" json:"display" env:"TTT_DISPLAY"`
	Opponent     string        `yaml:"opponent" json:"opponent" env:"TTT_OPPONENT"`
	Epsilon      float64       `yaml:"epsilon" json:"epsilon" env:"TTT_EPSILON"`
	MinEpsilon   float64       `yaml:"min_epsilon" json:"min_epsilon" env:"TTT_MIN_EPSILON"`
	EpsilonDecay float64       `yaml:"epsilon_decay" json:"epsilon_decay" env:"TTT_EPSILON_DECAY"`
	SaveInterval int           `yaml:"save_interval" json:"save_interval" env:"TTT_SAVE_INTERVAL"`
	Window       int           `yaml:"window" json:"window" env:"TTT_WINDOW"`
}

type StoreFlags struct {
	Store     string `yaml:"store" json:"store" env:"TTT_STORE"`
	TablePath string `yaml:"table" json:"table" env:"TTT_TABLE"`
	StatsPath string `yaml:"stats" json:"stats" env:"TTT_STATS"`
	DBPath    string `yaml:"db" json:"db" env:"TTT_DB"`
}

func DefaultFlags() *Flags {
	rc := core.DefaultRunConfig()
	return &Flags{
		SavePath: "results",
		Debug:    false,
		Seed:     0,
		TrainFlags: TrainFlags{
			Episodes:     0,
			Delay:        10 * time.Millisecond,
			Display:      "terminal",
			Opponent:     "heuristic",
			Epsilon:      rc.Epsilon,
			MinEpsilon:   rc.MinEpsilon,
			EpsilonDecay: rc.EpsilonDecay,
			SaveInterval: rc.SaveInterval,
			Window:       1000,
		},
		StoreFlags: StoreFlags{
			Store:     "json",
			TablePath: "qtable.json",
			StatsPath: "stats.json",
			DBPath:    "ttt.db",
		},
	}
}

// Load starts from the defaults and applies, in order, a .env file if present,
// the config file at configPath (if any) and the environment.
func Load(configPath string) (*Flags, error) {
	f := DefaultFlags()
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		glog.Warningf("failed to read .env: %s", err)
	}
	if configPath != "" {
		if err := cleanenv.ReadConfig(configPath, f); err != nil {
			return nil, errors.Wrapf(err, "failed to read config %s", configPath)
		}
		return f, nil
	}
	if err := cleanenv.ReadEnv(f); err != nil {
		return nil, errors.Wrap(err, "failed to read environment")
	}
	return f, nil
}

func (f *Flags) RunConfig() *core.RunConfig {
	return &core.RunConfig{
		Epsilon:      f.Epsilon,
		MinEpsilon:   f.MinEpsilon,
		EpsilonDecay: f.EpsilonDecay,
		SaveInterval: f.SaveInterval,
	}
}

func (f *Flags) Validate() error {
	switch {
	case f.Epsilon < 0 || f.Epsilon > 1:
		return errors.Errorf("epsilon %v out of [0, 1]", f.Epsilon)
	case f.MinEpsilon < 0 || f.MinEpsilon > f.Epsilon:
		return errors.Errorf("min epsilon %v out of [0, %v]", f.MinEpsilon, f.Epsilon)
	case f.EpsilonDecay <= 0 || f.EpsilonDecay > 1:
		return errors.Errorf("epsilon decay %v out of (0, 1]", f.EpsilonDecay)
	case f.SaveInterval <= 0:
		return errors.Errorf("save interval must be positive, got %d", f.SaveInterval)
	case f.Episodes < 0:
		return errors.Errorf("episodes must not be negative, got %d", f.Episodes)
	}
	switch f.Display {
	case "terminal", "progress", "none":
	default:
		return errors.Errorf("unknown display %q", f.Display)
	}
	switch f.Opponent {
	case "heuristic", "random":
	default:
		return errors.Errorf("unknown opponent %q", f.Opponent)
	}
	switch f.Store {
	case "json", "sqlite":
	default:
		return errors.Errorf("unknown store %q", f.Store)
	}
	return nil
}

func (f *Flags) Record() error {
	return util.SaveJson(path.Join(f.SavePath, "config.json"), f)
}
