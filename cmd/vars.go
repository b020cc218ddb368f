package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/zeu5/ttt-rl/config"
)

var (
	flags      *config.Flags = config.DefaultFlags()
	configPath string
	savePath   string
	debug      bool
	seed       uint64

	store     string
	tablePath string
	statsPath string
	dbPath    string

	episodes     int
	delay        time.Duration
	display      string
	opponent     string
	epsilon      float64
	minEpsilon   float64
	epsilonDecay float64
	saveInterval int
	window       int
)

func AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML/TOML config file, overridden by explicit flags")
	cmd.PersistentFlags().StringVar(&savePath, "save-path", flags.SavePath, "Path to save analysis results")
	cmd.PersistentFlags().BoolVar(&debug, "debug", flags.Debug, "Dump episode traces under the save path")
	cmd.PersistentFlags().Uint64Var(&seed, "seed", flags.Seed, "Random seed, 0 seeds from the clock")

	cmd.PersistentFlags().StringVar(&store, "store", flags.Store, "Value table store: json or sqlite")
	cmd.PersistentFlags().StringVar(&tablePath, "table", flags.TablePath, "Value table file for the json store")
	cmd.PersistentFlags().StringVar(&statsPath, "stats", flags.StatsPath, "Stats file for the json store")
	cmd.PersistentFlags().StringVar(&dbPath, "db", flags.DBPath, "Database file for the sqlite store")
}

func AddTrainFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&episodes, "episodes", flags.Episodes, "Number of episodes, 0 runs until interrupted")
	cmd.Flags().DurationVar(&delay, "delay", flags.Delay, "Delay between episodes")
	cmd.Flags().StringVar(&display, "display", flags.Display, "Display: terminal, progress or none")
	cmd.Flags().StringVar(&opponent, "opponent", flags.Opponent, "Opponent: heuristic or random")
	cmd.Flags().Float64Var(&epsilon, "epsilon", flags.Epsilon, "Initial exploration rate")
	cmd.Flags().Float64Var(&minEpsilon, "min-epsilon", flags.MinEpsilon, "Exploration rate floor")
	cmd.Flags().Float64Var(&epsilonDecay, "epsilon-decay", flags.EpsilonDecay, "Exploration decay per episode")
	cmd.Flags().IntVar(&saveInterval, "save-interval", flags.SaveInterval, "Games between saves")
	cmd.Flags().IntVar(&window, "window", flags.Window, "Games per learning curve sample")
}

// UpdateFlags loads the configuration and applies the flags set on the command line over it
func UpdateFlags(cmd *cobra.Command) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	set := cmd.Flags().Changed

	if set("save-path") {
		loaded.SavePath = savePath
	}
	if set("debug") {
		loaded.Debug = debug
	}
	if set("seed") {
		loaded.Seed = seed
	}

	if set("store") {
		loaded.Store = store
	}
	if set("table") {
		loaded.TablePath = tablePath
	}
	if set("stats") {
		loaded.StatsPath = statsPath
	}
	if set("db") {
		loaded.DBPath = dbPath
	}

	if set("episodes") {
		loaded.Episodes = episodes
	}
	if set("delay") {
		loaded.Delay = delay
	}
	if set("display") {
		loaded.Display = display
	}
	if set("opponent") {
		loaded.Opponent = opponent
	}
	if set("epsilon") {
		loaded.Epsilon = epsilon
	}
	if set("min-epsilon") {
		loaded.MinEpsilon = minEpsilon
	}
	if set("epsilon-decay") {
		loaded.EpsilonDecay = epsilonDecay
	}
	if set("save-interval") {
		loaded.SaveInterval = saveInterval
	}
	if set("window") {
		loaded.Window = window
	}

	if err := loaded.Validate(); err != nil {
		return err
	}
	flags = loaded
	return nil
}
