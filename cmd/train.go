package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path"
	"time"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/zeu5/ttt-rl/analysis"
	"github.com/zeu5/ttt-rl/core"
	"github.com/zeu5/ttt-rl/frontend"
	"github.com/zeu5/ttt-rl/policies"
)

// traced is the number of final episodes dumped with --debug on a bounded run
const traced = 10

func TrainCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the agent against the opponent",
		RunE: func(cmd *cobra.Command, args []string) error {
			var cmp core.Comparator = analysis.NewNoOpComparator()
			if flags.SavePath != "" {
				if err := flags.Record(); err != nil {
					glog.Warningf("failed to record config: %s", err)
				}
				cmp = analysis.NewCurveComparator(path.Join(flags.SavePath, "sessions"))
			}

			store, closeStore, err := openStore(flags)
			if err != nil {
				return err
			}
			defer closeStore()

			srcs := sources(flags.Seed, 2)
			values := policies.NewValueTableFrom(store.LoadTable())
			learner := policies.NewQLearningAgent(core.X, values, srcs[0])
			var opp core.Opponent
			switch flags.Opponent {
			case "random":
				opp = policies.NewRandomOpponent(learner.Opponent(), srcs[1])
			default:
				opp = policies.NewHeuristicOpponent(learner.Opponent(), srcs[1])
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt)
			defer signal.Stop(sigCh)

			doneCh := make(chan struct{})

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go func() {
				select {
				case <-sigCh:
				case <-doneCh:
				}
				cancel()
			}()

			var d core.Display = core.NopDisplay{}
			switch flags.Display {
			case "terminal":
				td := frontend.NewTerminalDisplay(os.Stdout, 100*time.Millisecond, true)
				td.Start(ctx)
				defer td.Stop()
				d = td
			case "progress":
				d = frontend.NewProgressDisplay(os.Stdout, flags.Episodes)
			}

			scheduler := frontend.NewTimerScheduler(flags.Delay, flags.Episodes)
			trainer := core.NewTrainer(core.TrainerConfig{
				Learner:   learner,
				Opponent:  opp,
				Table:     values,
				Store:     store,
				Display:   d,
				Scheduler: scheduler,
				RunConfig: flags.RunConfig(),
			})
			trainer.AddAnalyzer("outcomes", analysis.NewOutcomeAnalyzer(flags.Window))
			if flags.Debug && flags.SavePath != "" {
				threshold := 0
				if flags.Episodes > traced {
					threshold = flags.Episodes - traced
				}
				trainer.AddAnalyzer("traces", analysis.NewTraceAnalyzer(flags.SavePath, threshold))
			}

			scheduler.Start(ctx)
			scheduler.Schedule(trainer.Start)
			<-scheduler.Done()
			close(doneCh)

			stopErr := trainer.Stop()
			if err := cmp.Compare(trainer.Session().String(), trainer.DataSets()); err != nil {
				glog.Warningf("failed to write learning curve: %s", err)
			}
			glog.Flush()

			fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", frontend.FormatStats(trainer.Stats()))
			return errors.Join(trainer.Err(), stopErr)
		},
	}
	AddTrainFlags(cmd)

	return cmd
}
