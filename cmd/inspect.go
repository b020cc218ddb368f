package cmd

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"
	"github.com/zeu5/ttt-rl/core"
	"github.com/zeu5/ttt-rl/frontend"
	"github.com/zeu5/ttt-rl/policies"
)

func InspectCommand() *cobra.Command {
	var noColor bool
	cmd := &cobra.Command{
		Use:   "inspect [state]",
		Short: "Show the stats and the learned action values of a board state",
		Long:  "Show the stats and the learned action values of a board state, given as 9 cells of X, O or _ (default: the empty board)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state := core.EmptyState
			if len(args) == 1 {
				s, err := core.ParseState(args[0])
				if err != nil {
					return err
				}
				state = s
			}

			store, closeStore, err := openStore(flags)
			if err != nil {
				return err
			}
			defer closeStore()

			values := policies.NewValueTableFrom(store.LoadTable())
			stats := store.LoadStats(core.Stats{Epsilon: flags.Epsilon})
			learner := policies.NewQLearningAgent(core.X, values, sources(flags.Seed, 1)[0])

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", frontend.FormatStats(stats))
			fmt.Fprintf(out, "%s learned values\n\n", humanize.Comma(int64(values.Size())))
			printValues(out, aurora.NewAurora(!noColor), core.BoardFromState(state), learner.ActionValues(core.BoardFromState(state)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colors")
	return cmd
}

// printValues prints the board with the value of every free cell. The greedy cells are highlighted.
func printValues(out io.Writer, au aurora.Aurora, board *core.Board, values map[core.Action]float64) {
	best := 0.0
	first := true
	for _, v := range values {
		if first || v > best {
			best = v
			first = false
		}
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			a := core.Action(3*r + c)
			v, ok := values[a]
			switch {
			case !ok:
				fmt.Fprintf(out, "       %s ", frontend.MarkColor(au, board.Cell(int(a))))
			case v == best:
				fmt.Fprintf(out, " %s ", au.Bold(au.Green(fmt.Sprintf("%+7.4f", v))))
			default:
				fmt.Fprintf(out, " %+7.4f ", v)
			}
		}
		fmt.Fprintln(out)
	}
}
