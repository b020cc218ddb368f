package cmd

import (
	"flag"

	"github.com/spf13/cobra"
)

func RootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "ttt-rl",
		Short:        "Train a tabular Q-learning agent at tic-tac-toe",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// glog reads its flags from the standard flag set
			flag.CommandLine.Parse([]string{})
			return UpdateFlags(cmd)
		},
	}
	AddFlags(cmd)
	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	cmd.AddCommand(
		TrainCommand(),
		InspectCommand(),
	)

	return cmd
}
