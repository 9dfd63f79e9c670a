package main

import (
	"github.com/spf13/cobra"

	"github.com/metalagman/argdemo"
)

func newRootCmd(opts ...argdemo.RunnerOption) *cobra.Command {
	root := &cobra.Command{
		Use:                "argdemo [name] [age] [job]",
		Short:              "Print a banner, a greeting and a JSON summary of the arguments",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := argdemo.NewRunner(opts...)
			if err != nil {
				return err
			}

			exitFn(runner.Run(cmd.OutOrStdout(), args))

			return nil
		},
	}

	return root
}

// execute runs root with args. Cobra always registers its hidden completion
// command, so a first argument naming it is rendered as a plain name instead.
func execute(root *cobra.Command, args []string) error {
	if len(args) > 0 && (args[0] == cobra.ShellCompRequestCmd || args[0] == cobra.ShellCompNoDescRequestCmd) {
		return root.RunE(root, args)
	}

	if args == nil {
		// A nil slice makes cobra fall back to os.Args.
		args = []string{}
	}

	root.SetArgs(args)

	return root.Execute()
}
