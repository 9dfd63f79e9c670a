package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metalagman/argdemo/transcript"
)

func newJSONCmd(g *globalOptions) *cobra.Command {
	opts := &childOptions{}
	cmd := &cobra.Command{
		Use:   "json [flags] -- <cmd> [args...]",
		Short: "Run a child program and print only its JSON response block",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildRunConfig(args, opts)
			if err != nil {
				return err
			}

			res, err := runChild(cmd.Context(), g, cfg)
			if err != nil {
				return exitWithError(cmd.ErrOrStderr(), g, res.ExitCode, res.Stderr, err)
			}

			_, raw, err := transcript.ExtractResponse(string(res.Stdout))
			if err != nil {
				return exitWithError(cmd.ErrOrStderr(), g, 1, nil, fmt.Errorf("extract response: %w", err))
			}

			if _, err := fmt.Fprintln(cmd.OutOrStdout(), string(raw)); err != nil {
				return exitWithError(cmd.ErrOrStderr(), g, 1, nil, fmt.Errorf("write stdout: %w", err))
			}

			return nil
		},
	}

	addChildFlags(cmd, opts)

	return cmd
}
