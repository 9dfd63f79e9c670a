package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metalagman/argdemo/transcript"
)

type inspectReport struct {
	ExitCode   int                   `json:"exit_code"`
	Transcript transcript.Transcript `json:"transcript"`
	Stderr     string                `json:"stderr,omitempty"`
}

func newInspectCmd(g *globalOptions) *cobra.Command {
	opts := &childOptions{}
	cmd := &cobra.Command{
		Use:   "inspect [flags] -- <cmd> [args...]",
		Short: "Run a child program and print its parsed output as JSON",
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

			parsed, err := transcript.Parse(string(res.Stdout))
			if err != nil {
				return exitWithError(cmd.ErrOrStderr(), g, 1, nil, fmt.Errorf("parse output: %w", err))
			}

			report := inspectReport{
				ExitCode:   res.ExitCode,
				Transcript: parsed,
				Stderr:     string(res.Stderr),
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "  ")

			if err := enc.Encode(report); err != nil {
				return exitWithError(cmd.ErrOrStderr(), g, 1, nil, fmt.Errorf("write stdout: %w", err))
			}

			return nil
		},
	}

	addChildFlags(cmd, opts)

	return cmd
}
