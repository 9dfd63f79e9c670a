package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type globalOptions struct {
	debug     bool
	logFormat string
	logger    zerolog.Logger
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:           "argdemo-host",
		Short:         "Launch a child program and read back its output",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), g.logFormat, g.debug)
			if err != nil {
				return err
			}

			g.logger = logger

			return nil
		},
	}

	root.PersistentFlags().BoolVar(&g.debug, "debug", false, "log debug diagnostics to stderr")
	root.PersistentFlags().StringVar(&g.logFormat, "log-format", "console", "log format: console or json")

	root.AddCommand(newRunCmd(g))
	root.AddCommand(newJSONCmd(g))
	root.AddCommand(newInspectCmd(g))

	return root
}

func newLogger(w io.Writer, format string, debug bool) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	switch format {
	case "console":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: !isTerminal(w)}
	case "json":
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q", format)
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
