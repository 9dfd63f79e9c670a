package invoke

import (
	"io"

	"github.com/rs/zerolog"
)

//go:generate go tool options-gen -from-struct=RunOptions -out-filename=options_generated.go -defaults-from=func=defaultRunOptions

// RunOptions defines per-call behavior of a run.
type RunOptions struct {
	stdout io.Writer `validate:"required"`
	stderr io.Writer `validate:"required"`
	tty    bool
	logger zerolog.Logger
}

// RunOption configures a single run.
type RunOption = OptRunOptionsSetter

// WithTTY enables or disables pseudo-terminal execution.
func WithTTY(enabled bool) RunOption {
	return WithTty(enabled)
}

func resolveRunOptions(opts []RunOption) (RunOptions, error) {
	out := NewRunOptions(opts...)
	if err := out.Validate(); err != nil {
		return RunOptions{}, err
	}

	return out, nil
}

func defaultRunOptions() RunOptions {
	return RunOptions{
		stdout: io.Discard,
		stderr: io.Discard,
		tty:    false,
		logger: zerolog.Nop(),
	}
}
