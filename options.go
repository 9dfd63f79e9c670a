package argdemo

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
)

//go:generate go tool options-gen -from-struct=RunnerOptions -out-filename=options_generated.go -defaults-from=func=defaultRunnerOptions

// RunnerOptions defines the environment the runner reports on.
type RunnerOptions struct {
	clock      func() time.Time `validate:"required"`
	version    string
	scriptName string
	logger     zerolog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption = OptRunnerOptionsSetter

func resolveRunnerOptions(opts []RunnerOption) (RunnerOptions, error) {
	out := NewRunnerOptions(opts...)
	if err := out.Validate(); err != nil {
		return RunnerOptions{}, err
	}

	return out, nil
}

func defaultRunnerOptions() RunnerOptions {
	scriptName := ""
	if len(os.Args) > 0 {
		scriptName = os.Args[0]
	}

	return RunnerOptions{
		clock:      time.Now,
		version:    RuntimeVersion(),
		scriptName: scriptName,
		logger:     zerolog.Nop(),
	}
}

// RuntimeVersion describes the Go runtime the way the banner prints it.
func RuntimeVersion() string {
	return fmt.Sprintf("%s (%s/%s, %s)", runtime.Version(), runtime.GOOS, runtime.GOARCH, runtime.Compiler)
}
