package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/metalagman/argdemo/invoke"
)

const (
	outputHeaderWithArgs = "=== 带参数的Python脚本输出 ==="
	outputHeader         = "=== Python脚本输出 ==="
	outputFooter         = "======================="
	exitCodeLabel        = "退出码: "
	stderrLabel          = "错误输出:"
)

type childOptions struct {
	useTTY  bool
	charset string
	workDir string
	timeout time.Duration
}

func addChildFlags(cmd *cobra.Command, opts *childOptions) {
	cmd.Flags().BoolVar(&opts.useTTY, "tty", false, "run the child in a pseudo-terminal")
	cmd.Flags().StringVar(&opts.charset, "charset", invoke.DefaultCharset, "charset of the child's output, e.g. utf-8 or gbk")
	cmd.Flags().StringVar(&opts.workDir, "work-dir", "", "working directory for the child")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "timeout for the child execution")
	cmd.Flags().SetInterspersed(false)
}

func newRunCmd(g *globalOptions) *cobra.Command {
	opts := &childOptions{}
	cmd := &cobra.Command{
		Use:   "run [flags] -- <cmd> [args...]",
		Short: "Run a child program and print its output followed by the exit code",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildRunConfig(args, opts)
			if err != nil {
				return err
			}

			return runAndReport(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), g, cfg)
		},
	}

	addChildFlags(cmd, opts)

	return cmd
}

type runConfig struct {
	runner    invoke.Runner
	childArgs []string
	timeout   time.Duration
}

func buildRunConfig(args []string, opts *childOptions) (runConfig, error) {
	if len(args) == 0 {
		return runConfig{}, invoke.ErrEmptyCommand
	}

	runner, err := invoke.NewRunner(invoke.Config{
		Cmd:     args[:1],
		WorkDir: opts.workDir,
		Charset: opts.charset,
		UseTTY:  opts.useTTY,
	})
	if err != nil {
		return runConfig{}, err
	}

	return runConfig{
		runner:    runner,
		childArgs: args[1:],
		timeout:   opts.timeout,
	}, nil
}

func runChild(ctx context.Context, g *globalOptions, cfg runConfig) (invoke.Result, error) {
	if cfg.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	res, err := cfg.runner.Run(ctx, cfg.childArgs, invoke.WithLogger(g.logger))
	if err != nil {
		return res, fmt.Errorf("run child: %w", err)
	}

	return res, nil
}

func runAndReport(ctx context.Context, stdout, stderr io.Writer, g *globalOptions, cfg runConfig) error {
	res, err := runChild(ctx, g, cfg)
	if err != nil && res.ExitCode == 0 {
		return exitWithError(stderr, g, 1, res.Stderr, err)
	}

	header := outputHeader
	if len(cfg.childArgs) > 0 {
		header = outputHeaderWithArgs
	}

	var b strings.Builder

	b.WriteString(header + "\n")
	b.Write(normalizeNewlines(res.Stdout))

	if len(res.Stdout) > 0 && res.Stdout[len(res.Stdout)-1] != '\n' {
		b.WriteString("\n")
	}

	b.WriteString(outputFooter + "\n")
	fmt.Fprintf(&b, "%s%d\n", exitCodeLabel, res.ExitCode)

	if _, werr := io.WriteString(stdout, b.String()); werr != nil {
		return exitWithError(stderr, g, 1, nil, fmt.Errorf("write stdout: %w", werr))
	}

	if len(res.Stderr) > 0 {
		_, _ = fmt.Fprintf(stderr, "%s\n%s", stderrLabel, res.Stderr)
	}

	if err != nil {
		g.logger.Error().Err(err).Int("exit_code", res.ExitCode).Msg("child failed")
		exitFn(exitStatus(res.ExitCode))
	}

	return nil
}

func normalizeNewlines(data []byte) []byte {
	return []byte(strings.ReplaceAll(string(data), "\r\n", "\n"))
}

func exitWithError(stderr io.Writer, g *globalOptions, code int, errBytes []byte, err error) error {
	if len(errBytes) > 0 {
		_, _ = stderr.Write(errBytes)
	}

	if err != nil {
		g.logger.Error().Err(err).Msg("host failed")
	}

	exitFn(exitStatus(code))

	return nil
}

// exitStatus maps a child exit code onto the host's. Signals and start
// failures report 0 or -1 and become 1.
func exitStatus(code int) int {
	if code <= 0 {
		return 1
	}

	return code
}
