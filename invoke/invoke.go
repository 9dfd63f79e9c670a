// Package invoke launches a child program, captures what it prints and
// decodes it from the child's charset.
package invoke

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/creack/pty"
	"golang.org/x/text/encoding"
)

// Runner executes a child program with positional arguments.
type Runner interface {
	Run(ctx context.Context, args []string, opts ...RunOption) (Result, error)
}

// DefaultWaitDelay bounds how long a run waits for output after the child
// exits or its context is done, when Config.WaitDelay is zero.
const DefaultWaitDelay = time.Second

// Result holds the decoded output of a finished child. Stderr is empty in TTY
// mode because the pseudo-terminal merges both streams into Stdout.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// NewRunner constructs a runner for the given config.
func NewRunner(cfg Config) (*ExecRunner, error) {
	if len(cfg.Cmd) == 0 {
		return nil, ErrEmptyCommand
	}

	enc, err := lookupCharset(cfg.Charset)
	if err != nil {
		return nil, err
	}

	waitDelay := cfg.WaitDelay
	if waitDelay <= 0 {
		waitDelay = DefaultWaitDelay
	}

	return &ExecRunner{
		cmd:       append([]string(nil), cfg.Cmd...),
		workDir:   cfg.WorkDir,
		useTTY:    cfg.UseTTY,
		waitDelay: waitDelay,
		enc:       enc,
	}, nil
}

// ExecRunner runs a fixed command line through os/exec, with the output
// either piped or attached to a pseudo-terminal.
type ExecRunner struct {
	cmd       []string
	workDir   string
	useTTY    bool
	waitDelay time.Duration
	enc       encoding.Encoding
}

// Run starts the command with args appended and waits for it. A non-zero exit
// wraps ErrRunFailed; a done ctx is reported through its error even when the
// child itself exited cleanly. The returned Result carries whatever output was
// captured in either case.
func (r *ExecRunner) Run(ctx context.Context, args []string, opts ...RunOption) (Result, error) {
	opts = append([]RunOption{WithTTY(r.useTTY)}, opts...)

	runOpts, err := resolveRunOptions(opts)
	if err != nil {
		return Result{}, fmt.Errorf("resolve options: %w", err)
	}

	argv := make([]string, 0, len(r.cmd)+len(args))
	argv = append(argv, r.cmd...)
	argv = append(argv, args...)

	log := runOpts.logger.With().Strs("argv", argv).Bool("tty", runOpts.tty).Logger()
	log.Debug().Msg("starting child")

	var (
		outBytes, errBytes []byte
		exitCode           int
		runErr             error
	)

	if runOpts.tty {
		outBytes, exitCode, runErr = runCommandWithTTY(ctx, argv, r.workDir, r.waitDelay, runOpts.stdout)
	} else {
		outBytes, errBytes, exitCode, runErr = runCommand(ctx, argv, r.workDir, r.waitDelay, runOpts.stdout, runOpts.stderr)
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		runErr = errors.Join(ctxErr, runErr)
	}

	res, err := r.decodeResult(outBytes, errBytes, exitCode)
	if err != nil {
		return Result{ExitCode: exitCode}, err
	}

	if runErr != nil {
		if exitCode != 0 {
			runErr = fmt.Errorf("exit code %d: %w", exitCode, errors.Join(ErrRunFailed, runErr))
		}

		log.Debug().Err(runErr).Int("exit_code", exitCode).Msg("child failed")

		return res, runErr
	}

	log.Debug().Int("stdout_bytes", len(res.Stdout)).Msg("child finished")

	return res, nil
}

func (r *ExecRunner) decodeResult(outBytes, errBytes []byte, exitCode int) (Result, error) {
	stdout, err := decode(r.enc, outBytes)
	if err != nil {
		return Result{}, fmt.Errorf("stdout: %w", err)
	}

	stderr, err := decode(r.enc, errBytes)
	if err != nil {
		return Result{}, fmt.Errorf("stderr: %w", err)
	}

	return Result{Stdout: stdout, Stderr: stderr, ExitCode: exitCode}, nil
}

func runCommand(
	ctx context.Context,
	argv []string,
	workDir string,
	waitDelay time.Duration,
	stdoutSink io.Writer,
	stderrSink io.Writer,
) ([]byte, []byte, int, error) {
	if len(argv) == 0 {
		return nil, nil, 0, ErrEmptyCommand
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = workDir
	// Grandchildren may keep the pipes open after the child exits.
	cmd.WaitDelay = waitDelay

	var (
		stdout bytes.Buffer
		stderr bytes.Buffer
	)

	if stdoutSink != nil {
		cmd.Stdout = io.MultiWriter(&stdout, stdoutSink)
	} else {
		cmd.Stdout = &stdout
	}

	if stderrSink != nil {
		cmd.Stderr = io.MultiWriter(&stderr, stderrSink)
	} else {
		cmd.Stderr = &stderr
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stdout.Bytes(), stderr.Bytes(), exitErr.ExitCode(), err
		}

		return stdout.Bytes(), stderr.Bytes(), 0, fmt.Errorf("cmd run: %w", err)
	}

	return stdout.Bytes(), stderr.Bytes(), 0, nil
}

func runCommandWithTTY(
	ctx context.Context,
	argv []string,
	workDir string,
	waitDelay time.Duration,
	stdoutSink io.Writer,
) ([]byte, int, error) {
	if len(argv) == 0 {
		return nil, 0, ErrEmptyCommand
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = workDir

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return nil, 0, fmt.Errorf("start pty: %w", err)
	}

	var out bytes.Buffer

	var outWriter io.Writer = &out
	if stdoutSink != nil {
		outWriter = io.MultiWriter(&out, stdoutSink)
	}

	done := make(chan struct{})

	go func() {
		// Reads fail with EIO once the child side closes; that ends the copy.
		_, _ = io.Copy(outWriter, ptmx)
		close(done)
	}()

	err = cmd.Wait()

	// A grandchild holding the terminal keeps the copy alive; closing the
	// master after waitDelay ends it.
	timer := time.NewTimer(waitDelay)
	select {
	case <-done:
	case <-timer.C:
	}

	timer.Stop()

	_ = ptmx.Close()
	<-done

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return out.Bytes(), exitErr.ExitCode(), err
		}

		return out.Bytes(), 0, fmt.Errorf("cmd wait: %w", err)
	}

	return out.Bytes(), 0, nil
}
