package invoke

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metalagman/argdemo"
	"github.com/metalagman/argdemo/transcript"
)

var binDir string

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "invoke-test")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	binDir = dir

	targets := map[string]string{
		"argdemo":   filepath.Join("..", "cmd", "argdemo"),
		"gbkecho":   filepath.Join("testdata", "gbkecho", "main.go"),
		"failchild": filepath.Join("testdata", "failchild", "main.go"),
	}

	for name, src := range targets {
		out, err := exec.Command("go", "build", "-o", filepath.Join(dir, name), src).CombinedOutput()
		if err != nil {
			fmt.Fprintf(os.Stderr, "build %s: %v\n%s", name, err, out)
			_ = os.RemoveAll(dir)
			os.Exit(1)
		}
	}

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func bin(name string) string {
	return filepath.Join(binDir, name)
}

func newTestRunner(t *testing.T, name string, cfg Config) *ExecRunner {
	t.Helper()

	cfg.Cmd = []string{bin(name)}

	runner, err := NewRunner(cfg)
	require.NoError(t, err)

	return runner
}

func TestNewRunnerRequiresCmd(t *testing.T) {
	_, err := NewRunner(Config{})
	assert.True(t, errors.Is(err, ErrEmptyCommand))
}

func TestNewRunnerUnknownCharset(t *testing.T) {
	_, err := NewRunner(Config{Cmd: []string{"true"}, Charset: "klingon"})
	assert.True(t, errors.Is(err, ErrUnknownCharset))
}

func TestRunArgdemoScenarios(t *testing.T) {
	year := time.Now().Year()

	tests := []struct {
		name         string
		args         []string
		wantGreeting bool
		wantBirth    string
		wantAge      *string
	}{
		{name: "no args", args: nil},
		{name: "name only", args: []string{"Alice"}, wantGreeting: true, wantBirth: argdemo.BirthYearUnknown},
		{
			name:         "numeric age",
			args:         []string{"Bob", "30", "Engineer"},
			wantGreeting: true,
			wantBirth:    fmt.Sprintf("约 %d 年", year-30),
			wantAge:      ptr("30"),
		},
		{
			name:         "text age",
			args:         []string{"Eve", "abc", "Doctor"},
			wantGreeting: true,
			wantBirth:    argdemo.BirthYearUnknown,
			wantAge:      ptr("abc"),
		},
	}

	runner := newTestRunner(t, "argdemo", Config{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := runner.Run(context.Background(), tt.args)
			require.NoError(t, err)
			assert.Equal(t, 0, res.ExitCode)
			assert.Empty(t, res.Stderr)

			parsed, err := transcript.Parse(string(res.Stdout))
			require.NoError(t, err)
			assert.True(t, parsed.Completed)

			if !tt.wantGreeting {
				assert.True(t, parsed.NoArgs)
				assert.Nil(t, parsed.Greeting)
				assert.Nil(t, parsed.Response)

				return
			}

			require.NotNil(t, parsed.Greeting)
			assert.Equal(t, tt.wantBirth, parsed.Greeting.BirthYear)
			require.NotNil(t, parsed.Response)
			assert.Equal(t, tt.args[0], parsed.Response.UserInfo.Name)
			assert.Equal(t, tt.wantAge, parsed.Response.UserInfo.Age)
		})
	}
}

func TestRunWithTTY(t *testing.T) {
	runner := newTestRunner(t, "argdemo", Config{UseTTY: true})

	res, err := runner.Run(context.Background(), []string{"张三", "18", "Java开发工程师"})
	require.NoError(t, err)
	assert.Empty(t, res.Stderr)
	assert.Contains(t, string(res.Stdout), "\r\n")

	parsed, err := transcript.Parse(string(res.Stdout))
	require.NoError(t, err)
	require.NotNil(t, parsed.Response)
	assert.Equal(t, "张三", parsed.Response.UserInfo.Name)
}

func TestRunDecodesGBK(t *testing.T) {
	runner := newTestRunner(t, "gbkecho", Config{Charset: "gbk"})

	res, err := runner.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "你好, GBK!\n", string(res.Stdout))
}

func TestRunExitNonZero(t *testing.T) {
	runner := newTestRunner(t, "failchild", Config{})

	var stdout, stderr bytes.Buffer

	res, err := runner.Run(context.Background(), nil, WithStdout(&stdout), WithStderr(&stderr))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRunFailed))
	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "stdout line\n", string(res.Stdout))
	assert.Equal(t, "stderr line\n", string(res.Stderr))
	assert.Equal(t, "stdout line\n", stdout.String())
	assert.Equal(t, "stderr line\n", stderr.String())
}

func TestRunExitNonZeroWithTTY(t *testing.T) {
	runner := newTestRunner(t, "failchild", Config{})

	res, err := runner.Run(context.Background(), nil, WithTTY(true))
	require.Error(t, err)
	assert.Equal(t, 3, res.ExitCode)
	assert.Empty(t, res.Stderr)

	out := string(res.Stdout)
	assert.Contains(t, out, "stdout line")
	assert.Contains(t, out, "stderr line")
}

func TestRunMissingBinary(t *testing.T) {
	runner, err := NewRunner(Config{Cmd: []string{"definitely-missing-binary"}})
	require.NoError(t, err)

	_, err = runner.Run(context.Background(), nil)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrRunFailed))
}

func TestRunLogs(t *testing.T) {
	runner := newTestRunner(t, "argdemo", Config{})

	var logs bytes.Buffer

	_, err := runner.Run(context.Background(), []string{"Bob"}, WithLogger(zerolog.New(&logs).Level(zerolog.DebugLevel)))
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "starting child")
	assert.Contains(t, logs.String(), "child finished")
}

func TestRunCommandErrors(t *testing.T) {
	_, _, _, err := runCommand(context.Background(), nil, ".", DefaultWaitDelay, nil, nil)
	assert.True(t, errors.Is(err, ErrEmptyCommand))

	_, _, _, err = runCommand(context.Background(), []string{"definitely-missing-binary"}, ".", DefaultWaitDelay, nil, nil)
	assert.Error(t, err)
}

func TestRunCommandWithTTYErrors(t *testing.T) {
	_, _, err := runCommandWithTTY(context.Background(), nil, ".", DefaultWaitDelay, nil)
	assert.True(t, errors.Is(err, ErrEmptyCommand))

	_, _, err = runCommandWithTTY(context.Background(), []string{"definitely-missing-binary"}, ".", DefaultWaitDelay, nil)
	assert.Error(t, err)
}

func TestLookupCharset(t *testing.T) {
	for _, name := range []string{"", "utf-8", "UTF-8", "gbk", "gb18030", " gbk "} {
		enc, err := lookupCharset(name)
		require.NoError(t, err, name)
		assert.NotNil(t, enc, name)
	}

	_, err := lookupCharset("no-such-charset")
	assert.True(t, errors.Is(err, ErrUnknownCharset))
}

func TestResolveRunOptionsDefault(t *testing.T) {
	opts, err := resolveRunOptions(nil)
	require.NoError(t, err)
	assert.NotNil(t, opts.stdout)
	assert.NotNil(t, opts.stderr)
	assert.False(t, opts.tty)
}

func TestRunOptionsValidation(t *testing.T) {
	_, err := resolveRunOptions([]RunOption{WithStdout(nil)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stdout")

	runner := newTestRunner(t, "argdemo", Config{})
	_, err = runner.Run(context.Background(), nil, WithStderr(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stderr")
}

func TestRunTimeoutWithBackgroundGrandchild(t *testing.T) {
	for _, tty := range []bool{false, true} {
		t.Run(fmt.Sprintf("tty=%v", tty), func(t *testing.T) {
			runner, err := NewRunner(Config{
				Cmd:       []string{"sh", "-c", "sleep 6 & echo hi"},
				UseTTY:    tty,
				WaitDelay: time.Second,
			})
			require.NoError(t, err)

			ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
			defer cancel()

			start := time.Now()
			res, err := runner.Run(ctx, nil)

			assert.Less(t, time.Since(start), 4*time.Second)
			assert.Contains(t, string(res.Stdout), "hi")

			if !tty {
				// The pipes stay open past the deadline, so the run ends on it.
				require.Error(t, err)
				assert.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
			}
		})
	}
}

func TestRunWaitDelayWithoutDeadline(t *testing.T) {
	runner, err := NewRunner(Config{
		Cmd:       []string{"sh", "-c", "sleep 6 & echo hi"},
		WaitDelay: 200 * time.Millisecond,
	})
	require.NoError(t, err)

	start := time.Now()
	res, err := runner.Run(context.Background(), nil)

	assert.Less(t, time.Since(start), 3*time.Second)
	assert.Equal(t, "hi\n", string(res.Stdout))
	require.Error(t, err)
	assert.True(t, errors.Is(err, exec.ErrWaitDelay), "got %v", err)
}

func TestRunTimeoutKillsChild(t *testing.T) {
	runner, err := NewRunner(Config{Cmd: []string{"sleep", "6"}})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = runner.Run(ctx, nil)

	assert.Less(t, time.Since(start), 3*time.Second)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
}

func TestNewRunnerDefaultWaitDelay(t *testing.T) {
	runner, err := NewRunner(Config{Cmd: []string{"true"}})
	require.NoError(t, err)
	assert.Equal(t, DefaultWaitDelay, runner.waitDelay)
}

func TestWorkDir(t *testing.T) {
	dir := t.TempDir()
	runner, err := NewRunner(Config{Cmd: []string{"pwd"}, WorkDir: dir})
	require.NoError(t, err)

	res, err := runner.Run(context.Background(), nil)
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(strings.TrimSpace(string(res.Stdout)))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func ptr(s string) *string { return &s }
