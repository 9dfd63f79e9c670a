package invoke

import "errors"

var (
	// ErrEmptyCommand indicates no command was configured.
	ErrEmptyCommand = errors.New("command is empty")
	// ErrRunFailed indicates the child exited with a non-zero code.
	ErrRunFailed = errors.New("child run failed")
	// ErrUnknownCharset indicates the configured charset has no decoder.
	ErrUnknownCharset = errors.New("unknown charset")
)
