package invoke

import "time"

// Config describes how to launch the child program.
type Config struct {
	Cmd       []string      `json:"cmd"                  mapstructure:"cmd"`
	WorkDir   string        `json:"work_dir,omitempty"   mapstructure:"work_dir"`
	Charset   string        `json:"charset,omitempty"    mapstructure:"charset"`
	UseTTY    bool          `json:"use_tty,omitempty"    mapstructure:"use_tty"`
	WaitDelay time.Duration `json:"wait_delay,omitempty" mapstructure:"wait_delay"`
}
