// Package argdemo implements a demo program meant to be launched as a child
// process: it prints a banner, greets the user named on the command line and
// emits a JSON summary of the arguments.
package argdemo

// Args holds the positional arguments the runner understands.
// Only the first three positions are read; anything after is ignored.
type Args struct {
	Name    string
	RawAge  *string
	RawJob  *string
	Present bool
}

// ParseArgs maps positional arguments (without the program name) onto Args.
func ParseArgs(args []string) Args {
	var out Args
	if len(args) == 0 {
		return out
	}

	out.Present = true
	out.Name = args[0]

	if len(args) > 1 {
		age := args[1]
		out.RawAge = &age
	}

	if len(args) > 2 {
		job := args[2]
		out.RawJob = &job
	}

	return out
}

// UserInfo is the human-readable view of Args used by the greeting block.
type UserInfo struct {
	Name string
	Age  string
	Job  string
}

// UserInfo applies the greeting defaults: "Guest" for the name and
// "Unknown" for a missing age or job.
func (a Args) UserInfo() UserInfo {
	info := UserInfo{
		Name: DefaultName,
		Age:  UnknownValue,
		Job:  UnknownValue,
	}

	if a.Present {
		info.Name = a.Name
	}

	if a.RawAge != nil {
		info.Age = *a.RawAge
	}

	if a.RawJob != nil {
		info.Job = *a.RawJob
	}

	return info
}
