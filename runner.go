package argdemo

import (
	"fmt"
	"io"
)

// ExitSuccess is the only exit status the runner produces.
const ExitSuccess = 0

// Runner renders the demo output for one invocation.
type Runner struct {
	opts RunnerOptions
}

// NewRunner constructs a runner. Without options it reports the real clock,
// Go runtime and os.Args[0].
func NewRunner(opts ...RunnerOption) (*Runner, error) {
	runOpts, err := resolveRunnerOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("resolve options: %w", err)
	}

	return &Runner{opts: runOpts}, nil
}

// Run writes the full output for args (program name excluded) to w and
// returns the process exit status.
func (r *Runner) Run(w io.Writer, args []string) int {
	p := &printer{w: w}
	parsed := ParseArgs(args)

	r.opts.logger.Debug().
		Int("args", len(args)).
		Bool("present", parsed.Present).
		Msg("runner started")

	r.printInfo(p)

	if parsed.Present {
		r.greet(p, parsed)
		r.writeJSONResponse(p, parsed)
	} else {
		p.blank()
		p.println(NoArgsHeader)
		p.println(NoArgsHint)
	}

	p.blank()
	p.println(DoneLine)

	if p.err != nil {
		r.opts.logger.Warn().Err(p.err).Msg("write output")
	}

	return ExitSuccess
}

// PrintInfo writes the banner block.
func (r *Runner) PrintInfo(w io.Writer) error {
	p := &printer{w: w}
	r.printInfo(p)

	return p.err
}

// Greet writes the greeting block for args.
func (r *Runner) Greet(w io.Writer, args Args) error {
	p := &printer{w: w}
	r.greet(p, args)

	return p.err
}

// WriteJSONResponse writes the JSON header followed by the response document.
func (r *Runner) WriteJSONResponse(w io.Writer, args Args) error {
	p := &printer{w: w}
	r.writeJSONResponse(p, args)

	return p.err
}

func (r *Runner) printInfo(p *printer) {
	now := r.opts.clock()

	p.println(Separator)
	p.println(SuccessLine)
	p.println(VersionLabel + r.opts.version)
	p.println(TimeLabel + now.Format(bannerTimeLayout))
	p.println(ScriptLabel + r.opts.scriptName)
	p.println(Separator)
}

func (r *Runner) greet(p *printer, args Args) {
	if !args.Present {
		p.blank()
		p.println(NoArgsNotice)
		p.println(UsageHint)

		return
	}

	info := args.UserInfo()
	year := ComputeBirthYear(info.Age, r.opts.clock())

	if !year.OK() {
		r.opts.logger.Debug().Err(year.Err).Msg("birth year not computed")
	}

	p.blank()
	p.println(NameLinePrefix + info.Name + "!")
	p.println(AgeLabel + info.Age)
	p.println(JobLabel + info.Job)
	p.println(BirthYearLabel + year.String())
}

func (r *Runner) writeJSONResponse(p *printer, args Args) {
	if !args.Present {
		return
	}

	data, err := NewResponse(args, r.opts.clock()).MarshalIndent()
	if err != nil {
		p.fail(err)

		return
	}

	p.blank()
	p.println(JSONHeader)
	p.println(string(data))
}

// printer keeps the first write error so rendering code stays linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) println(line string) {
	if p.err != nil {
		return
	}

	if _, err := fmt.Fprintln(p.w, line); err != nil {
		p.err = fmt.Errorf("write output: %w", err)
	}
}

func (p *printer) blank() {
	p.println("")
}

func (p *printer) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}
