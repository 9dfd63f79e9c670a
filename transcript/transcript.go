// Package transcript parses the text an argdemo runner prints back into
// structured sections.
package transcript

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/metalagman/argdemo"
)

// Banner holds the diagnostic header fields.
type Banner struct {
	Version    string `json:"version"`
	Time       string `json:"time"`
	ScriptName string `json:"script_name"`
}

// Greeting holds the human-readable greeting block.
type Greeting struct {
	Name      string `json:"name"`
	Age       string `json:"age"`
	Job       string `json:"job"`
	BirthYear string `json:"birth_year"`
}

// Transcript is the parsed output of one runner invocation.
type Transcript struct {
	Banner    Banner            `json:"banner"`
	Greeting  *Greeting         `json:"greeting,omitempty"`
	Response  *argdemo.Response `json:"response,omitempty"`
	NoArgs    bool              `json:"no_args"`
	Completed bool              `json:"completed"`
}

// Parse splits runner output into its sections. CRLF line endings, as
// produced under a pseudo-terminal, are accepted.
func Parse(out string) (Transcript, error) {
	lines := splitLines(out)

	var t Transcript

	start := indexOf(lines, argdemo.SuccessLine, 0)
	if start < 0 {
		return Transcript{}, ErrNoBanner
	}

	t.Banner = parseBanner(lines[start+1:])
	t.Greeting = parseGreeting(lines)
	t.NoArgs = indexOf(lines, argdemo.NoArgsHeader, start) >= 0
	t.Completed = indexOf(lines, argdemo.DoneLine, start) >= 0

	resp, _, err := extract(lines)
	switch {
	case err == nil:
		t.Response = &resp
	case errors.Is(err, ErrNoJSONBlock):
	default:
		return Transcript{}, err
	}

	return t, nil
}

// ExtractResponse returns the decoded JSON response block and its raw bytes.
func ExtractResponse(out string) (argdemo.Response, []byte, error) {
	return extract(splitLines(out))
}

func extract(lines []string) (argdemo.Response, []byte, error) {
	// Arguments are echoed raw in the greeting block, so a header line may
	// appear there too. The JSON encoding escapes newlines, which makes the
	// last header the real one.
	header := lastIndexOf(lines, argdemo.JSONHeader)
	if header < 0 {
		return argdemo.Response{}, nil, ErrNoJSONBlock
	}

	end := indexOf(lines, "}", header+1)
	if end < 0 {
		return argdemo.Response{}, nil, ErrUnterminatedJSON
	}

	raw := []byte(strings.Join(lines[header+1:end+1], "\n"))

	var resp argdemo.Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return argdemo.Response{}, nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}

	if err := ValidateResponse(raw); err != nil {
		return argdemo.Response{}, nil, err
	}

	return resp, raw, nil
}

func parseBanner(lines []string) Banner {
	var b Banner

	for _, line := range lines {
		if line == argdemo.Separator {
			break
		}

		switch {
		case strings.HasPrefix(line, argdemo.VersionLabel):
			b.Version = strings.TrimPrefix(line, argdemo.VersionLabel)
		case strings.HasPrefix(line, argdemo.TimeLabel):
			b.Time = strings.TrimPrefix(line, argdemo.TimeLabel)
		case strings.HasPrefix(line, argdemo.ScriptLabel):
			b.ScriptName = strings.TrimPrefix(line, argdemo.ScriptLabel)
		}
	}

	return b
}

func parseGreeting(lines []string) *Greeting {
	for i, line := range lines {
		if !strings.HasPrefix(line, argdemo.NameLinePrefix) || !strings.HasSuffix(line, "!") {
			continue
		}

		g := &Greeting{
			Name: strings.TrimSuffix(strings.TrimPrefix(line, argdemo.NameLinePrefix), "!"),
		}

		for _, next := range lines[i+1:] {
			switch {
			case strings.HasPrefix(next, argdemo.AgeLabel):
				g.Age = strings.TrimPrefix(next, argdemo.AgeLabel)
			case strings.HasPrefix(next, argdemo.JobLabel):
				g.Job = strings.TrimPrefix(next, argdemo.JobLabel)
			case strings.HasPrefix(next, argdemo.BirthYearLabel):
				g.BirthYear = strings.TrimPrefix(next, argdemo.BirthYearLabel)

				return g
			default:
				return g
			}
		}

		return g
	}

	return nil
}

func splitLines(out string) []string {
	out = strings.ReplaceAll(out, "\r\n", "\n")

	return strings.Split(out, "\n")
}

func indexOf(lines []string, want string, from int) int {
	for i := from; i < len(lines); i++ {
		if lines[i] == want {
			return i
		}
	}

	return -1
}

func lastIndexOf(lines []string, want string) int {
	for i := len(lines) - 1; i >= 0; i-- {
		if lines[i] == want {
			return i
		}
	}

	return -1
}
