package argdemo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Response is the JSON document printed after JSONHeader.
type Response struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	UserInfo  ResponseUserInfo `json:"user_info"`
	Message   string           `json:"message"`
}

// ResponseUserInfo carries the arguments verbatim. Age and Job are null when
// absent and are never parsed or validated.
type ResponseUserInfo struct {
	Name string  `json:"name"`
	Age  *string `json:"age"`
	Job  *string `json:"job"`
}

// NewResponse builds the JSON view of args.
func NewResponse(args Args, now time.Time) Response {
	name := DefaultName
	if args.Present {
		name = args.Name
	}

	return Response{
		Status:    ResponseStatus,
		Timestamp: ISOTimestamp(now),
		UserInfo: ResponseUserInfo{
			Name: name,
			Age:  args.RawAge,
			Job:  args.RawJob,
		},
		Message: ResponseMessage,
	}
}

// MarshalIndent encodes r with a two-space indent. Non-ASCII text and HTML
// characters are written literally.
func (r Response) MarshalIndent() ([]byte, error) {
	var b bytes.Buffer

	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}

	return bytes.TrimRight(b.Bytes(), "\n"), nil
}

// ISOTimestamp formats t as ISO-8601 without an offset. The fractional
// part has microsecond precision and is left out when it is zero.
func ISOTimestamp(t time.Time) string {
	if t.Nanosecond()/int(time.Microsecond) == 0 {
		return t.Format(isoSecondsLayout)
	}

	return t.Format(isoMicrosLayout)
}
