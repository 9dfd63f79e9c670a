package invoke

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// DefaultCharset is used when Config.Charset is empty.
const DefaultCharset = "utf-8"

// lookupCharset resolves a WHATWG charset label such as "gbk" or "utf-8".
func lookupCharset(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultCharset
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCharset, name)
	}

	return enc, nil
}

func decode(enc encoding.Encoding, data []byte) ([]byte, error) {
	if len(data) == 0 || enc == unicode.UTF8 {
		return data, nil
	}

	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("decode output: %w", err)
	}

	return out, nil
}
