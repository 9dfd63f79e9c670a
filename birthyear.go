package argdemo

import (
	"fmt"
	"math/big"
	"strings"
	"time"
	"unicode"
)

// BirthYear is the outcome of deriving a birth year from an age string.
// Err is set when the year could not be computed.
type BirthYear struct {
	Year *big.Int
	Err  error
}

// OK reports whether Year holds a computed value.
func (b BirthYear) OK() bool {
	return b.Err == nil && b.Year != nil
}

// String renders the value the greeting block prints after BirthYearLabel.
func (b BirthYear) String() string {
	if !b.OK() {
		return BirthYearUnknown
	}

	return fmt.Sprintf("约 %s 年", b.Year.String())
}

// ComputeBirthYear subtracts age from the year of now. Age has no size limit.
func ComputeBirthYear(age string, now time.Time) BirthYear {
	n, err := ParseAge(age)
	if err != nil {
		return BirthYear{Err: err}
	}

	year := big.NewInt(int64(now.Year()))

	return BirthYear{Year: year.Sub(year, n)}
}

// ParseAge parses a base-10 integer of any size. Surrounding whitespace and
// a leading sign are allowed, any Unicode decimal digit counts, and single
// underscores may separate digits.
func ParseAge(age string) (*big.Int, error) {
	s := strings.TrimSpace(age)

	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	var digits strings.Builder

	prevUnderscore := true
	for _, r := range s {
		switch {
		case r == '_':
			if prevUnderscore {
				return nil, fmt.Errorf("%w: %q", ErrAgeNotNumeric, age)
			}

			prevUnderscore = true
		case unicode.IsDigit(r):
			digits.WriteByte(byte('0' + digitValue(r)))

			prevUnderscore = false
		default:
			return nil, fmt.Errorf("%w: %q", ErrAgeNotNumeric, age)
		}
	}

	// Empty input and a trailing underscore both leave prevUnderscore set.
	if prevUnderscore {
		return nil, fmt.Errorf("%w: %q", ErrAgeNotNumeric, age)
	}

	n, ok := new(big.Int).SetString(digits.String(), 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrAgeNotNumeric, age)
	}

	if neg {
		n.Neg(n)
	}

	return n, nil
}

// digitValue returns the value of a decimal digit rune. Decimal digits are
// laid out in contiguous blocks of ten starting at zero, so the offset from
// the start of the surrounding run of digits gives the value.
func digitValue(r rune) int {
	start := r
	for start > 0 && unicode.IsDigit(start-1) {
		start--
	}

	return int(r-start) % 10
}
