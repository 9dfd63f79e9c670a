package argdemo

import "errors"

// ErrAgeNotNumeric indicates the age argument is not a base-10 integer.
var ErrAgeNotNumeric = errors.New("age is not a valid number")
