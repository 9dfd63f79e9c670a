package transcript

import "errors"

var (
	// ErrNoBanner indicates the output does not start with the runner banner.
	ErrNoBanner = errors.New("banner block missing")
	// ErrNoJSONBlock indicates the output carries no JSON response block.
	ErrNoJSONBlock = errors.New("json response block missing")
	// ErrUnterminatedJSON indicates the JSON block was cut off.
	ErrUnterminatedJSON = errors.New("json response block not terminated")
	// ErrResponseInvalid indicates the JSON block does not match the response schema.
	ErrResponseInvalid = errors.New("json response does not match schema")
)
