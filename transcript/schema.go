package transcript

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ResponseSchema is the JSON schema of the runner's response block.
//
//go:embed response.schema.json
var ResponseSchema string

var responseSchemaLoader = gojsonschema.NewStringLoader(ResponseSchema)

// ValidateResponse checks data against ResponseSchema.
func ValidateResponse(data []byte) error {
	result, err := gojsonschema.Validate(responseSchemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("validate response schema: %w", err)
	}

	if result.Valid() {
		return nil
	}

	errs := make([]string, 0, len(result.Errors()))
	for _, err := range result.Errors() {
		errs = append(errs, err.String())
	}

	return fmt.Errorf("%w: %s", ErrResponseInvalid, strings.Join(errs, "; "))
}
