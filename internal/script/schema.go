package script

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/nadzzz/sayas/internal/message"
)

//go:embed schema.json
var schemaJSON []byte

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
})

// Schema returns the JSON schema scripts are validated against.
func Schema() []byte {
	out := make([]byte, len(schemaJSON))
	copy(out, schemaJSON)
	return out
}

// FieldError is a single schema violation.
type FieldError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

// SchemaError lists every schema violation in a script.
type SchemaError struct {
	Errors []FieldError
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Field+": "+fe.Description)
	}
	return ErrInvalidScript.Error() + ": " + strings.Join(msgs, "; ")
}

// Unwrap lets errors.Is match ErrInvalidScript.
func (e *SchemaError) Unwrap() error { return ErrInvalidScript }

// Validate checks req against the script schema.
func Validate(req *message.RenderRequest) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("loading script schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(req))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	if result.Valid() {
		return nil
	}

	se := &SchemaError{}
	for _, re := range result.Errors() {
		se.Errors = append(se.Errors, FieldError{
			Field:       re.Field(),
			Description: re.Description(),
		})
	}
	return se
}
