package minutes

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// SchemaViolation reports a model response that does not conform to the Draft
// shape, naming the offending field.
type SchemaViolation struct {
	Field  string
	Reason string
}

func (e *SchemaViolation) Error() string {
	return fmt.Sprintf("schema violation at %q: %s", e.Field, e.Reason)
}

// Decode strictly parses data into a Draft. Unknown fields, wrong-typed
// fields, and trailing content are all rejected; there is no partial
// acceptance. On failure the returned error is a *SchemaViolation.
func Decode(data []byte) (Draft, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var d Draft
	if err := dec.Decode(&d); err != nil {
		return Draft{}, asSchemaViolation(err)
	}
	if dec.More() {
		return Draft{}, &SchemaViolation{Field: "(document)", Reason: "trailing content after draft object"}
	}
	return d, nil
}

func asSchemaViolation(err error) *SchemaViolation {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "(document)"
		}
		return &SchemaViolation{
			Field:  field,
			Reason: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
		}
	}

	// DisallowUnknownFields reports `json: unknown field "name"` as a plain
	// error; pull the field name back out so callers see which one.
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, `json: unknown field `); ok {
		return &SchemaViolation{Field: strings.Trim(rest, `"`), Reason: "unknown field"}
	}

	return &SchemaViolation{Field: "(document)", Reason: msg}
}
