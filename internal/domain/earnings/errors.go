package earnings

import (
	"errors"
	"fmt"
)

// ErrSchema matches every *SchemaError via errors.Is.
var ErrSchema = errors.New("schema error")

// SchemaError reports a required column that is absent or has the wrong type.
// It is a configuration error: the dataset cannot serve the analysis at all.
type SchemaError struct {
	Column string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error: column %q %s", e.Column, e.Reason)
}

func (e *SchemaError) Is(target error) bool { return target == ErrSchema }

func missing(name string) *SchemaError {
	return &SchemaError{Column: name, Reason: "is missing"}
}
