package points

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSchema indicates the header row lacks a required coordinate column.
var ErrSchema = errors.New("schema error")

// SchemaError lists the required columns the header did not provide.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required column(s): %s", strings.Join(e.Missing, ", "))
}

func (e *SchemaError) Unwrap() error { return ErrSchema }
