package connstring

import (
	"fmt"

	"github.com/orawire/connstring/internal/descriptor"
	"github.com/orawire/connstring/internal/tnsnames"
)

// SyntaxError reports malformed connect-string text, including the byte
// offset and offending substring. Test with errors.As.
type SyntaxError = descriptor.SyntaxError

// ConfigError reports a tnsnames.ora file that exists but is unreadable or
// malformed.
type ConfigError = tnsnames.ConfigError

// ErrAliasNotFound is wrapped into the error returned when alias files exist
// but none define the requested alias. Test with errors.Is.
var ErrAliasNotFound = tnsnames.ErrAliasNotFound

// ValidationError reports mutually exclusive parameters that are both set.
// It is raised lazily, when the parameter set is consumed, because
// transiently conflicting states are legal while a set is being built up.
type ValidationError struct {
	Field1 string
	Field2 string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("connection parameters %q and %q are mutually exclusive", e.Field1, e.Field2)
}
