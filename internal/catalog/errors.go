package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// LoadError reports that the catalog source itself was unreachable or
// unreadable. It is distinct from ValidationError: a LoadError means no
// data could be read at all.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load catalog from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsLoadError reports whether err is a LoadError (even when wrapped).
func IsLoadError(err error) bool {
	var loadErr *LoadError
	return errors.As(err, &loadErr)
}

// ValidationError reports catalog data that violates an invariant. All
// problems found in one validation pass are collected into Issues so the
// operator sees everything at once instead of fixing one row at a time.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 1 {
		return "catalog validation failed: " + e.Issues[0]
	}
	return fmt.Sprintf("catalog validation failed with %d issues:\n  - %s",
		len(e.Issues), strings.Join(e.Issues, "\n  - "))
}

// IsValidationError reports whether err is a ValidationError (even when wrapped).
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
