package resume

import "fmt"

// ValidationError reports resume input whose shape does not match the expected
// structure. No scoring happens when it is returned.
type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}
