// internal/metrics/errors.go
package metrics

import "fmt"

type InvalidInputError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid %s %s: %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

type UnknownActivityLevelError struct {
	Level string
}

func (e *UnknownActivityLevelError) Error() string {
	return fmt.Sprintf("unknown activity level %q", e.Level)
}
