package core

import "fmt"

// ConfigurationError reports an invalid rule set, grid shape or run setting.
// It is returned at construction time and never while stepping.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return "configuration: " + e.Reason
	}
	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Reason)
}

// Configf builds a ConfigurationError for field with a formatted reason.
func Configf(field, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// OutOfRangeError reports direct cell access outside the grid.
type OutOfRangeError struct {
	Row, Col   int
	Rows, Cols int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("cell (%d,%d) outside %dx%d grid", e.Row, e.Col, e.Rows, e.Cols)
}
