package models

import "fmt"

// ValidationError marks a request that fails local invariants before any
// network or database work happens.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
