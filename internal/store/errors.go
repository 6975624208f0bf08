package store

import "fmt"

// NotFoundError reports a mutation aimed at an id the local collection does
// not hold. No network call is made.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}
