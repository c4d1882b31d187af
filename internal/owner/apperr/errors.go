package apperr

import (
	"errors"
	"fmt"
)

// ErrNotFound signals that the requested owner id has no row.
var ErrNotFound = errors.New("owner doesn't exist")

// ConflictError signals a unique violation on the owner login name.
type ConflictError struct {
	Name string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s is busy", e.Name)
}
