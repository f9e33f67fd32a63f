package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means a lookup matched nothing. It is user-correctable and
	// never retried automatically.
	ErrNotFound = errors.New("order not found")

	// ErrPermissionDenied means the caller's role does not allow the
	// operation. It is raised before any store call is made.
	ErrPermissionDenied = errors.New("permission denied")
)

// ValidationError blocks an action before any request is issued. The message
// is meant to be shown inline to the user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
