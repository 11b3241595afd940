package api

import (
	"errors"
	"fmt"
	"net/http"

	repository "github.com/okian/mergington/internal/adapters/repository"
)

// Client-facing detail messages.
const (
	detailActivityNotFound  = "Activity not found"
	detailAlreadyRegistered = "Student is already signed up for this activity"
	detailNotRegistered     = "Student is not signed up for this activity"
)

// Wrap annotates err with the failing operation.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

// statusFor maps registry errors to an HTTP status and detail message.
// ok is false when err is not a known client error.
func statusFor(err error) (status int, detail string, ok bool) {
	switch {
	case errors.Is(err, repository.ErrActivityNotFound):
		return http.StatusNotFound, detailActivityNotFound, true
	case errors.Is(err, repository.ErrAlreadyRegistered):
		return http.StatusBadRequest, detailAlreadyRegistered, true
	case errors.Is(err, repository.ErrNotRegistered):
		return http.StatusBadRequest, detailNotRegistered, true
	}
	return 0, "", false
}
