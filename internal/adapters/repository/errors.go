package repository

import "errors"

// Sentinel kinds for registry errors.
var (
	ErrActivityNotFound  = errors.New("activity not found")
	ErrAlreadyRegistered = errors.New("student is already signed up for this activity")
	ErrNotRegistered     = errors.New("student is not signed up for this activity")
)
