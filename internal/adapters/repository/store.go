// Package repository defines the activity registry interface and errors.
package repository

import (
	"context"

	"github.com/okian/mergington/internal/domain/model"
)

// Store provides read/write access to the activity registry.
//
// The set of activity names is fixed when the store is built. Only each
// record's participant roster changes afterwards.
type Store interface {
	// List returns a snapshot of every activity. Callers may modify it freely.
	List(ctx context.Context) model.Catalog

	// Get returns a copy of a single activity.
	// Returns ErrActivityNotFound if name is not a key.
	Get(ctx context.Context, name string) (model.Activity, error)

	// Signup appends email to the end of the activity's roster.
	// Returns ErrActivityNotFound or ErrAlreadyRegistered.
	Signup(ctx context.Context, name, email string) error

	// Unregister removes email from the activity's roster, keeping the order
	// of the remaining entries. Returns ErrActivityNotFound or ErrNotRegistered.
	Unregister(ctx context.Context, name, email string) error

	// Count returns the number of activities.
	Count(ctx context.Context) int

	// Participants returns the total roster size across all activities.
	Participants(ctx context.Context) int
}
