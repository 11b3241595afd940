// Package model contains domain models passed between layers.
package model

import (
	"errors"
	"fmt"
)

// Sentinel kinds for model validation.
var (
	ErrDuplicateParticipant = errors.New("duplicate participant")
	ErrNegativeCapacity     = errors.New("negative max_participants")
)

// Activity is a single extracurricular offering.
// Fields mirror the JSON shape returned by GET /activities.
type Activity struct {
	Description     string   `json:"description" koanf:"description"`
	Schedule        string   `json:"schedule" koanf:"schedule"`
	MaxParticipants int      `json:"max_participants" koanf:"max_participants"` // informational; never enforced
	Participants    []string `json:"participants" koanf:"participants"`         // signup order
}

// Catalog maps an activity name to its record. Keys are matched exactly.
type Catalog map[string]Activity

// Clone returns a deep copy of the activity.
func (a Activity) Clone() Activity {
	out := a
	out.Participants = make([]string, len(a.Participants))
	copy(out.Participants, a.Participants)
	return out
}

// IndexOf returns the position of email in the roster, or -1.
func (a Activity) IndexOf(email string) int {
	for i, p := range a.Participants {
		if p == email {
			return i
		}
	}
	return -1
}

// Has reports whether email is on the roster.
func (a Activity) Has(email string) bool {
	return a.IndexOf(email) >= 0
}

// Validate checks the invariants a seeded record must satisfy.
// Capacity is not compared against the roster length.
func (a Activity) Validate() error {
	if a.MaxParticipants < 0 {
		return ErrNegativeCapacity
	}
	seen := make(map[string]struct{}, len(a.Participants))
	for _, p := range a.Participants {
		if _, ok := seen[p]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateParticipant, p)
		}
		seen[p] = struct{}{}
	}
	return nil
}

// Clone returns a deep copy of the catalog.
func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	for name, a := range c {
		out[name] = a.Clone()
	}
	return out
}
