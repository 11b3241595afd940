// Package catalog provides the activity seed the registry starts from.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/mergington/internal/domain/model"
)

// Sentinel error kinds for seed loading.
var (
	ErrLoadSeed    = errors.New("load seed failed")
	ErrInvalidSeed = errors.New("invalid seed")
)

// keyDelim separates nested koanf keys. Activity names are single URL path
// segments, so they never contain it.
const keyDelim = "/"

// Default returns the built-in Mergington High School catalog.
// Each call returns a fresh copy.
func Default() model.Catalog {
	return model.Catalog{
		"Chess Club": {
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		"Programming Class": {
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		"Gym Class": {
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
		"Basketball Team": {
			Description:     "Competitive basketball training and inter-school matches",
			Schedule:        "Mondays and Wednesdays, 4:00 PM - 6:00 PM",
			MaxParticipants: 15,
			Participants:    []string{"alex@mergington.edu", "jordan@mergington.edu"},
		},
		"Soccer Club": {
			Description:     "Learn soccer skills and participate in friendly matches",
			Schedule:        "Tuesdays and Thursdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 22,
			Participants:    []string{"carlos@mergington.edu", "maya@mergington.edu"},
		},
		"Art Club": {
			Description:     "Explore various art mediums including painting, drawing, and sculpture",
			Schedule:        "Wednesdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 16,
			Participants:    []string{"zoe@mergington.edu", "lucas@mergington.edu"},
		},
		"Drama Society": {
			Description:     "Acting workshops and theatrical performances",
			Schedule:        "Fridays, 4:00 PM - 6:00 PM",
			MaxParticipants: 25,
			Participants:    []string{"isabella@mergington.edu", "ethan@mergington.edu"},
		},
		"Debate Club": {
			Description:     "Develop public speaking skills and participate in debate competitions",
			Schedule:        "Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 14,
			Participants:    []string{"ava@mergington.edu", "noah@mergington.edu"},
		},
		"Science Olympiad": {
			Description:     "Compete in various science and engineering challenges",
			Schedule:        "Saturdays, 9:00 AM - 11:00 AM",
			MaxParticipants: 18,
			Participants:    []string{"mia@mergington.edu", "liam@mergington.edu"},
		},
	}
}

// LoadFile reads a YAML seed whose top-level keys are activity names:
//
//	Chess Club:
//	  description: Learn strategies and compete in chess tournaments
//	  schedule: Fridays, 3:30 PM - 5:00 PM
//	  max_participants: 12
//	  participants: [michael@mergington.edu]
func LoadFile(_ context.Context, path string) (model.Catalog, error) {
	k := koanf.New(keyDelim)
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadSeed, path, err)
	}

	var c model.Catalog
	if err := k.UnmarshalWithConf("", &c, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSeed, err)
	}
	if len(c) == 0 {
		return nil, fmt.Errorf("%w: %s: no activities", ErrInvalidSeed, path)
	}
	for name, a := range c {
		if name == "" {
			return nil, fmt.Errorf("%w: empty activity name", ErrInvalidSeed)
		}
		if a.Participants == nil {
			a.Participants = []string{}
			c[name] = a
		}
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidSeed, name, err)
		}
	}
	return c, nil
}
