// Package smoke drives a running activities server through a roster round
// trip and a concurrent-signup race, and reports what it observed.
package smoke

import "time"

// Config holds configuration for a smoke run.
type Config struct {
	BaseURL  string        // Base URL of the service
	Activity string        // Activity to exercise; empty picks the first by name
	Racers   int           // Concurrent signups of one email in the race check
	Timeout  time.Duration // HTTP request timeout
	Verbose  bool          // Log every request
}

// Activity mirrors one entry of GET /activities.
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// Stats holds run statistics.
type Stats struct {
	Activities      int
	Requests        int
	Checks          int
	Failures        int
	RaceSuccesses   int
	RaceRejections  int
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
	FailureMessages []string
}
