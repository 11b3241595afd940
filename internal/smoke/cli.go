package smoke

import (
	"fmt"
	"io"
	"os"
)

// ShowHelp prints usage information for the smoke tool.
func ShowHelp() {
	os.Stdout.WriteString(`Mergington Smoke Check
======================

Exercises a running activities server: signup, duplicate signup,
unregister, roster restoration, a concurrent-signup race and an
unknown-activity lookup.

Usage:
  go run ./cmd/smoke [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8000")
  -activity string
        Activity to exercise (default: first activity by name)
  -racers int
        Concurrent signups of one email (default 16; 0 disables the race)
  -timeout duration
        HTTP request timeout (default 10s)
  -verbose
        Log every passing check
  -help
        Show this help message
`)
}

// PrintStats writes a human-readable summary of a run.
func PrintStats(w io.Writer, stats *Stats) {
	_, _ = fmt.Fprintf(w, `Smoke summary
  Activities:      %d
  Requests:        %d
  Checks:          %d
  Failures:        %d
  Race winners:    %d
  Race rejections: %d
  Duration:        %s
`, stats.Activities, stats.Requests, stats.Checks, stats.Failures,
		stats.RaceSuccesses, stats.RaceRejections, stats.Duration)
	for _, m := range stats.FailureMessages {
		_, _ = fmt.Fprintf(w, "  FAILED: %s\n", m)
	}
}
