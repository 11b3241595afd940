package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/mergington/internal/smoke"
	"github.com/okian/mergington/pkg/logger"
)

// Default configuration constants.
const (
	defaultRacers   = 16
	defaultTimeout  = 10 * time.Second
	defaultDeadline = 2 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:8000", "Base URL of the service")
		activity = flag.String("activity", "", "Activity to exercise (default: first by name)")
		racers   = flag.Int("racers", defaultRacers, "Concurrent signups of one email")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose  = flag.Bool("verbose", false, "Log every passing check")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		smoke.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultDeadline)
	defer cancel()

	stats, err := smoke.Run(ctx, &smoke.Config{
		BaseURL:  *baseURL,
		Activity: *activity,
		Racers:   *racers,
		Timeout:  *timeout,
		Verbose:  *verbose,
	})
	if stats != nil {
		smoke.PrintStats(os.Stdout, stats)
	}
	if err != nil {
		logger.Get().Error(ctx, "smoke run failed", logger.Error(err))
		os.Exit(1)
	}
}
