package smoke

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/mergington/pkg/logger"
)

// ErrChecksFailed is returned when at least one check did not hold.
var ErrChecksFailed = errors.New("smoke checks failed")

// Run executes the smoke checks and returns the collected statistics.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	log := logger.Named("smoke")
	stats := &Stats{StartTime: time.Now()}
	c := newClient(strings.TrimRight(cfg.BaseURL, "/"), cfg.Timeout)

	log.Info(ctx, "starting smoke run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("racers", cfg.Racers),
	)

	all, err := c.listActivities(ctx)
	if err != nil {
		return stats, fmt.Errorf("service unreachable: %w", err)
	}
	stats.Activities = len(all)

	activity := cfg.Activity
	if activity == "" {
		activity = firstActivity(all)
	}
	if _, ok := all[activity]; !ok {
		return stats, fmt.Errorf("activity %q not in catalog", activity)
	}

	r := &recorder{stats: stats, log: log, verbose: cfg.Verbose}
	email := "smoke-" + uuid.NewString()[:8] + "@mergington.edu"

	if err := roundTrip(ctx, c, r, activity, email, all[activity].Participants); err != nil {
		return stats, err
	}
	if cfg.Racers > 1 {
		if err := race(ctx, c, r, activity, cfg.Racers); err != nil {
			return stats, err
		}
	}
	if err := unknownActivity(ctx, c, r, email); err != nil {
		return stats, err
	}

	stats.Requests = int(c.requests.Load())
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	log.Info(ctx, "smoke run finished",
		logger.Int("checks", stats.Checks),
		logger.Int("failures", stats.Failures),
		logger.Int("requests", stats.Requests),
		logger.String("duration", stats.Duration.String()),
	)
	if stats.Failures > 0 {
		return stats, fmt.Errorf("%w: %s", ErrChecksFailed, strings.Join(stats.FailureMessages, "; "))
	}
	return stats, nil
}

// roundTrip signs email up, retries the signup, removes it, and verifies
// the roster is back to its prior order.
func roundTrip(ctx context.Context, c *client, r *recorder, activity, email string, before []string) error {
	res, err := c.signup(ctx, activity, email)
	if err != nil {
		return err
	}
	r.check(ctx, res.Status == http.StatusOK, "signup returns 200, got %d", res.Status)
	r.check(ctx, strings.Contains(res.Message, email) && strings.Contains(res.Message, activity),
		"signup message names email and activity: %q", res.Message)

	res, err = c.signup(ctx, activity, email)
	if err != nil {
		return err
	}
	r.check(ctx, res.Status == http.StatusBadRequest, "duplicate signup returns 400, got %d", res.Status)

	res, err = c.unregister(ctx, activity, email)
	if err != nil {
		return err
	}
	r.check(ctx, res.Status == http.StatusOK, "unregister returns 200, got %d", res.Status)

	res, err = c.unregister(ctx, activity, email)
	if err != nil {
		return err
	}
	r.check(ctx, res.Status == http.StatusBadRequest, "second unregister returns 400, got %d", res.Status)

	all, err := c.listActivities(ctx)
	if err != nil {
		return err
	}
	r.check(ctx, slices.Equal(all[activity].Participants, before),
		"roster restored after round trip: %v", all[activity].Participants)
	return nil
}

// race fires n concurrent signups of one fresh email; exactly one may win.
func race(ctx context.Context, c *client, r *recorder, activity string, n int) error {
	email := "race-" + uuid.NewString()[:8] + "@mergington.edu"

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := c.signup(ctx, activity, email)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				if firstErr == nil {
					firstErr = err
				}
			case res.Status == http.StatusOK:
				r.stats.RaceSuccesses++
			case res.Status == http.StatusBadRequest:
				r.stats.RaceRejections++
			}
		}()
	}
	wg.Wait()
	if firstErr != nil {
		return firstErr
	}

	r.check(ctx, r.stats.RaceSuccesses == 1, "exactly one concurrent signup wins, got %d", r.stats.RaceSuccesses)
	r.check(ctx, r.stats.RaceRejections == n-1, "other concurrent signups rejected, got %d", r.stats.RaceRejections)

	res, err := c.unregister(ctx, activity, email)
	if err != nil {
		return err
	}
	r.check(ctx, res.Status == http.StatusOK, "race cleanup returns 200, got %d", res.Status)
	return nil
}

func unknownActivity(ctx context.Context, c *client, r *recorder, email string) error {
	res, err := c.signup(ctx, "Nonexistent Activity "+uuid.NewString(), email)
	if err != nil {
		return err
	}
	r.check(ctx, res.Status == http.StatusNotFound, "unknown activity returns 404, got %d", res.Status)
	return nil
}

func firstActivity(all map[string]Activity) string {
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

// recorder tallies check outcomes.
type recorder struct {
	stats   *Stats
	log     logger.Logger
	verbose bool
}

func (r *recorder) check(ctx context.Context, ok bool, format string, args ...any) {
	r.stats.Checks++
	msg := fmt.Sprintf(format, args...)
	if ok {
		if r.verbose {
			r.log.Info(ctx, "check passed", logger.String("check", msg))
		}
		return
	}
	r.stats.Failures++
	r.stats.FailureMessages = append(r.stats.FailureMessages, msg)
	r.log.Error(ctx, "check failed", logger.String("check", msg))
}
