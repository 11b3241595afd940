// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	repository "github.com/okian/mergington/internal/adapters/repository"
	"github.com/okian/mergington/internal/domain/catalog"
	"github.com/okian/mergington/internal/domain/model"
	"github.com/okian/mergington/pkg/logger"
	"github.com/okian/mergington/pkg/metrics"
)

// Operation names used in logs and rejection metrics.
const (
	opSignup     = "signup"
	opUnregister = "unregister"
)

// ErrNotStarted is returned when a roster operation runs before Start.
var ErrNotStarted = errors.New("service not started")

// Service implements the API dependencies for the activity registry.
type Service struct {
	mu sync.RWMutex

	store repository.Store

	// Seed sources; seedFile wins over seed when both are set.
	seed     model.Catalog
	seedFile string

	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStore injects a prebuilt store; seed options are then ignored.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithSeed sets the catalog the registry starts from.
func WithSeed(seed model.Catalog) Option {
	return func(s *Service) {
		if seed != nil {
			s.seed = seed
		}
	}
}

// WithSeedFile loads the starting catalog from a YAML file on Start.
func WithSeedFile(path string) Option {
	return func(s *Service) {
		s.seedFile = path
	}
}

// New constructs a new Service. Without seed options it serves the built-in
// Mergington catalog.
func New(opts ...Option) *Service {
	s := &Service{}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start builds the registry. Calling it twice is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.store == nil {
		seed, source, err := s.loadSeed(ctx)
		if err != nil {
			return fmt.Errorf("start activity service: %w", err)
		}
		s.store = repository.NewMemoryStore(ctx, seed)
		s.logger.Info(ctx, "activity registry seeded", logger.String("source", source))
	}

	s.started = true
	s.logger.Info(ctx, "activity service started",
		logger.Int("activities", s.store.Count(ctx)),
		logger.Int("participants", s.store.Participants(ctx)),
	)
	return nil
}

func (s *Service) loadSeed(ctx context.Context) (model.Catalog, string, error) {
	switch {
	case s.seedFile != "":
		c, err := catalog.LoadFile(ctx, s.seedFile)
		return c, s.seedFile, err
	case s.seed != nil:
		return s.seed, "options", nil
	default:
		return catalog.Default(), "builtin", nil
	}
}

// Stop marks the service stopped. The registry is kept so a restart serves
// the same rosters.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "activity service stopped")
}

func (s *Service) registry() (repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.store, nil
}

// ListActivities returns every activity keyed by name.
func (s *Service) ListActivities(ctx context.Context) (model.Catalog, error) {
	store, err := s.registry()
	if err != nil {
		return nil, err
	}
	return store.List(ctx), nil
}

// Signup adds email to the named activity and returns a confirmation message.
func (s *Service) Signup(ctx context.Context, activity, email string) (string, error) {
	store, err := s.registry()
	if err != nil {
		return "", err
	}
	if err := store.Signup(ctx, activity, email); err != nil {
		s.reject(ctx, opSignup, activity, email, err)
		return "", err
	}
	metrics.RecordSignup(activity)
	s.logger.Debug(ctx, "student signed up",
		logger.String("activity", activity),
		logger.String("email", email),
	)
	return fmt.Sprintf("Signed up %s for %s", email, activity), nil
}

// Unregister removes email from the named activity and returns a confirmation message.
func (s *Service) Unregister(ctx context.Context, activity, email string) (string, error) {
	store, err := s.registry()
	if err != nil {
		return "", err
	}
	if err := store.Unregister(ctx, activity, email); err != nil {
		s.reject(ctx, opUnregister, activity, email, err)
		return "", err
	}
	metrics.RecordUnregister(activity)
	s.logger.Debug(ctx, "student unregistered",
		logger.String("activity", activity),
		logger.String("email", email),
	)
	return fmt.Sprintf("Unregistered %s from %s", email, activity), nil
}

func (s *Service) reject(ctx context.Context, op, activity, email string, err error) {
	reason := "unknown"
	switch {
	case errors.Is(err, repository.ErrActivityNotFound):
		reason = "activity_not_found"
	case errors.Is(err, repository.ErrAlreadyRegistered):
		reason = "already_registered"
	case errors.Is(err, repository.ErrNotRegistered):
		reason = "not_registered"
	}
	metrics.RecordRejection(op, reason)
	s.logger.Info(ctx, "roster change rejected",
		logger.String("operation", op),
		logger.String("activity", activity),
		logger.String("email", email),
		logger.String("reason", reason),
	)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started": s.started,
	}

	if s.started {
		ctx := context.Background()
		activities := s.store.Count(ctx)
		stats["activities"] = activities
		stats["participants"] = s.store.Participants(ctx)
		metrics.UpdateActivityCount(activities)
	}

	return stats
}
