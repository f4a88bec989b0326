package activities

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"activity-signup/internal/common/logger"
	"activity-signup/internal/common/metrics"
	"activity-signup/internal/models"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrActivityNotFound    = fmt.Errorf("activity %w", ErrNotFound)
	ErrParticipantNotFound = fmt.Errorf("participant %w", ErrNotFound)
	ErrAlreadyRegistered   = errors.New("already registered")
	ErrActivityFull        = errors.New("activity full")
)

// EventPublisher receives roster events after each successful change.
type EventPublisher interface {
	PublishRosterEvent(ctx context.Context, event models.RosterEvent) error
}

type nopPublisher struct{}

func (nopPublisher) PublishRosterEvent(context.Context, models.RosterEvent) error { return nil }

// Options carries the registry's optional collaborators. Zero values are safe.
type Options struct {
	Config    *Config
	Metrics   *metrics.RosterMetrics
	Publisher EventPublisher
	Tracer    trace.Tracer
	Logger    logger.Logger
}

// Registry is the in-memory activity catalog. The set of activity names is
// fixed at construction; only rosters change. Safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	activities map[string]*models.Activity

	config    *Config
	metrics   *metrics.RosterMetrics
	publisher EventPublisher
	tracer    trace.Tracer
	logger    logger.Logger
	now       func() time.Time
}

// NewRegistry builds a registry from a seed catalog. The seed is copied.
func NewRegistry(seed []models.Activity, opts Options) (*Registry, error) {
	r := &Registry{
		activities: make(map[string]*models.Activity, len(seed)),
		config:     opts.Config,
		metrics:    opts.Metrics,
		publisher:  opts.Publisher,
		tracer:     opts.Tracer,
		logger:     opts.Logger,
		now:        time.Now,
	}
	if r.config == nil {
		r.config = &Config{PublishTimeout: 3 * time.Second}
	}
	if r.publisher == nil {
		r.publisher = nopPublisher{}
	}
	if r.tracer == nil {
		r.tracer = otel.Tracer("activities")
	}
	if r.logger == nil {
		r.logger = logger.NewNoOpLogger()
	}

	for _, a := range seed {
		if err := checkSeed(a); err != nil {
			return nil, err
		}
		if _, dup := r.activities[a.Name]; dup {
			return nil, fmt.Errorf("duplicate activity %q in catalog", a.Name)
		}
		participants := make([]string, len(a.Participants))
		copy(participants, a.Participants)
		a.Participants = participants
		r.activities[a.Name] = &a

		r.metrics.Seed(a.Name, len(a.Participants), a.MaxParticipants)
	}

	return r, nil
}

func checkSeed(a models.Activity) error {
	if a.Name == "" {
		return errors.New("activity name must not be empty")
	}
	if a.MaxParticipants < 0 {
		return fmt.Errorf("activity %q: max_participants must not be negative", a.Name)
	}
	seen := make(map[string]struct{}, len(a.Participants))
	for _, email := range a.Participants {
		if _, dup := seen[email]; dup {
			return fmt.Errorf("activity %q: participant %q listed twice", a.Name, email)
		}
		seen[email] = struct{}{}
	}
	return nil
}

// List returns a snapshot of every activity keyed by name.
func (r *Registry) List() map[string]models.ActivityView {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]models.ActivityView, len(r.activities))
	for name, a := range r.activities {
		out[name] = a.View()
	}
	return out
}

// Get returns a snapshot of one activity.
func (r *Registry) Get(name string) (models.ActivityView, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.activities[name]
	if !ok {
		return models.ActivityView{}, ErrActivityNotFound
	}
	return a.View(), nil
}

// Names returns the activity names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.activities))
	for name := range r.activities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len is the number of activities.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.activities)
}

// Signup adds email to the activity's roster.
func (r *Registry) Signup(ctx context.Context, name, email string) error {
	ctx, span := r.tracer.Start(ctx, "registry.signup", trace.WithAttributes(
		attribute.String("activity", name),
	))
	defer span.End()

	size, err := r.signup(name, email)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	r.metrics.RecordSignup(name, size)
	r.publish(ctx, models.RosterEventSignedUp, name, email)
	return nil
}

func (r *Registry) signup(name, email string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.activities[name]
	if !ok {
		return 0, ErrActivityNotFound
	}
	if indexOf(a.Participants, email) >= 0 {
		return 0, ErrAlreadyRegistered
	}
	if r.config.EnforceCapacity && a.SpotsLeft() == 0 {
		return 0, ErrActivityFull
	}

	a.Participants = append(a.Participants, email)
	return len(a.Participants), nil
}

// Unregister removes email from the activity's roster, keeping the order
// of the remaining participants.
func (r *Registry) Unregister(ctx context.Context, name, email string) error {
	ctx, span := r.tracer.Start(ctx, "registry.unregister", trace.WithAttributes(
		attribute.String("activity", name),
	))
	defer span.End()

	size, err := r.unregister(name, email)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	r.metrics.RecordUnregister(name, size)
	r.publish(ctx, models.RosterEventUnregistered, name, email)
	return nil
}

func (r *Registry) unregister(name, email string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.activities[name]
	if !ok {
		return 0, ErrActivityNotFound
	}
	i := indexOf(a.Participants, email)
	if i < 0 {
		return 0, ErrParticipantNotFound
	}

	a.Participants = append(a.Participants[:i], a.Participants[i+1:]...)
	return len(a.Participants), nil
}

// publish never fails the caller; the roster change has already happened.
func (r *Registry) publish(ctx context.Context, typ models.RosterEventType, name, email string) {
	event := models.RosterEvent{
		ID:         uuid.NewString(),
		Type:       typ,
		Activity:   name,
		Email:      email,
		OccurredAt: r.now().UTC(),
	}

	if r.config.PublishTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.PublishTimeout)
		defer cancel()
	}

	if err := r.publisher.PublishRosterEvent(ctx, event); err != nil {
		r.logger.Warn("failed to publish roster event", map[string]interface{}{
			"eventId":   event.ID,
			"eventType": string(typ),
			"activity":  name,
			"error":     err.Error(),
		})
	}
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
