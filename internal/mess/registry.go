// Package mess manages messes, their join codes and rosters, and resolves the
// mess a caller acts in.
package mess

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/messbook/internal/events"
	"github.com/mmynk/messbook/internal/metrics"
	"github.com/mmynk/messbook/internal/models"
	"github.com/mmynk/messbook/internal/storage"
)

// DefaultCodeAttempts is how many codes CreateMess tries before giving up.
const DefaultCodeAttempts = 5

// Registry creates and joins messes.
type Registry struct {
	store     storage.MessStore
	generate  CodeGenerator
	attempts  int
	publisher events.Publisher
	metrics   *metrics.Metrics
	log       *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithCodeGenerator replaces RandomCode.
func WithCodeGenerator(g CodeGenerator) Option {
	return func(r *Registry) { r.generate = g }
}

// WithCodeAttempts sets how many codes are tried on collision.
func WithCodeAttempts(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.attempts = n
		}
	}
}

func WithPublisher(p events.Publisher) Option {
	return func(r *Registry) { r.publisher = p }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Registry) { r.metrics = m }
}

func WithLogger(log *slog.Logger) Option {
	return func(r *Registry) { r.log = log }
}

func NewRegistry(store storage.MessStore, opts ...Option) *Registry {
	r := &Registry{
		store:    store,
		generate: RandomCode,
		attempts: DefaultCodeAttempts,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CreateMess creates a mess with a fresh join code and makes founderID its manager.
// A code that collides with an existing one is regenerated; after the configured
// number of attempts the collision is returned as a ConflictError. If the founder
// cannot be added the new mess is deleted again.
func (r *Registry) CreateMess(ctx context.Context, name, founderID string) (*models.Mess, error) {
	if founderID == "" {
		return nil, &models.ValidationError{Field: "user_id", Reason: "must be set"}
	}
	if _, err := r.store.GetMembership(ctx, founderID); err == nil {
		return nil, &models.ConflictError{Resource: "member", Err: fmt.Errorf("user %s already belongs to a mess", founderID)}
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	var mess *models.Mess
	var lastErr error
	for attempt := 1; attempt <= r.attempts; attempt++ {
		code, err := r.generate()
		if err != nil {
			return nil, err
		}

		candidate := &models.Mess{Name: name, Code: code, CreatedBy: founderID}
		if err := candidate.Validate(); err != nil {
			return nil, err
		}

		err = r.store.CreateMess(ctx, candidate)
		if err == nil {
			mess = candidate
			break
		}
		if !errors.Is(err, models.ErrConflict) {
			return nil, err
		}
		lastErr = err
		r.log.WarnContext(ctx, "Mess code collision", "attempt", attempt, "code", code)
	}
	if mess == nil {
		return nil, &models.ConflictError{Resource: "mess_code", Err: lastErr}
	}

	if err := r.store.AddMember(ctx, &models.Member{MessID: mess.ID, UserID: founderID, Role: models.RoleManager}); err != nil {
		if derr := r.store.DeleteMess(ctx, mess.ID); derr != nil {
			r.log.ErrorContext(ctx, "Failed to remove mess without founder", "mess_id", mess.ID, "error", derr)
		}
		return nil, fmt.Errorf("failed to add founder: %w", err)
	}

	r.metrics.MessCreated()
	r.log.InfoContext(ctx, "Created mess", "mess_id", mess.ID, "user_id", founderID)
	r.publish(ctx, events.NewLedgerEvent(events.KindMemberJoined, mess.ID, founderID, "", ""))
	return mess, nil
}

// JoinMess adds userID to the mess with the given code as a plain member.
func (r *Registry) JoinMess(ctx context.Context, code, userID string) (*models.Mess, error) {
	if userID == "" {
		return nil, &models.ValidationError{Field: "user_id", Reason: "must be set"}
	}
	code = NormalizeCode(code)
	if len(code) != CodeLength {
		return nil, &models.ValidationError{Field: "code", Reason: fmt.Sprintf("must be %d characters", CodeLength)}
	}

	mess, err := r.store.GetMessByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := r.store.AddMember(ctx, &models.Member{MessID: mess.ID, UserID: userID, Role: models.RoleMember}); err != nil {
		return nil, err
	}

	r.log.InfoContext(ctx, "Joined mess", "mess_id", mess.ID, "user_id", userID)
	r.publish(ctx, events.NewLedgerEvent(events.KindMemberJoined, mess.ID, userID, "", ""))
	return mess, nil
}

// Resolve returns the context userID acts under: their mess and role.
func (r *Registry) Resolve(ctx context.Context, userID string) (models.MessContext, error) {
	if userID == "" {
		return models.MessContext{}, &models.ValidationError{Field: "user_id", Reason: "must be set"}
	}
	m, err := r.store.GetMembership(ctx, userID)
	if err != nil {
		return models.MessContext{}, err
	}
	return models.MessContext{MessID: m.MessID, UserID: m.UserID, Role: m.Role}, nil
}

// Current returns the caller's mess and roster.
func (r *Registry) Current(ctx context.Context, mc models.MessContext) (*models.Mess, []models.Member, error) {
	mess, err := r.store.GetMess(ctx, mc.MessID)
	if err != nil {
		return nil, nil, err
	}
	members, err := r.Members(ctx, mc.MessID)
	if err != nil {
		return nil, nil, err
	}
	return mess, members, nil
}

// Members lists a mess's roster by join time.
func (r *Registry) Members(ctx context.Context, messID string) ([]models.Member, error) {
	return r.store.ListMembers(ctx, messID)
}

// RemoveMember removes userID from the caller's mess. Only managers may remove others;
// anyone may remove themselves.
func (r *Registry) RemoveMember(ctx context.Context, mc models.MessContext, userID string) error {
	if err := mc.Validate(); err != nil {
		return err
	}
	if userID != mc.UserID && !mc.IsManager() {
		return fmt.Errorf("only a manager can remove members: %w", models.ErrPermissionDenied)
	}
	if err := r.store.RemoveMember(ctx, mc.MessID, userID); err != nil {
		return err
	}

	r.log.InfoContext(ctx, "Removed member", "mess_id", mc.MessID, "user_id", userID, "removed_by", mc.UserID)
	r.publish(ctx, events.NewLedgerEvent(events.KindMemberRemoved, mc.MessID, userID, "", ""))
	return nil
}

func (r *Registry) publish(ctx context.Context, event events.LedgerEvent) {
	if r.publisher == nil {
		return
	}
	if err := r.publisher.Publish(ctx, event); err != nil {
		r.log.WarnContext(ctx, "Failed to publish membership event", "kind", event.Kind, "mess_id", event.MessID, "error", err)
	}
}
