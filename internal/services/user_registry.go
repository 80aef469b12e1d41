package services

import (
	"context"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/outreach-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/outreach-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/outreach-backend/internal/models"
)

// UserRegistry resolves token identities to application users.
type UserRegistry struct {
	users   UserStore
	metrics metrics.Recorder
}

func NewUserRegistry(users UserStore, rec metrics.Recorder) *UserRegistry {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &UserRegistry{users: users, metrics: rec}
}

// EnsureUser returns the user for id.Subject, creating it on first sight.
//
// The lookup and insert are not atomic. Two first requests for the same
// subject can both miss the lookup; the unique index on auth_uid then rejects
// the second insert, which surfaces as ErrInternal.
func (r *UserRegistry) EnsureUser(ctx context.Context, id auth.Identity) (*models.AppUser, error) {
	user, err := r.users.FindBySubject(ctx, id.Subject)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch app user", "subject", id.Subject, "action", "ensure_user", "error", err)
		return nil, internalError("fetch app user", err)
	}
	if user != nil {
		return user, nil
	}

	user = &models.AppUser{
		AuthSubjectID: id.Subject,
		Email:         id.Email,
	}
	if err := r.users.Create(ctx, user); err != nil {
		slog.ErrorContext(ctx, "failed to create app user", "subject", id.Subject, "action", "ensure_user", "error", err)
		return nil, internalError("create app user", err)
	}

	r.metrics.RecordUserCreated()
	slog.InfoContext(ctx, "app user created", "subject", id.Subject, "user_id", user.ID.String())
	return user, nil
}
