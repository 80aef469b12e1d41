package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/outreach-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// FindBySubject returns the user for an auth subject, or nil when none exists.
func (s *UserStore) FindBySubject(ctx context.Context, subject string) (*models.AppUser, error) {
	var user models.AppUser
	err := s.db.WithContext(ctx).Where("auth_uid = ?", subject).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find app user: %w", err)
	}
	if user.ID == uuid.Nil {
		return nil, fmt.Errorf("malformed app_users row for subject %q", subject)
	}
	return &user, nil
}

// Create inserts a new user. A concurrent insert for the same subject fails
// on the unique index and is returned as is.
func (s *UserStore) Create(ctx context.Context, user *models.AppUser) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now()
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create app user: %w", err)
	}
	return nil
}

// Postgres stores microseconds; truncating keeps returned rows equal to
// what a later read yields.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
