package store

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/outreach-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContactStore struct {
	db *gorm.DB
}

func NewContactStore(db *gorm.DB) *ContactStore {
	return &ContactStore{db: db}
}

func (s *ContactStore) Create(ctx context.Context, contact *models.Contact) error {
	if contact.UserID == uuid.Nil {
		return fmt.Errorf("contact has no owner")
	}
	if contact.ID == uuid.Nil {
		contact.ID = uuid.New()
	}
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = now()
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(contact).Error; err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}
