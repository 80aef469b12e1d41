package services

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/outreach-backend/internal/models"
	"github.com/google/uuid"
)

// UserStore persists application users. FindBySubject returns nil, nil when
// no user exists for the subject.
type UserStore interface {
	FindBySubject(ctx context.Context, subject string) (*models.AppUser, error)
	Create(ctx context.Context, user *models.AppUser) error
}

type ContactStore interface {
	Create(ctx context.Context, contact *models.Contact) error
}

type MessageStore interface {
	Create(ctx context.Context, msg *models.Message) error
	ListWithContacts(ctx context.Context, userID uuid.UUID) ([]models.MessageWithContact, error)
}

// Generator produces an outreach message for a contact and a goal.
type Generator interface {
	Generate(ctx context.Context, contact *models.Contact, goalPrompt string) (string, error)
}
