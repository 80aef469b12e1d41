package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/outreach-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MessageStore struct {
	db *gorm.DB
}

func NewMessageStore(db *gorm.DB) *MessageStore {
	return &MessageStore{db: db}
}

func (s *MessageStore) Create(ctx context.Context, msg *models.Message) error {
	if msg.UserID == uuid.Nil || msg.ContactID == uuid.Nil {
		return fmt.Errorf("message requires owner and contact")
	}
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = now()
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(msg).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// ListWithContacts returns every message owned by userID joined with its
// contact, newest first. Rows missing identifiers are logged and dropped.
func (s *MessageStore) ListWithContacts(ctx context.Context, userID uuid.UUID) ([]models.MessageWithContact, error) {
	var rows []models.MessageWithContact
	if err := historyQuery(s.db.WithContext(ctx), userID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch message history: %w", err)
	}

	return dropMalformed(ctx, userID, rows), nil
}

// dropMalformed removes history rows missing a message or contact id.
func dropMalformed(ctx context.Context, userID uuid.UUID, rows []models.MessageWithContact) []models.MessageWithContact {
	result := make([]models.MessageWithContact, 0, len(rows))
	for _, row := range rows {
		if row.ID == uuid.Nil || row.ContactID == uuid.Nil {
			slog.WarnContext(ctx, "skipping malformed history row", "user_id", userID.String(), "message_id", row.ID.String())
			continue
		}
		result = append(result, row)
	}
	return result
}

func historyQuery(db *gorm.DB, userID uuid.UUID) *gorm.DB {
	return db.
		Table("messages").
		Select("messages.id, messages.contact_id, messages.goal_prompt, messages.generated_message, messages.created_at, " +
			"contacts.target_name, contacts.target_role, contacts.linkedin_url").
		Joins("JOIN contacts ON contacts.id = messages.contact_id").
		Scopes(ForOwner("messages", userID)).
		Order("messages.created_at DESC")
}
