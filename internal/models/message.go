package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is a generated outreach message. It always belongs to a Contact
// created earlier in the same request.
type Message struct {
	ID               uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index:idx_messages_user_created,priority:1" json:"user_id"`
	ContactID        uuid.UUID `gorm:"type:uuid;not null;index" json:"contact_id"`
	GoalPrompt       string    `gorm:"type:text;not null" json:"goal_prompt"`
	GeneratedMessage string    `gorm:"type:text;not null" json:"generated_message"`
	CreatedAt        time.Time `gorm:"index:idx_messages_user_created,priority:2,sort:desc" json:"created_at"`
	User             AppUser   `gorm:"foreignKey:UserID" json:"-"`
	Contact          Contact   `gorm:"foreignKey:ContactID" json:"-"`
}

func (Message) TableName() string { return "messages" }

// MessageWithContact is the row shape of the history query: a message joined
// with the contact fields shown in the history list.
type MessageWithContact struct {
	ID               uuid.UUID
	ContactID        uuid.UUID
	GoalPrompt       string
	GeneratedMessage string
	CreatedAt        time.Time
	TargetName       string
	TargetRole       string
	LinkedInURL      string `gorm:"column:linkedin_url"`
}
