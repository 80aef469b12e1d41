package models

import (
	"time"

	"github.com/google/uuid"
)

// Contact is the outreach target a message was generated for.
type Contact struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	TargetName  string    `gorm:"size:100;not null" json:"target_name"`
	TargetRole  string    `gorm:"size:100;not null" json:"target_role"`
	LinkedInURL string    `gorm:"column:linkedin_url;type:text;not null" json:"linkedin_url"`
	Company     *string   `gorm:"size:200" json:"company,omitempty"`
	Experiences *string   `gorm:"type:text" json:"experiences,omitempty"`
	RecentPost  *string   `gorm:"type:text" json:"recent_post,omitempty"`
	Education   *string   `gorm:"type:text" json:"education,omitempty"`
	OtherNotes  *string   `gorm:"type:text" json:"other_notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	User        AppUser   `gorm:"foreignKey:UserID" json:"-"`
}

func (Contact) TableName() string { return "contacts" }
