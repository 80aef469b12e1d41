package dto

import (
	"time"

	"github.com/google/uuid"
)

// GenerateRequest is the body of POST /generate.
type GenerateRequest struct {
	TargetName  string  `json:"target_name" validate:"required,max=100"`
	TargetRole  string  `json:"target_role" validate:"required,max=100"`
	LinkedInURL string  `json:"linkedin_url" validate:"required,max=2083,http_url"`
	Company     *string `json:"company,omitempty" validate:"omitempty,max=200"`
	Experiences *string `json:"experiences,omitempty" validate:"omitempty,max=2000"`
	RecentPost  *string `json:"recent_post,omitempty" validate:"omitempty,max=2000"`
	Education   *string `json:"education,omitempty" validate:"omitempty,max=1000"`
	OtherNotes  *string `json:"other_notes,omitempty" validate:"omitempty,max=1000"`
	GoalPrompt  string  `json:"goal_prompt" validate:"required,max=1000"`
}

// MessageHistoryItem is a message merged with the contact it was written for.
type MessageHistoryItem struct {
	ID               uuid.UUID `json:"id"`
	ContactID        uuid.UUID `json:"contact_id"`
	TargetName       string    `json:"target_name"`
	TargetRole       string    `json:"target_role"`
	LinkedInURL      string    `json:"linkedin_url"`
	GoalPrompt       string    `json:"goal_prompt"`
	GeneratedMessage string    `json:"generated_message"`
	CreatedAt        time.Time `json:"created_at"`
}

type ErrorResponse struct {
	Error   bool         `json:"error"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}

type RootResponse struct {
	Message string `json:"message"`
}
