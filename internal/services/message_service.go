package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/outreach-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/outreach-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/outreach-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/outreach-backend/internal/models"
)

// MessageService generates outreach messages and serves message history.
type MessageService struct {
	registry  *UserRegistry
	contacts  ContactStore
	messages  MessageStore
	generator Generator
	metrics   metrics.Recorder
}

func NewMessageService(registry *UserRegistry, contacts ContactStore, messages MessageStore, generator Generator, rec metrics.Recorder) *MessageService {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &MessageService{
		registry:  registry,
		contacts:  contacts,
		messages:  messages,
		generator: generator,
		metrics:   rec,
	}
}

// Generate validates the request, stores a contact, generates a message for
// it and stores the message.
//
// The writes are not transactional. If generation or the message insert
// fails, the contact row stays behind.
func (s *MessageService) Generate(ctx context.Context, id auth.Identity, req *dto.GenerateRequest) (*dto.MessageHistoryItem, error) {
	if err := req.Validate(); err != nil {
		s.metrics.RecordGenerate(metrics.OutcomeValidationError)
		return nil, err
	}

	user, err := s.registry.EnsureUser(ctx, id)
	if err != nil {
		s.metrics.RecordGenerate(metrics.OutcomeInternalError)
		return nil, err
	}

	contact := &models.Contact{
		UserID:      user.ID,
		TargetName:  req.TargetName,
		TargetRole:  req.TargetRole,
		LinkedInURL: req.LinkedInURL,
		Company:     req.Company,
		Experiences: req.Experiences,
		RecentPost:  req.RecentPost,
		Education:   req.Education,
		OtherNotes:  req.OtherNotes,
	}
	if err := s.contacts.Create(ctx, contact); err != nil {
		slog.ErrorContext(ctx, "failed to create contact", "user_id", user.ID.String(), "action", "generate", "error", err)
		s.metrics.RecordGenerate(metrics.OutcomeInternalError)
		return nil, internalError("create contact", err)
	}

	start := time.Now()
	text, err := s.generator.Generate(ctx, contact, req.GoalPrompt)
	latency := time.Since(start)
	s.metrics.RecordGenerationLatency(latency)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate message",
			"user_id", user.ID.String(),
			"contact_id", contact.ID.String(),
			"action", "generate",
			"latency_ms", float64(latency.Milliseconds()),
			"error", err,
		)
		s.metrics.RecordGenerate(metrics.OutcomeGenerationError)
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	msg := &models.Message{
		UserID:           user.ID,
		ContactID:        contact.ID,
		GoalPrompt:       req.GoalPrompt,
		GeneratedMessage: text,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "failed to save message",
			"user_id", user.ID.String(),
			"contact_id", contact.ID.String(),
			"action", "generate",
			"error", err,
		)
		s.metrics.RecordGenerate(metrics.OutcomeInternalError)
		return nil, internalError("save message", err)
	}

	s.metrics.RecordGenerate(metrics.OutcomeSuccess)
	return &dto.MessageHistoryItem{
		ID:               msg.ID,
		ContactID:        msg.ContactID,
		TargetName:       contact.TargetName,
		TargetRole:       contact.TargetRole,
		LinkedInURL:      contact.LinkedInURL,
		GoalPrompt:       msg.GoalPrompt,
		GeneratedMessage: msg.GeneratedMessage,
		CreatedAt:        msg.CreatedAt,
	}, nil
}

// History returns the caller's messages, newest first. A caller with no
// messages gets an empty, non-nil slice.
func (s *MessageService) History(ctx context.Context, id auth.Identity) ([]dto.MessageHistoryItem, error) {
	user, err := s.registry.EnsureUser(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := s.messages.ListWithContacts(ctx, user.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch message history", "user_id", user.ID.String(), "action", "history", "error", err)
		return nil, internalError("fetch message history", err)
	}

	items := make([]dto.MessageHistoryItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.MessageHistoryItem{
			ID:               row.ID,
			ContactID:        row.ContactID,
			TargetName:       row.TargetName,
			TargetRole:       row.TargetRole,
			LinkedInURL:      row.LinkedInURL,
			GoalPrompt:       row.GoalPrompt,
			GeneratedMessage: row.GeneratedMessage,
			CreatedAt:        row.CreatedAt,
		})
	}

	s.metrics.RecordHistoryServed(len(items))
	return items, nil
}
