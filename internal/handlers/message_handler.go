package handlers

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/outreach-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/outreach-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// MessageService is the part of services.MessageService the handlers need.
type MessageService interface {
	Generate(ctx context.Context, id auth.Identity, req *dto.GenerateRequest) (*dto.MessageHistoryItem, error)
	History(ctx context.Context, id auth.Identity) ([]dto.MessageHistoryItem, error)
}

type MessageHandler struct {
	messages MessageService
}

func NewMessageHandler(messages MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// Generate handles POST /generate.
func (h *MessageHandler) Generate(c *fiber.Ctx) error {
	id, err := auth.GetIdentity(c)
	if err != nil {
		return respondError(c, fmt.Errorf("%w: %w", auth.ErrUnauthenticated, err))
	}

	var req dto.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, dto.NewBodyError(err))
	}

	item, err := h.messages.Generate(c.UserContext(), id, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(item)
}

// History handles GET /history.
func (h *MessageHandler) History(c *fiber.Ctx) error {
	id, err := auth.GetIdentity(c)
	if err != nil {
		return respondError(c, fmt.Errorf("%w: %w", auth.ErrUnauthenticated, err))
	}

	items, err := h.messages.History(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(items)
}
