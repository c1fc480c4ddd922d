package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/influencetie/backend/internal/http/dto"
	"github.com/influencetie/backend/internal/middleware"
	"github.com/influencetie/backend/internal/services"
)

type MessageHandler struct {
	messages *services.MessageService
	log      *zap.Logger
}

func NewMessageHandler(messages *services.MessageService, log *zap.Logger) *MessageHandler {
	return &MessageHandler{messages: messages, log: log}
}

func (h *MessageHandler) ListThreads(c *fiber.Ctx) error {
	threads, err := h.messages.ListThreads(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.OK("Threads retrieved", fiber.Map{"threads": threads}))
}

func (h *MessageHandler) GetThreadMessages(c *fiber.Ctx) error {
	threadID, ok := parseUUIDParam(c, "id")
	if !ok {
		return respondValidation(c, dto.Errors{"id": {"must be a valid UUID"}})
	}

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 50)

	msgs, err := h.messages.GetThreadMessages(c.Context(), threadID, middleware.GetUserID(c), limit, (page-1)*limit)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.OK("Messages retrieved", fiber.Map{"messages": msgs}))
}

func (h *MessageHandler) Send(c *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if errs := req.Validate(); errs != nil {
		return respondValidation(c, errs)
	}

	in := services.SendMessageInput{Body: req.Body}
	if req.ThreadID != nil {
		id, err := uuid.Parse(*req.ThreadID)
		if err != nil {
			return respondValidation(c, dto.Errors{"thread_id": {"must be a valid UUID"}})
		}
		in.ThreadID = &id
	}
	if req.RecipientID != nil {
		id, err := uuid.Parse(*req.RecipientID)
		if err != nil {
			return respondValidation(c, dto.Errors{"recipient_id": {"must be a valid UUID"}})
		}
		in.RecipientID = &id
	}
	if req.CampaignID != nil {
		id, err := uuid.Parse(*req.CampaignID)
		if err != nil {
			return respondValidation(c, dto.Errors{"campaign_id": {"must be a valid UUID"}})
		}
		in.CampaignID = &id
	}

	msg, err := h.messages.SendMessage(c.Context(), middleware.GetUserID(c), middleware.GetRole(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("Message sent", fiber.Map{"message": msg}))
}
