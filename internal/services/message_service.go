package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/influencetie/backend/internal/apperr"
	"github.com/influencetie/backend/internal/events"
	"github.com/influencetie/backend/internal/models"
	"github.com/influencetie/backend/internal/repositories"
)

type MessageService struct {
	messageRepo *repositories.MessageRepo
	userRepo    *repositories.UserRepo
	publisher   events.Publisher
	log         *zap.Logger
}

func NewMessageService(
	messageRepo *repositories.MessageRepo,
	userRepo *repositories.UserRepo,
	publisher events.Publisher,
	log *zap.Logger,
) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		publisher:   publisher,
		log:         log,
	}
}

func (s *MessageService) ListThreads(ctx context.Context, userID uuid.UUID) ([]models.ThreadListItem, error) {
	return s.messageRepo.ListThreads(ctx, userID)
}

// GetThreadMessages returns a thread's messages to its participants.
func (s *MessageService) GetThreadMessages(ctx context.Context, threadID, userID uuid.UUID, limit, offset int) ([]models.Message, error) {
	t, err := s.getParticipantThread(ctx, threadID, userID)
	if err != nil {
		return nil, err
	}
	return s.messageRepo.ListMessages(ctx, t.ID, limit, offset)
}

type SendMessageInput struct {
	ThreadID    *uuid.UUID
	RecipientID *uuid.UUID
	CampaignID  *uuid.UUID
	Body        string
}

// SendMessage appends to an existing thread or opens one with the recipient.
func (s *MessageService) SendMessage(ctx context.Context, senderID uuid.UUID, senderRole string, in SendMessageInput) (*models.Message, error) {
	var thread *models.MessageThread
	var err error

	switch {
	case in.ThreadID != nil:
		thread, err = s.getParticipantThread(ctx, *in.ThreadID, senderID)
		if err != nil {
			return nil, err
		}
	case in.RecipientID != nil:
		thread, err = s.openThread(ctx, senderID, senderRole, *in.RecipientID, in.CampaignID)
		if err != nil {
			return nil, err
		}
	default:
		return nil, apperr.BadRequest("Either thread_id or recipient_id is required")
	}

	m := &models.Message{
		ThreadID: thread.ID,
		SenderID: senderID,
		Body:     in.Body,
	}
	if err := s.messageRepo.CreateMessage(ctx, m); err != nil {
		return nil, err
	}

	recipient := thread.BrandID
	if senderID == thread.BrandID {
		recipient = thread.InfluencerID
	}
	_ = s.publisher.Publish(ctx, events.StreamMessages, events.Event{
		Type: events.EventMessageSent,
		Payload: map[string]any{
			"message_id":   m.ID.String(),
			"thread_id":    thread.ID.String(),
			"sender_id":    senderID.String(),
			"recipient_id": recipient.String(),
		},
	})
	return m, nil
}

func (s *MessageService) openThread(ctx context.Context, senderID uuid.UUID, senderRole string, recipientID uuid.UUID, campaignID *uuid.UUID) (*models.MessageThread, error) {
	if senderID == recipientID {
		return nil, apperr.BadRequest("Cannot message yourself")
	}

	recipient, err := s.userRepo.GetByID(ctx, recipientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrUserNotFound
		}
		return nil, err
	}

	// Threads are always brand <-> influencer.
	var brandID, influencerID uuid.UUID
	switch {
	case senderRole == models.RoleBrand && recipient.Role == models.RoleInfluencer:
		brandID, influencerID = senderID, recipientID
	case senderRole == models.RoleInfluencer && recipient.Role == models.RoleBrand:
		brandID, influencerID = recipientID, senderID
	default:
		return nil, apperr.BadRequest("Threads connect a brand with an influencer")
	}

	return s.messageRepo.GetOrCreateThread(ctx, campaignID, brandID, influencerID)
}

func (s *MessageService) getParticipantThread(ctx context.Context, threadID, userID uuid.UUID) (*models.MessageThread, error) {
	t, err := s.messageRepo.GetThread(ctx, threadID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Thread not found")
		}
		return nil, err
	}
	if t.BrandID != userID && t.InfluencerID != userID {
		return nil, apperr.NotFound("Thread not found")
	}
	return t, nil
}
