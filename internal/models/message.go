package models

import (
	"time"

	"github.com/google/uuid"
)

type MessageThread struct {
	ID           uuid.UUID  `json:"id"`
	CampaignID   *uuid.UUID `json:"campaign_id,omitempty"`
	BrandID      uuid.UUID  `json:"brand_id"`
	InfluencerID uuid.UUID  `json:"influencer_id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ThreadListItem adds the counterpart's display name and the last message
// preview for the thread list.
type ThreadListItem struct {
	MessageThread
	CampaignTitle *string    `json:"campaign_title,omitempty"`
	LastBody      *string    `json:"last_body,omitempty"`
	LastSentAt    *time.Time `json:"last_sent_at,omitempty"`
}

type Message struct {
	ID       uuid.UUID `json:"id"`
	ThreadID uuid.UUID `json:"thread_id"`
	SenderID uuid.UUID `json:"sender_id"`
	Body     string    `json:"body"`
	SentAt   time.Time `json:"sent_at"`
}
