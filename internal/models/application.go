package models

import (
	"time"

	"github.com/google/uuid"
)

// Application statuses
const (
	ApplicationStatusInvited  = "INVITED"
	ApplicationStatusAccepted = "ACCEPTED"
	ApplicationStatusRejected = "REJECTED"
)

// Valid state transitions: from -> []to. An application is decided exactly
// once; ACCEPTED and REJECTED are terminal.
var ValidApplicationTransitions = map[string][]string{
	ApplicationStatusInvited:  {ApplicationStatusAccepted, ApplicationStatusRejected},
	ApplicationStatusAccepted: {},
	ApplicationStatusRejected: {},
}

func IsValidApplicationTransition(from, to string) bool {
	allowed, ok := ValidApplicationTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

type Application struct {
	ID           uuid.UUID  `json:"id"`
	CampaignID   uuid.UUID  `json:"campaign_id"`
	InfluencerID uuid.UUID  `json:"influencer_id"`
	ProposedRate *float64   `json:"proposed_rate,omitempty"`
	AgreedRate   *float64   `json:"agreed_rate,omitempty"`
	Status       string     `json:"status"`
	AppliedAt    time.Time  `json:"applied_at"`
	AcceptedAt   *time.Time `json:"accepted_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// ApplicationWithInfluencer joins the influencer's profile summary for the
// brand-facing applications list.
type ApplicationWithInfluencer struct {
	Application
	FirstName       *string            `json:"first_name,omitempty"`
	LastName        *string            `json:"last_name,omitempty"`
	Email           string             `json:"email"`
	InstagramHandle *string            `json:"instagram_handle,omitempty"`
	FollowersCount  *int               `json:"followers_count,omitempty"`
	EngagementRate  *float64           `json:"engagement_rate,omitempty"`
	Categories      []string           `json:"categories,omitempty"`
	Bio             *string            `json:"bio,omitempty"`
	Rates           map[string]float64 `json:"rates,omitempty"`
}
