package models

import (
	"time"

	"github.com/google/uuid"
)

// Campaign statuses
const (
	CampaignStatusDraft     = "DRAFT"
	CampaignStatusActive    = "ACTIVE"
	CampaignStatusPaused    = "PAUSED"
	CampaignStatusCompleted = "COMPLETED"
	CampaignStatusCancelled = "CANCELLED"
)

func IsValidCampaignStatus(status string) bool {
	switch status {
	case CampaignStatusDraft, CampaignStatusActive, CampaignStatusPaused,
		CampaignStatusCompleted, CampaignStatusCancelled:
		return true
	}
	return false
}

type Campaign struct {
	ID                uuid.UUID      `json:"id"`
	BrandID           uuid.UUID      `json:"brand_id"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	Budget            float64        `json:"budget"`
	Category          string         `json:"category"`
	Requirements      *string        `json:"requirements,omitempty"`
	RequirementsJSON  map[string]any `json:"requirements_json,omitempty"`
	TargetAudience    map[string]any `json:"target_audience,omitempty"`
	ContentGuidelines map[string]any `json:"content_guidelines,omitempty"`
	StartDate         time.Time      `json:"start_date"`
	EndDate           time.Time      `json:"end_date"`
	Status            string         `json:"status"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

func (c *Campaign) IsExpired(now time.Time) bool {
	return c.EndDate.Before(now)
}

// CampaignListItem embeds Campaign and adds brand info plus the
// application count to avoid N+1 queries on listing.
type CampaignListItem struct {
	Campaign
	BrandName         *string `json:"brand_name,omitempty"`
	BrandCompanyName  *string `json:"company_name,omitempty"`
	ApplicationsCount int     `json:"applications_count"`
}

// CampaignDetail adds the caller's own application, if any.
type CampaignDetail struct {
	CampaignListItem
	BrandEmail            *string    `json:"brand_email,omitempty"`
	AcceptedCount         int        `json:"accepted_count"`
	IsOwner               bool       `json:"is_owner"`
	UserApplicationStatus *string    `json:"user_application_status,omitempty"`
	UserProposedRate      *float64   `json:"user_proposed_rate,omitempty"`
	UserAppliedAt         *time.Time `json:"user_applied_at,omitempty"`
}
