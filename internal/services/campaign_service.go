package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/influencetie/backend/internal/apperr"
	"github.com/influencetie/backend/internal/events"
	"github.com/influencetie/backend/internal/models"
	"github.com/influencetie/backend/internal/rbac"
	"github.com/influencetie/backend/internal/repositories"
)

type CampaignService struct {
	campaignRepo    *repositories.CampaignRepo
	applicationRepo *repositories.ApplicationRepo
	auditRepo       *repositories.AuditRepo
	publisher       events.Publisher
	log             *zap.Logger
}

func NewCampaignService(
	campaignRepo *repositories.CampaignRepo,
	applicationRepo *repositories.ApplicationRepo,
	auditRepo *repositories.AuditRepo,
	publisher events.Publisher,
	log *zap.Logger,
) *CampaignService {
	return &CampaignService{
		campaignRepo:    campaignRepo,
		applicationRepo: applicationRepo,
		auditRepo:       auditRepo,
		publisher:       publisher,
		log:             log,
	}
}

// CreateCampaign creates a DRAFT campaign owned by the caller.
func (s *CampaignService) CreateCampaign(ctx context.Context, brandID uuid.UUID, role string, c *models.Campaign) (*models.Campaign, error) {
	if !rbac.HasPermission(role, rbac.PermCreateCampaign) {
		return nil, apperr.Forbidden("Only brands can create campaigns")
	}

	c.BrandID = brandID
	c.Status = models.CampaignStatusDraft
	if err := s.campaignRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &brandID,
		ActorType:   "user",
		Action:      "campaign_created",
		EntityType:  "campaign",
		EntityID:    &c.ID,
	})
	return c, nil
}

type ListCampaignsInput struct {
	Status    *string
	Category  *string
	Search    *string
	MinBudget *float64
	MaxBudget *float64
	Limit     int
	Offset    int
}

// ListCampaigns returns the listing scoped by the caller's role: brands see
// their own campaigns in every status, admins see everything, influencers see
// the public ACTIVE set.
func (s *CampaignService) ListCampaigns(ctx context.Context, viewerID uuid.UUID, role string, in ListCampaignsInput) ([]models.CampaignListItem, int, error) {
	return s.campaignRepo.List(ctx, listFilter(viewerID, role, in))
}

// listFilter scopes the campaign listing. Brands are always restricted to
// campaigns they own; the status filter only applies within that scope.
func listFilter(viewerID uuid.UUID, role string, in ListCampaignsInput) repositories.CampaignFilter {
	f := repositories.CampaignFilter{
		Category:  in.Category,
		Search:    in.Search,
		MinBudget: in.MinBudget,
		MaxBudget: in.MaxBudget,
		Limit:     in.Limit,
		Offset:    in.Offset,
	}
	switch role {
	case models.RoleBrand:
		f.BrandID = &viewerID
		f.Status = in.Status
	case models.RoleAdmin:
		f.Status = in.Status
	default:
		active := models.CampaignStatusActive
		f.Status = &active
	}
	return f
}

// GetCampaign returns the detail view. Non-ACTIVE campaigns are hidden from
// everyone but the owner and influencers who already applied.
func (s *CampaignService) GetCampaign(ctx context.Context, id, viewerID uuid.UUID) (*models.CampaignDetail, error) {
	d, err := s.campaignRepo.GetDetail(ctx, id, viewerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Campaign not found")
		}
		return nil, err
	}

	if d.Status != models.CampaignStatusActive && !d.IsOwner && d.UserApplicationStatus == nil {
		return nil, apperr.NotFound("Campaign not found")
	}
	return d, nil
}

// UpdateCampaign applies a partial update to an owned campaign. Budget is
// immutable after creation; the handler never passes it through.
func (s *CampaignService) UpdateCampaign(ctx context.Context, id, brandID uuid.UUID, fields map[string]any) (*models.Campaign, error) {
	c, err := s.getOwned(ctx, id, brandID)
	if err != nil {
		return nil, err
	}

	if status, ok := fields["status"].(string); ok {
		if !models.IsValidCampaignStatus(status) {
			return nil, apperr.BadRequest(fmt.Sprintf("Invalid campaign status %q", status))
		}
	}

	updated, err := s.campaignRepo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &brandID,
		ActorType:   "user",
		Action:      "campaign_updated",
		EntityType:  "campaign",
		EntityID:    &c.ID,
	})

	if updated.Status != c.Status {
		_ = s.publisher.Publish(ctx, events.StreamCampaigns, events.Event{
			Type: events.EventCampaignStatusChanged,
			Payload: map[string]any{
				"campaign_id": c.ID.String(),
				"old_status":  c.Status,
				"new_status":  updated.Status,
			},
		})
	}
	return updated, nil
}

// DeleteCampaign removes an owned campaign unless it is ACTIVE with at
// least one accepted participant.
func (s *CampaignService) DeleteCampaign(ctx context.Context, id, brandID uuid.UUID) error {
	c, err := s.getOwned(ctx, id, brandID)
	if err != nil {
		return err
	}

	if c.Status == models.CampaignStatusActive {
		accepted, err := s.campaignRepo.CountAcceptedParticipants(ctx, id)
		if err != nil {
			return err
		}
		if accepted > 0 {
			return apperr.BadRequest("Cannot delete an active campaign with accepted participants")
		}
	}

	if err := s.campaignRepo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &brandID,
		ActorType:   "user",
		Action:      "campaign_deleted",
		EntityType:  "campaign",
		EntityID:    &id,
	})
	return nil
}

// ApplyToCampaign records an influencer's application to an ACTIVE campaign.
func (s *CampaignService) ApplyToCampaign(ctx context.Context, campaignID, influencerID uuid.UUID, role string, proposedRate *float64) (*models.Application, error) {
	if !rbac.HasPermission(role, rbac.PermApplyCampaign) {
		return nil, apperr.Forbidden("Only influencers can apply to campaigns")
	}

	c, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Campaign not found")
		}
		return nil, err
	}
	if err := applyEligibility(c, time.Now()); err != nil {
		return nil, err
	}

	exists, err := s.applicationRepo.Exists(ctx, campaignID, influencerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("You have already applied to this campaign")
	}

	a := &models.Application{
		CampaignID:   campaignID,
		InfluencerID: influencerID,
		ProposedRate: proposedRate,
		Status:       models.ApplicationStatusInvited,
	}
	if err := s.applicationRepo.Create(ctx, a); err != nil {
		if appErr := conflictFromPgError(err); appErr != nil {
			return nil, apperr.Conflict("You have already applied to this campaign")
		}
		return nil, err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &influencerID,
		ActorType:   "user",
		Action:      "application_created",
		EntityType:  "application",
		EntityID:    &a.ID,
		Meta:        map[string]any{"campaign_id": campaignID.String()},
	})
	_ = s.publisher.Publish(ctx, events.StreamCampaigns, events.Event{
		Type: events.EventApplicationCreated,
		Payload: map[string]any{
			"application_id": a.ID.String(),
			"campaign_id":    campaignID.String(),
			"brand_id":       c.BrandID.String(),
			"influencer_id":  influencerID.String(),
		},
	})
	return a, nil
}

// ListApplications returns a campaign's applications to its owner.
func (s *CampaignService) ListApplications(ctx context.Context, campaignID, brandID uuid.UUID) ([]models.ApplicationWithInfluencer, error) {
	if _, err := s.getOwned(ctx, campaignID, brandID); err != nil {
		return nil, err
	}
	return s.applicationRepo.ListByCampaign(ctx, campaignID)
}

// DecideApplication accepts or rejects an application. A decision is final;
// re-deciding answers Conflict.
func (s *CampaignService) DecideApplication(ctx context.Context, campaignID, applicationID, brandID uuid.UUID, decision string, rateOverride *float64) (*models.Application, error) {
	if decision != models.ApplicationStatusAccepted && decision != models.ApplicationStatusRejected {
		return nil, apperr.BadRequest(fmt.Sprintf("Invalid decision %q", decision))
	}

	if _, err := s.getOwned(ctx, campaignID, brandID); err != nil {
		return nil, err
	}

	a, err := s.applicationRepo.GetByIDForCampaign(ctx, applicationID, campaignID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Application not found")
		}
		return nil, err
	}

	if !models.IsValidApplicationTransition(a.Status, decision) {
		return nil, apperr.Conflict(fmt.Sprintf("Application is already %s", a.Status))
	}

	var agreedRate *float64
	if decision == models.ApplicationStatusAccepted {
		agreedRate = rateOverride
		if agreedRate == nil {
			agreedRate = a.ProposedRate
		}
	}

	updated, err := s.applicationRepo.UpdateDecision(ctx, applicationID, decision, agreedRate)
	if err != nil {
		return nil, err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &brandID,
		ActorType:   "user",
		Action:      "application_" + decision,
		EntityType:  "application",
		EntityID:    &updated.ID,
		Meta:        map[string]any{"campaign_id": campaignID.String()},
	})
	_ = s.publisher.Publish(ctx, events.StreamCampaigns, events.Event{
		Type: events.EventApplicationDecided,
		Payload: map[string]any{
			"application_id": updated.ID.String(),
			"campaign_id":    campaignID.String(),
			"influencer_id":  updated.InfluencerID.String(),
			"status":         updated.Status,
		},
	})
	return updated, nil
}

// ListMyApplications returns the caller's own applications.
func (s *CampaignService) ListMyApplications(ctx context.Context, influencerID uuid.UUID) ([]models.Application, error) {
	return s.applicationRepo.ListByInfluencer(ctx, influencerID)
}

// applyEligibility reports whether a campaign can take new applications.
func applyEligibility(c *models.Campaign, now time.Time) error {
	if c.Status != models.CampaignStatusActive {
		return apperr.BadRequest("Campaign is not accepting applications")
	}
	if c.IsExpired(now) {
		return apperr.BadRequest("Campaign has expired")
	}
	return nil
}

// getOwned loads a campaign and enforces ownership.
func (s *CampaignService) getOwned(ctx context.Context, id, brandID uuid.UUID) (*models.Campaign, error) {
	c, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Campaign not found")
		}
		return nil, err
	}
	if c.BrandID != brandID {
		return nil, apperr.Forbidden("You do not own this campaign")
	}
	return c, nil
}
