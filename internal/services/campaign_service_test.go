package services

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/influencetie/backend/internal/apperr"
	"github.com/influencetie/backend/internal/models"
)

func TestApplyEligibility(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		status  string
		endDate time.Time
		wantMsg string
	}{
		{"active and open", models.CampaignStatusActive, now.Add(24 * time.Hour), ""},
		{"active ending exactly now", models.CampaignStatusActive, now, ""},
		{"active but past end date", models.CampaignStatusActive, now.Add(-time.Minute), "Campaign has expired"},
		{"draft", models.CampaignStatusDraft, now.Add(24 * time.Hour), "Campaign is not accepting applications"},
		{"paused", models.CampaignStatusPaused, now.Add(24 * time.Hour), "Campaign is not accepting applications"},
		{"completed and past end date", models.CampaignStatusCompleted, now.Add(-time.Hour), "Campaign is not accepting applications"},
		{"cancelled", models.CampaignStatusCancelled, now.Add(24 * time.Hour), "Campaign is not accepting applications"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &models.Campaign{Status: tt.status, EndDate: tt.endDate}
			err := applyEligibility(c, now)
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("applyEligibility() = %v, want nil", err)
				}
				return
			}
			appErr := apperr.As(err)
			if appErr == nil {
				t.Fatalf("applyEligibility() = %v, want *apperr.Error", err)
			}
			if appErr.Status != fiber.StatusBadRequest {
				t.Errorf("status = %d, want %d", appErr.Status, fiber.StatusBadRequest)
			}
			if appErr.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", appErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestListFilter(t *testing.T) {
	viewer := uuid.New()
	draft := models.CampaignStatusDraft

	t.Run("brand scoped to own campaigns", func(t *testing.T) {
		f := listFilter(viewer, models.RoleBrand, ListCampaignsInput{Status: &draft})
		if f.BrandID == nil || *f.BrandID != viewer {
			t.Fatalf("BrandID = %v, want %v", f.BrandID, viewer)
		}
		if f.Status == nil || *f.Status != draft {
			t.Errorf("Status = %v, want %q", f.Status, draft)
		}
	})

	t.Run("brand scoped even without a status filter", func(t *testing.T) {
		f := listFilter(viewer, models.RoleBrand, ListCampaignsInput{})
		if f.BrandID == nil || *f.BrandID != viewer {
			t.Fatalf("BrandID = %v, want %v", f.BrandID, viewer)
		}
		if f.Status != nil {
			t.Errorf("Status = %q, want nil", *f.Status)
		}
	})

	t.Run("influencer sees only ACTIVE", func(t *testing.T) {
		f := listFilter(viewer, models.RoleInfluencer, ListCampaignsInput{Status: &draft})
		if f.BrandID != nil {
			t.Fatalf("BrandID = %v, want nil", *f.BrandID)
		}
		if f.Status == nil || *f.Status != models.CampaignStatusActive {
			t.Errorf("Status = %v, want %q", f.Status, models.CampaignStatusActive)
		}
	})

	t.Run("admin is unscoped", func(t *testing.T) {
		f := listFilter(viewer, models.RoleAdmin, ListCampaignsInput{})
		if f.BrandID != nil {
			t.Errorf("BrandID = %v, want nil", *f.BrandID)
		}
		if f.Status != nil {
			t.Errorf("Status = %q, want nil", *f.Status)
		}
	})
}
