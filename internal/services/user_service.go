package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/influencetie/backend/internal/apperr"
	"github.com/influencetie/backend/internal/auth"
	"github.com/influencetie/backend/internal/config"
	"github.com/influencetie/backend/internal/models"
	"github.com/influencetie/backend/internal/repositories"
)

type UserService struct {
	userRepo  *repositories.UserRepo
	auditRepo *repositories.AuditRepo
	cfg       *config.Config
	log       *zap.Logger
}

func NewUserService(
	userRepo *repositories.UserRepo,
	auditRepo *repositories.AuditRepo,
	cfg *config.Config,
	log *zap.Logger,
) *UserService {
	return &UserService{userRepo: userRepo, auditRepo: auditRepo, cfg: cfg, log: log}
}

func (s *UserService) GetProfile(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// UpdateProfile applies a partial update. Fields is keyed by column name;
// the repo discards anything outside the allowed set.
func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.User, error) {
	if handle, ok := fields["instagram_handle"].(string); ok && handle != "" {
		taken, err := s.instagramHandleTaken(ctx, id, handle)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.ErrInstagramExists
		}
	}

	u, err := s.userRepo.UpdateProfile(ctx, id, fields)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrUserNotFound
		}
		if appErr := conflictFromPgError(err); appErr != nil {
			return nil, appErr
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) instagramHandleTaken(ctx context.Context, id uuid.UUID, handle string) (bool, error) {
	field, err := s.userRepo.FindDuplicateField(ctx, "", nil, &handle)
	if err != nil {
		return false, err
	}
	if field != "instagram_handle" {
		return false, nil
	}
	current, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	// Re-submitting your own handle is not a conflict.
	return current.InstagramHandle == nil || *current.InstagramHandle != handle, nil
}

// ChangePassword verifies the current password before installing the new one.
func (s *UserService) ChangePassword(ctx context.Context, id uuid.UUID, currentPassword, newPassword string) error {
	u, err := s.GetProfile(ctx, id)
	if err != nil {
		return err
	}
	if u.Password == nil || !auth.VerifyPassword(currentPassword, *u.Password) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	hash, err := auth.HashPassword(newPassword, s.cfg.BcryptCost)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, id, hash); err != nil {
		return err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &id,
		ActorType:   "user",
		Action:      "password_changed",
		EntityType:  "user",
		EntityID:    &id,
	})
	return nil
}

func (s *UserService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProfile(ctx, id); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &id,
		ActorType:   "user",
		Action:      "account_deleted",
		EntityType:  "user",
		EntityID:    &id,
	})
	return nil
}

// GetStats aggregates campaign participation for influencer accounts.
func (s *UserService) GetStats(ctx context.Context, id uuid.UUID) (*models.InfluencerStats, error) {
	u, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Role != models.RoleInfluencer {
		return nil, apperr.Forbidden("Stats are only available for influencer accounts")
	}
	return s.userRepo.GetInfluencerStats(ctx, id)
}

func (s *UserService) ListInfluencers(ctx context.Context, f repositories.InfluencerFilter) ([]models.User, int, error) {
	return s.userRepo.ListInfluencers(ctx, f)
}
