package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/influencetie/backend/internal/models"
)

type ApplicationRepo struct {
	pool *pgxpool.Pool
}

func NewApplicationRepo(pool *pgxpool.Pool) *ApplicationRepo {
	return &ApplicationRepo{pool: pool}
}

func (r *ApplicationRepo) Create(ctx context.Context, a *models.Application) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO campaign_participants (campaign_id, influencer_id, proposed_rate, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, applied_at
	`, a.CampaignID, a.InfluencerID, a.ProposedRate, a.Status,
	).Scan(&a.ID, &a.AppliedAt)
}

func (r *ApplicationRepo) GetByIDForCampaign(ctx context.Context, id, campaignID uuid.UUID) (*models.Application, error) {
	var a models.Application
	err := r.pool.QueryRow(ctx, `
		SELECT id, campaign_id, influencer_id, proposed_rate, agreed_rate,
		       status, applied_at, accepted_at, completed_at
		FROM campaign_participants WHERE id = $1 AND campaign_id = $2
	`, id, campaignID).Scan(
		&a.ID, &a.CampaignID, &a.InfluencerID, &a.ProposedRate, &a.AgreedRate,
		&a.Status, &a.AppliedAt, &a.AcceptedAt, &a.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ApplicationRepo) Exists(ctx context.Context, campaignID, influencerID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM campaign_participants WHERE campaign_id = $1 AND influencer_id = $2)
	`, campaignID, influencerID).Scan(&exists)
	return exists, err
}

// ListByCampaign returns applications newest first with the influencer's
// public profile joined in.
func (r *ApplicationRepo) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]models.ApplicationWithInfluencer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.campaign_id, a.influencer_id, a.proposed_rate, a.agreed_rate,
		       a.status, a.applied_at, a.accepted_at, a.completed_at,
		       u.first_name, u.last_name, u.email, u.instagram_handle,
		       u.followers_count, u.engagement_rate, u.categories, u.bio, u.rates
		FROM campaign_participants a
		JOIN users u ON u.id = a.influencer_id
		WHERE a.campaign_id = $1
		ORDER BY a.applied_at DESC
	`, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []models.ApplicationWithInfluencer
	for rows.Next() {
		var a models.ApplicationWithInfluencer
		if err := rows.Scan(
			&a.ID, &a.CampaignID, &a.InfluencerID, &a.ProposedRate, &a.AgreedRate,
			&a.Status, &a.AppliedAt, &a.AcceptedAt, &a.CompletedAt,
			&a.FirstName, &a.LastName, &a.Email, &a.InstagramHandle,
			&a.FollowersCount, &a.EngagementRate, &a.Categories, &a.Bio, &a.Rates,
		); err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// UpdateDecision records an accept or reject. The agreed rate and accepted
// timestamp are only set on accept.
func (r *ApplicationRepo) UpdateDecision(ctx context.Context, id uuid.UUID, status string, agreedRate *float64) (*models.Application, error) {
	var a models.Application
	err := r.pool.QueryRow(ctx, `
		UPDATE campaign_participants
		SET status = $1,
		    agreed_rate = $2,
		    accepted_at = CASE WHEN $1 = 'ACCEPTED' THEN now() ELSE accepted_at END
		WHERE id = $3
		RETURNING id, campaign_id, influencer_id, proposed_rate, agreed_rate,
		          status, applied_at, accepted_at, completed_at
	`, status, agreedRate, id).Scan(
		&a.ID, &a.CampaignID, &a.InfluencerID, &a.ProposedRate, &a.AgreedRate,
		&a.Status, &a.AppliedAt, &a.AcceptedAt, &a.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListByInfluencer returns the influencer's own applications newest first.
func (r *ApplicationRepo) ListByInfluencer(ctx context.Context, influencerID uuid.UUID) ([]models.Application, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, campaign_id, influencer_id, proposed_rate, agreed_rate,
		       status, applied_at, accepted_at, completed_at
		FROM campaign_participants
		WHERE influencer_id = $1
		ORDER BY applied_at DESC
	`, influencerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []models.Application
	for rows.Next() {
		var a models.Application
		if err := rows.Scan(
			&a.ID, &a.CampaignID, &a.InfluencerID, &a.ProposedRate, &a.AgreedRate,
			&a.Status, &a.AppliedAt, &a.AcceptedAt, &a.CompletedAt,
		); err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}
