package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/influencetie/backend/internal/models"
)

const campaignColumns = `c.id, c.brand_id, c.title, c.description, c.budget, c.category,
	c.requirements, c.requirements_json, c.target_audience, c.content_guidelines,
	c.start_date, c.end_date, c.status, c.created_at, c.updated_at`

type CampaignRepo struct {
	pool *pgxpool.Pool
}

func NewCampaignRepo(pool *pgxpool.Pool) *CampaignRepo {
	return &CampaignRepo{pool: pool}
}

func (r *CampaignRepo) Create(ctx context.Context, c *models.Campaign) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO campaigns (brand_id, title, description, budget, category,
			requirements, requirements_json, target_audience, content_guidelines,
			start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`, c.BrandID, c.Title, c.Description, c.Budget, c.Category,
		c.Requirements, c.RequirementsJSON, c.TargetAudience, c.ContentGuidelines,
		c.StartDate, c.EndDate, c.Status,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CampaignRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	var c models.Campaign
	err := r.pool.QueryRow(ctx, `
		SELECT `+campaignColumns+` FROM campaigns c WHERE c.id = $1
	`, id).Scan(
		&c.ID, &c.BrandID, &c.Title, &c.Description, &c.Budget, &c.Category,
		&c.Requirements, &c.RequirementsJSON, &c.TargetAudience, &c.ContentGuidelines,
		&c.StartDate, &c.EndDate, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetDetail joins brand info, participant counts and the viewer's own
// application in one round trip.
func (r *CampaignRepo) GetDetail(ctx context.Context, id, viewerID uuid.UUID) (*models.CampaignDetail, error) {
	var d models.CampaignDetail
	err := r.pool.QueryRow(ctx, `
		SELECT `+campaignColumns+`,
		       b.first_name, b.company_name, b.email,
		       (SELECT count(*) FROM campaign_participants p WHERE p.campaign_id = c.id),
		       (SELECT count(*) FROM campaign_participants p WHERE p.campaign_id = c.id AND p.status = 'ACCEPTED'),
		       a.status, a.proposed_rate, a.applied_at
		FROM campaigns c
		JOIN users b ON b.id = c.brand_id
		LEFT JOIN campaign_participants a ON a.campaign_id = c.id AND a.influencer_id = $2
		WHERE c.id = $1
	`, id, viewerID).Scan(
		&d.ID, &d.BrandID, &d.Title, &d.Description, &d.Budget, &d.Category,
		&d.Requirements, &d.RequirementsJSON, &d.TargetAudience, &d.ContentGuidelines,
		&d.StartDate, &d.EndDate, &d.Status, &d.CreatedAt, &d.UpdatedAt,
		&d.BrandName, &d.BrandCompanyName, &d.BrandEmail,
		&d.ApplicationsCount, &d.AcceptedCount,
		&d.UserApplicationStatus, &d.UserProposedRate, &d.UserAppliedAt,
	)
	if err != nil {
		return nil, err
	}
	d.IsOwner = d.BrandID == viewerID
	return &d, nil
}

type CampaignFilter struct {
	BrandID   *uuid.UUID
	Status    *string
	Category  *string
	Search    *string
	MinBudget *float64
	MaxBudget *float64
	Limit     int
	Offset    int
}

func (r *CampaignRepo) List(ctx context.Context, f CampaignFilter) ([]models.CampaignListItem, int, error) {
	where := []string{}
	args := []any{}
	argIdx := 1

	if f.BrandID != nil {
		where = append(where, fmt.Sprintf("c.brand_id = $%d", argIdx))
		args = append(args, *f.BrandID)
		argIdx++
	}
	if f.Status != nil {
		where = append(where, fmt.Sprintf("c.status = $%d", argIdx))
		args = append(args, *f.Status)
		argIdx++
	}
	if f.Category != nil {
		where = append(where, fmt.Sprintf("c.category ILIKE $%d", argIdx))
		args = append(args, *f.Category)
		argIdx++
	}
	if f.Search != nil {
		where = append(where, fmt.Sprintf("(c.title ILIKE $%d OR c.description ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+*f.Search+"%")
		argIdx++
	}
	if f.MinBudget != nil {
		where = append(where, fmt.Sprintf("c.budget >= $%d", argIdx))
		args = append(args, *f.MinBudget)
		argIdx++
	}
	if f.MaxBudget != nil {
		where = append(where, fmt.Sprintf("c.budget <= $%d", argIdx))
		args = append(args, *f.MaxBudget)
		argIdx++
	}

	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		"SELECT count(*) FROM campaigns c"+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query := fmt.Sprintf(`
		SELECT `+campaignColumns+`,
		       b.first_name, b.company_name,
		       (SELECT count(*) FROM campaign_participants p WHERE p.campaign_id = c.id)
		FROM campaigns c
		JOIN users b ON b.id = c.brand_id
		%s
		ORDER BY c.created_at DESC LIMIT $%d OFFSET $%d
	`, cond, argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []models.CampaignListItem
	for rows.Next() {
		var it models.CampaignListItem
		if err := rows.Scan(
			&it.ID, &it.BrandID, &it.Title, &it.Description, &it.Budget, &it.Category,
			&it.Requirements, &it.RequirementsJSON, &it.TargetAudience, &it.ContentGuidelines,
			&it.StartDate, &it.EndDate, &it.Status, &it.CreatedAt, &it.UpdatedAt,
			&it.BrandName, &it.BrandCompanyName, &it.ApplicationsCount,
		); err != nil {
			return nil, 0, err
		}
		items = append(items, it)
	}
	return items, total, rows.Err()
}

// Columns a brand may change on its own campaign. Budget is immutable
// after creation and stays off this list.
var campaignUpdateColumns = map[string]bool{
	"title":              true,
	"description":        true,
	"category":           true,
	"requirements":       true,
	"requirements_json":  true,
	"target_audience":    true,
	"content_guidelines": true,
	"start_date":         true,
	"end_date":           true,
	"status":             true,
}

func (r *CampaignRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Campaign, error) {
	sets := []string{}
	args := []any{}
	argIdx := 1

	for col, val := range fields {
		if !campaignUpdateColumns[col] {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = $%d", col, argIdx))
		args = append(args, val)
		argIdx++
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	query := fmt.Sprintf(`
		UPDATE campaigns c SET %s, updated_at = now() WHERE c.id = $%d
		RETURNING `+campaignColumns, strings.Join(sets, ", "), argIdx)
	args = append(args, id)

	var c models.Campaign
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.BrandID, &c.Title, &c.Description, &c.Budget, &c.Category,
		&c.Requirements, &c.RequirementsJSON, &c.TargetAudience, &c.ContentGuidelines,
		&c.StartDate, &c.EndDate, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	return err
}

func (r *CampaignRepo) CountAcceptedParticipants(ctx context.Context, campaignID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM campaign_participants
		WHERE campaign_id = $1 AND status = 'ACCEPTED'
	`, campaignID).Scan(&n)
	return n, err
}
