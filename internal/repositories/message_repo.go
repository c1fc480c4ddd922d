package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/influencetie/backend/internal/models"
)

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

// GetOrCreateThread reuses the existing brand/influencer thread for a
// campaign if one exists.
func (r *MessageRepo) GetOrCreateThread(ctx context.Context, campaignID *uuid.UUID, brandID, influencerID uuid.UUID) (*models.MessageThread, error) {
	var t models.MessageThread
	err := r.pool.QueryRow(ctx, `
		INSERT INTO message_threads (campaign_id, brand_id, influencer_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (campaign_id, brand_id, influencer_id) DO UPDATE SET updated_at = now()
		RETURNING id, campaign_id, brand_id, influencer_id, created_at, updated_at
	`, campaignID, brandID, influencerID).Scan(
		&t.ID, &t.CampaignID, &t.BrandID, &t.InfluencerID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *MessageRepo) GetThread(ctx context.Context, id uuid.UUID) (*models.MessageThread, error) {
	var t models.MessageThread
	err := r.pool.QueryRow(ctx, `
		SELECT id, campaign_id, brand_id, influencer_id, created_at, updated_at
		FROM message_threads WHERE id = $1
	`, id).Scan(&t.ID, &t.CampaignID, &t.BrandID, &t.InfluencerID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListThreads returns every thread the user participates in, most recently
// active first, with the last message previewed.
func (r *MessageRepo) ListThreads(ctx context.Context, userID uuid.UUID) ([]models.ThreadListItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT t.id, t.campaign_id, t.brand_id, t.influencer_id, t.created_at, t.updated_at,
		       c.title,
		       m.body, m.sent_at
		FROM message_threads t
		LEFT JOIN campaigns c ON c.id = t.campaign_id
		LEFT JOIN LATERAL (
			SELECT body, sent_at FROM messages
			WHERE thread_id = t.id ORDER BY sent_at DESC LIMIT 1
		) m ON true
		WHERE t.brand_id = $1 OR t.influencer_id = $1
		ORDER BY t.updated_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var threads []models.ThreadListItem
	for rows.Next() {
		var t models.ThreadListItem
		if err := rows.Scan(
			&t.ID, &t.CampaignID, &t.BrandID, &t.InfluencerID, &t.CreatedAt, &t.UpdatedAt,
			&t.CampaignTitle, &t.LastBody, &t.LastSentAt,
		); err != nil {
			return nil, err
		}
		threads = append(threads, t)
	}
	return threads, rows.Err()
}

func (r *MessageRepo) CreateMessage(ctx context.Context, m *models.Message) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO messages (thread_id, sender_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, sent_at
	`, m.ThreadID, m.SenderID, m.Body).Scan(&m.ID, &m.SentAt)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `UPDATE message_threads SET updated_at = now() WHERE id = $1`, m.ThreadID)
	return err
}

func (r *MessageRepo) ListMessages(ctx context.Context, threadID uuid.UUID, limit, offset int) ([]models.Message, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, thread_id, sender_id, body, sent_at
		FROM messages WHERE thread_id = $1
		ORDER BY sent_at DESC LIMIT $2 OFFSET $3
	`, threadID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.ThreadID, &m.SenderID, &m.Body, &m.SentAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
