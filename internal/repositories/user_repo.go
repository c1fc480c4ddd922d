package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/influencetie/backend/internal/models"
)

const userColumns = `id, email, password, first_name, last_name, avatar, role, phone, google_id,
	is_email_verified, is_phone_verified, otp, otp_expiry, otp_purpose,
	bio, website, location, instagram_handle, followers_count, engagement_rate,
	categories, rates, company_name, industry, created_at, updated_at, last_login_at`

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.Avatar, &u.Role, &u.Phone, &u.GoogleID,
		&u.IsEmailVerified, &u.IsPhoneVerified, &u.OTP, &u.OTPExpiry, &u.OTPPurpose,
		&u.Bio, &u.Website, &u.Location, &u.InstagramHandle, &u.FollowersCount, &u.EngagementRate,
		&u.Categories, &u.Rates, &u.CompanyName, &u.Industry, &u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindDuplicateField reports the first already-taken unique field among
// email, phone and instagram handle, in that order. Empty string means none.
func (r *UserRepo) FindDuplicateField(ctx context.Context, email string, phone, instagramHandle *string) (string, error) {
	var emailTaken, phoneTaken, igTaken bool
	err := r.pool.QueryRow(ctx, `
		SELECT
			EXISTS(SELECT 1 FROM users WHERE email = $1),
			($2::text IS NOT NULL AND EXISTS(SELECT 1 FROM users WHERE phone = $2)),
			($3::text IS NOT NULL AND EXISTS(SELECT 1 FROM users WHERE instagram_handle = $3))
	`, email, phone, instagramHandle).Scan(&emailTaken, &phoneTaken, &igTaken)
	if err != nil {
		return "", err
	}
	switch {
	case emailTaken:
		return "email", nil
	case phoneTaken:
		return "phone", nil
	case igTaken:
		return "instagram_handle", nil
	}
	return "", nil
}

func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password, first_name, last_name, avatar, role, phone, google_id,
			is_email_verified, otp, otp_expiry, otp_purpose,
			instagram_handle, categories, rates, company_name, industry)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, created_at, updated_at
	`, u.Email, u.Password, u.FirstName, u.LastName, u.Avatar, u.Role, u.Phone, u.GoogleID,
		u.IsEmailVerified, u.OTP, u.OTPExpiry, u.OTPPurpose,
		u.InstagramHandle, u.Categories, u.Rates, u.CompanyName, u.Industry,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *UserRepo) GetByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE google_id = $1`, googleID))
}

// SetOTP stores a fresh code. Any previous code is overwritten, so only the
// latest issued code for a user can validate.
func (r *UserRepo) SetOTP(ctx context.Context, id uuid.UUID, code string, expiry time.Time, purpose string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users SET otp = $1, otp_expiry = $2, otp_purpose = $3, updated_at = now()
		WHERE id = $4
	`, code, expiry, purpose, id)
	return err
}

func (r *UserRepo) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users SET is_email_verified = true,
			otp = NULL, otp_expiry = NULL, otp_purpose = NULL, updated_at = now()
		WHERE id = $1
	`, id)
	return err
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users SET password = $1,
			otp = NULL, otp_expiry = NULL, otp_purpose = NULL, updated_at = now()
		WHERE id = $2
	`, hash, id)
	return err
}

func (r *UserRepo) SetLastLogin(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET last_login_at = now() WHERE id = $1`, id)
	return err
}

func (r *UserRepo) LinkGoogle(ctx context.Context, id uuid.UUID, googleID string, avatar *string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users SET google_id = $1, avatar = COALESCE(avatar, $2),
			is_email_verified = true, updated_at = now()
		WHERE id = $3
	`, googleID, avatar, id)
	return err
}

// Columns a user may change through the profile endpoint. Everything else
// (role, email, verification flags) has its own flow.
var profileColumns = map[string]bool{
	"first_name":       true,
	"last_name":        true,
	"avatar":           true,
	"phone":            true,
	"bio":              true,
	"website":          true,
	"location":         true,
	"instagram_handle": true,
	"categories":       true,
	"rates":            true,
	"company_name":     true,
	"industry":         true,
}

func (r *UserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.User, error) {
	sets := []string{}
	args := []any{}
	argIdx := 1

	for col, val := range fields {
		if !profileColumns[col] {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = $%d", col, argIdx))
		args = append(args, val)
		argIdx++
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	query := fmt.Sprintf(
		`UPDATE users SET %s, updated_at = now() WHERE id = $%d RETURNING `+userColumns,
		strings.Join(sets, ", "), argIdx)
	args = append(args, id)

	return scanUser(r.pool.QueryRow(ctx, query, args...))
}

func (r *UserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

type InfluencerFilter struct {
	Category     *string
	Location     *string
	MinFollowers *int
	Search       *string
	Limit        int
	Offset       int
}

// ListInfluencers returns public influencer profiles ordered by reach.
func (r *UserRepo) ListInfluencers(ctx context.Context, f InfluencerFilter) ([]models.User, int, error) {
	where := []string{"role = $1"}
	args := []any{models.RoleInfluencer}
	argIdx := 2

	if f.Category != nil {
		where = append(where, fmt.Sprintf("$%d = ANY(categories)", argIdx))
		args = append(args, *f.Category)
		argIdx++
	}
	if f.Location != nil {
		where = append(where, fmt.Sprintf("location ILIKE $%d", argIdx))
		args = append(args, "%"+*f.Location+"%")
		argIdx++
	}
	if f.MinFollowers != nil {
		where = append(where, fmt.Sprintf("followers_count >= $%d", argIdx))
		args = append(args, *f.MinFollowers)
		argIdx++
	}
	if f.Search != nil {
		where = append(where, fmt.Sprintf(
			"(first_name ILIKE $%d OR last_name ILIKE $%d OR instagram_handle ILIKE $%d)",
			argIdx, argIdx, argIdx))
		args = append(args, "%"+*f.Search+"%")
		argIdx++
	}

	cond := strings.Join(where, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx,
		"SELECT count(*) FROM users WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query := fmt.Sprintf(`SELECT `+userColumns+` FROM users WHERE %s
		ORDER BY followers_count DESC NULLS LAST, created_at DESC
		LIMIT $%d OFFSET $%d`, cond, argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	return users, total, rows.Err()
}

func (r *UserRepo) UpdateInstagramStats(ctx context.Context, id uuid.UUID, followers int) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users SET followers_count = $1, updated_at = now() WHERE id = $2
	`, followers, id)
	return err
}

// GetStaleInstagramProfiles returns influencers with a handle whose stats
// were last refreshed before the cutoff and who logged in recently.
func (r *UserRepo) GetStaleInstagramProfiles(ctx context.Context, activeSince time.Time) ([]models.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, email, instagram_handle FROM users
		WHERE role = $1 AND instagram_handle IS NOT NULL AND last_login_at > $2
	`, models.RoleInfluencer, activeSince)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.InstagramHandle); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepo) GetInfluencerStats(ctx context.Context, id uuid.UUID) (*models.InfluencerStats, error) {
	var s models.InfluencerStats
	err := r.pool.QueryRow(ctx, `
		SELECT count(*),
		       count(*) FILTER (WHERE status = 'ACCEPTED'),
		       count(*) FILTER (WHERE status = 'REJECTED'),
		       count(*) FILTER (WHERE status = 'INVITED'),
		       COALESCE(sum(agreed_rate) FILTER (WHERE status = 'ACCEPTED'), 0)
		FROM campaign_participants WHERE influencer_id = $1
	`, id).Scan(&s.TotalApplications, &s.AcceptedApplications,
		&s.RejectedApplications, &s.PendingApplications, &s.TotalEarnings)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
