package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles
const (
	RoleInfluencer = "INFLUENCER"
	RoleBrand      = "BRAND"
	RoleAdmin      = "ADMIN"
)

func IsValidRole(role string) bool {
	return role == RoleInfluencer || role == RoleBrand || role == RoleAdmin
}

// OTP purposes. A code only validates for the purpose it was issued with.
const (
	OTPPurposeVerifyEmail   = "verify_email"
	OTPPurposeResetPassword = "reset_password"
)

type User struct {
	ID              uuid.UUID          `json:"id"`
	Email           string             `json:"email"`
	Password        *string            `json:"-"` // bcrypt hash; nil for Google-created accounts
	FirstName       *string            `json:"first_name,omitempty"`
	LastName        *string            `json:"last_name,omitempty"`
	Avatar          *string            `json:"avatar,omitempty"`
	Role            string             `json:"role"`
	Phone           *string            `json:"phone,omitempty"`
	GoogleID        *string            `json:"-"`
	IsEmailVerified bool               `json:"is_email_verified"`
	IsPhoneVerified bool               `json:"is_phone_verified"`
	OTP             *string            `json:"-"`
	OTPExpiry       *time.Time         `json:"-"`
	OTPPurpose      *string            `json:"-"`
	Bio             *string            `json:"bio,omitempty"`
	Website         *string            `json:"website,omitempty"`
	Location        *string            `json:"location,omitempty"`
	InstagramHandle *string            `json:"instagram_handle,omitempty"`
	FollowersCount  *int               `json:"followers_count,omitempty"`
	EngagementRate  *float64           `json:"engagement_rate,omitempty"`
	Categories      []string           `json:"categories,omitempty"`
	Rates           map[string]float64 `json:"rates,omitempty"`
	CompanyName     *string            `json:"company_name,omitempty"`
	Industry        *string            `json:"industry,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	LastLoginAt     *time.Time         `json:"last_login_at,omitempty"`
}

// UserSummary is the shape embedded in auth responses and OAuth redirects.
type UserSummary struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	FirstName       *string   `json:"first_name,omitempty"`
	LastName        *string   `json:"last_name,omitempty"`
	Role            string    `json:"role"`
	IsEmailVerified bool      `json:"is_email_verified"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Role:            u.Role,
		IsEmailVerified: u.IsEmailVerified,
	}
}

// InfluencerStats aggregates an influencer's campaign participation.
type InfluencerStats struct {
	TotalApplications    int     `json:"total_applications"`
	AcceptedApplications int     `json:"accepted_applications"`
	RejectedApplications int     `json:"rejected_applications"`
	PendingApplications  int     `json:"pending_applications"`
	TotalEarnings        float64 `json:"total_earnings"`
}
