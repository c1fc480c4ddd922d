package dto

import (
	"regexp"
	"strings"
	"time"

	"github.com/influencetie/backend/internal/models"
)

var (
	emailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	handleRe = regexp.MustCompile(`^[A-Za-z0-9_]{1,30}$`)
	phoneRe  = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// Errors is field name -> problems, the shape the validation envelope carries.
type Errors map[string][]string

func (e Errors) add(field, msg string) {
	e[field] = append(e[field], msg)
}

func validEmail(email string) bool {
	return emailRe.MatchString(strings.TrimSpace(email))
}

// passwordIssues reports why a password is unacceptable, empty if it is fine.
func passwordIssues(password string) []string {
	var issues []string
	if len(password) < 8 {
		issues = append(issues, "must be at least 8 characters")
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasUpper {
		issues = append(issues, "must contain an uppercase letter")
	}
	if !hasLower {
		issues = append(issues, "must contain a lowercase letter")
	}
	if !hasDigit {
		issues = append(issues, "must contain a digit")
	}
	return issues
}

type RegisterRequest struct {
	Email           string   `json:"email"`
	Password        string   `json:"password"`
	Role            string   `json:"role"`
	FirstName       *string  `json:"first_name,omitempty"`
	LastName        *string  `json:"last_name,omitempty"`
	Phone           *string  `json:"phone,omitempty"`
	InstagramHandle *string  `json:"instagram_handle,omitempty"`
	Categories      []string `json:"categories,omitempty"`
	CompanyName     *string  `json:"company_name,omitempty"`
	Industry        *string  `json:"industry,omitempty"`
}

func (r *RegisterRequest) Validate() Errors {
	errs := Errors{}

	if !validEmail(r.Email) {
		errs.add("email", "must be a valid email address")
	}
	for _, issue := range passwordIssues(r.Password) {
		errs.add("password", issue)
	}
	if r.Role != models.RoleInfluencer && r.Role != models.RoleBrand {
		errs.add("role", "must be INFLUENCER or BRAND")
	}
	if r.Role == models.RoleBrand && (r.CompanyName == nil || strings.TrimSpace(*r.CompanyName) == "") {
		errs.add("company_name", "is required for brand accounts")
	}
	if r.Role == models.RoleInfluencer {
		first := r.FirstName != nil && strings.TrimSpace(*r.FirstName) != ""
		last := r.LastName != nil && strings.TrimSpace(*r.LastName) != ""
		if !first || !last {
			errs.add("first_name", "first and last name are required for influencer accounts")
		}
	}
	if r.Phone != nil && !phoneRe.MatchString(*r.Phone) {
		errs.add("phone", "must be a valid phone number")
	}
	if r.InstagramHandle != nil && !handleRe.MatchString(*r.InstagramHandle) {
		errs.add("instagram_handle", "must be 1-30 letters, digits or underscores")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() Errors {
	errs := Errors{}
	if !validEmail(r.Email) {
		errs.add("email", "must be a valid email address")
	}
	if r.Password == "" {
		errs.add("password", "is required")
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func (r *VerifyOTPRequest) Validate() Errors {
	errs := Errors{}
	if !validEmail(r.Email) {
		errs.add("email", "must be a valid email address")
	}
	if len(r.OTP) != 6 {
		errs.add("otp", "must be a 6-digit code")
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

type ResendOTPRequest struct {
	Email string `json:"email"`
}

func (r *ResendOTPRequest) Validate() Errors {
	if !validEmail(r.Email) {
		return Errors{"email": {"must be a valid email address"}}
	}
	return nil
}

type PasswordResetRequest struct {
	Email string `json:"email"`
}

func (r *PasswordResetRequest) Validate() Errors {
	if !validEmail(r.Email) {
		return Errors{"email": {"must be a valid email address"}}
	}
	return nil
}

type PasswordResetConfirmRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"new_password"`
}

func (r *PasswordResetConfirmRequest) Validate() Errors {
	errs := Errors{}
	if !validEmail(r.Email) {
		errs.add("email", "must be a valid email address")
	}
	if len(r.OTP) != 6 {
		errs.add("otp", "must be a 6-digit code")
	}
	for _, issue := range passwordIssues(r.NewPassword) {
		errs.add("new_password", issue)
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (r *ChangePasswordRequest) Validate() Errors {
	errs := Errors{}
	if r.CurrentPassword == "" {
		errs.add("current_password", "is required")
	}
	for _, issue := range passwordIssues(r.NewPassword) {
		errs.add("new_password", issue)
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

type UpdateProfileRequest struct {
	FirstName       *string             `json:"first_name,omitempty"`
	LastName        *string             `json:"last_name,omitempty"`
	Avatar          *string             `json:"avatar,omitempty"`
	Phone           *string             `json:"phone,omitempty"`
	Bio             *string             `json:"bio,omitempty"`
	Website         *string             `json:"website,omitempty"`
	Location        *string             `json:"location,omitempty"`
	InstagramHandle *string             `json:"instagram_handle,omitempty"`
	Categories      []string            `json:"categories,omitempty"`
	Rates           map[string]float64  `json:"rates,omitempty"`
	CompanyName     *string             `json:"company_name,omitempty"`
	Industry        *string             `json:"industry,omitempty"`
}

func (r *UpdateProfileRequest) Validate() Errors {
	errs := Errors{}
	if r.Phone != nil && !phoneRe.MatchString(*r.Phone) {
		errs.add("phone", "must be a valid phone number")
	}
	if r.InstagramHandle != nil && !handleRe.MatchString(*r.InstagramHandle) {
		errs.add("instagram_handle", "must be 1-30 letters, digits or underscores")
	}
	for k, v := range r.Rates {
		if v < 0 {
			errs.add("rates", "rate for "+k+" must not be negative")
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Fields maps the present request fields onto column names. Only fields the
// client actually sent are included, so absent fields stay untouched.
func (r *UpdateProfileRequest) Fields() map[string]any {
	fields := map[string]any{}
	if r.FirstName != nil {
		fields["first_name"] = *r.FirstName
	}
	if r.LastName != nil {
		fields["last_name"] = *r.LastName
	}
	if r.Avatar != nil {
		fields["avatar"] = *r.Avatar
	}
	if r.Phone != nil {
		fields["phone"] = *r.Phone
	}
	if r.Bio != nil {
		fields["bio"] = *r.Bio
	}
	if r.Website != nil {
		fields["website"] = *r.Website
	}
	if r.Location != nil {
		fields["location"] = *r.Location
	}
	if r.InstagramHandle != nil {
		fields["instagram_handle"] = *r.InstagramHandle
	}
	if r.Categories != nil {
		fields["categories"] = r.Categories
	}
	if r.Rates != nil {
		fields["rates"] = r.Rates
	}
	if r.CompanyName != nil {
		fields["company_name"] = *r.CompanyName
	}
	if r.Industry != nil {
		fields["industry"] = *r.Industry
	}
	return fields
}

type CreateCampaignRequest struct {
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
}

func (r *CreateCampaignRequest) Validate() Errors {
	errs := Errors{}
	if strings.TrimSpace(r.Title) == "" {
		errs.add("title", "is required")
	}
	if strings.TrimSpace(r.Description) == "" {
		errs.add("description", "is required")
	}
	if r.Budget <= 0 {
		errs.add("budget", "must be a positive amount")
	}
	if strings.TrimSpace(r.Category) == "" {
		errs.add("category", "is required")
	}
	if r.StartDate.IsZero() {
		errs.add("start_date", "is required")
	}
	if r.EndDate.IsZero() {
		errs.add("end_date", "is required")
	}
	if !r.StartDate.IsZero() && !r.EndDate.IsZero() && !r.EndDate.After(r.StartDate) {
		errs.add("end_date", "must be after start_date")
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

type UpdateCampaignRequest struct {
	Title             *string        `json:"title,omitempty"`
	Description       *string        `json:"description,omitempty"`
	Category          *string        `json:"category,omitempty"`
	Requirements      *string        `json:"requirements,omitempty"`
	RequirementsJSON  map[string]any `json:"requirements_json,omitempty"`
	TargetAudience    map[string]any `json:"target_audience,omitempty"`
	ContentGuidelines map[string]any `json:"content_guidelines,omitempty"`
	StartDate         *time.Time     `json:"start_date,omitempty"`
	EndDate           *time.Time     `json:"end_date,omitempty"`
	Status            *string        `json:"status,omitempty"`
}

func (r *UpdateCampaignRequest) Validate() Errors {
	errs := Errors{}
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		errs.add("title", "must not be empty")
	}
	if r.Description != nil && strings.TrimSpace(*r.Description) == "" {
		errs.add("description", "must not be empty")
	}
	if r.Category != nil && strings.TrimSpace(*r.Category) == "" {
		errs.add("category", "must not be empty")
	}
	if r.StartDate != nil && r.EndDate != nil && !r.EndDate.After(*r.StartDate) {
		errs.add("end_date", "must be after start_date")
	}
	if r.Status != nil && !models.IsValidCampaignStatus(*r.Status) {
		errs.add("status", "must be one of DRAFT, ACTIVE, PAUSED, COMPLETED, CANCELLED")
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (r *UpdateCampaignRequest) Fields() map[string]any {
	fields := map[string]any{}
	if r.Title != nil {
		fields["title"] = *r.Title
	}
	if r.Description != nil {
		fields["description"] = *r.Description
	}
	if r.Category != nil {
		fields["category"] = *r.Category
	}
	if r.Requirements != nil {
		fields["requirements"] = *r.Requirements
	}
	if r.RequirementsJSON != nil {
		fields["requirements_json"] = r.RequirementsJSON
	}
	if r.TargetAudience != nil {
		fields["target_audience"] = r.TargetAudience
	}
	if r.ContentGuidelines != nil {
		fields["content_guidelines"] = r.ContentGuidelines
	}
	if r.StartDate != nil {
		fields["start_date"] = *r.StartDate
	}
	if r.EndDate != nil {
		fields["end_date"] = *r.EndDate
	}
	if r.Status != nil {
		fields["status"] = *r.Status
	}
	return fields
}

type ApplyToCampaignRequest struct {
	ProposedRate *float64 `json:"proposed_rate,omitempty"`
}

func (r *ApplyToCampaignRequest) Validate() Errors {
	if r.ProposedRate != nil && *r.ProposedRate < 0 {
		return Errors{"proposed_rate": {"must not be negative"}}
	}
	return nil
}

type DecideApplicationRequest struct {
	Status     string   `json:"status"`
	AgreedRate *float64 `json:"agreed_rate,omitempty"`
}

func (r *DecideApplicationRequest) Validate() Errors {
	errs := Errors{}
	if r.Status != models.ApplicationStatusAccepted && r.Status != models.ApplicationStatusRejected {
		errs.add("status", "must be ACCEPTED or REJECTED")
	}
	if r.AgreedRate != nil && *r.AgreedRate < 0 {
		errs.add("agreed_rate", "must not be negative")
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

type SendMessageRequest struct {
	ThreadID    *string `json:"thread_id,omitempty"`
	RecipientID *string `json:"recipient_id,omitempty"`
	CampaignID  *string `json:"campaign_id,omitempty"`
	Body        string  `json:"body"`
}

func (r *SendMessageRequest) Validate() Errors {
	errs := Errors{}
	if strings.TrimSpace(r.Body) == "" {
		errs.add("body", "is required")
	}
	if r.ThreadID == nil && r.RecipientID == nil {
		errs.add("thread_id", "either thread_id or recipient_id is required")
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
