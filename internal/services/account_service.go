package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/influencetie/backend/internal/apperr"
	"github.com/influencetie/backend/internal/auth"
	"github.com/influencetie/backend/internal/config"
	"github.com/influencetie/backend/internal/models"
	"github.com/influencetie/backend/internal/repositories"
)

const oauthStateTTL = 10 * time.Minute

type AccountService struct {
	userRepo  *repositories.UserRepo
	auditRepo *repositories.AuditRepo
	mailer    Mailer
	google    *auth.GoogleOAuth
	rdb       *redis.Client
	cfg       *config.Config
	log       *zap.Logger
}

func NewAccountService(
	userRepo *repositories.UserRepo,
	auditRepo *repositories.AuditRepo,
	mailer Mailer,
	google *auth.GoogleOAuth,
	rdb *redis.Client,
	cfg *config.Config,
	log *zap.Logger,
) *AccountService {
	return &AccountService{
		userRepo:  userRepo,
		auditRepo: auditRepo,
		mailer:    mailer,
		google:    google,
		rdb:       rdb,
		cfg:       cfg,
		log:       log,
	}
}

type RegisterInput struct {
	Email           string
	Password        string
	Role            string
	FirstName       *string
	LastName        *string
	Phone           *string
	InstagramHandle *string
	Categories      []string
	CompanyName     *string
	Industry        *string
}

// Register creates an unverified account and issues a verification code.
// Uniqueness is checked up front for precise error codes; the unique indexes
// remain the backstop against concurrent registration.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	field, err := s.userRepo.FindDuplicateField(ctx, email, in.Phone, in.InstagramHandle)
	if err != nil {
		return nil, err
	}
	if appErr := duplicateFieldError(field); appErr != nil {
		return nil, appErr
	}

	hash, err := auth.HashPassword(in.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	code, err := auth.GenerateOTP()
	if err != nil {
		return nil, err
	}
	expiry := auth.GenerateOTPExpiry(s.cfg.OTPTTL)
	purpose := models.OTPPurposeVerifyEmail

	u := &models.User{
		Email:           email,
		Password:        &hash,
		Role:            in.Role,
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		Phone:           in.Phone,
		InstagramHandle: in.InstagramHandle,
		Categories:      in.Categories,
		CompanyName:     in.CompanyName,
		Industry:        in.Industry,
		OTP:             &code,
		OTPExpiry:       &expiry,
		OTPPurpose:      &purpose,
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		if appErr := conflictFromPgError(err); appErr != nil {
			return nil, appErr
		}
		return nil, err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &u.ID,
		ActorType:   "user",
		Action:      "account_registered",
		EntityType:  "user",
		EntityID:    &u.ID,
		Meta:        map[string]any{"role": u.Role},
	})

	if err := s.mailer.SendOTP(ctx, u.Email, code, purpose); err != nil {
		s.log.Warn("otp delivery failed", zap.String("email", u.Email), zap.Error(err))
	}

	return u, nil
}

// Login verifies credentials and mints a token. Unknown email and wrong
// password produce the same error.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil, apperr.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if u.Password == nil || !auth.VerifyPassword(password, *u.Password) {
		return "", nil, apperr.ErrInvalidCredentials
	}

	if err := s.userRepo.SetLastLogin(ctx, u.ID); err != nil {
		s.log.Warn("set last login failed", zap.Error(err))
	}

	token, err := auth.GenerateJWT(s.cfg.JWTSecret, u.ID, u.Email, u.Role, s.cfg.JWTExpiration)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// VerifyOTP checks a verification code: existence, then expiry, then match.
func (s *AccountService) VerifyOTP(ctx context.Context, email, code string) (*models.User, error) {
	u, err := s.getByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := validateOTP(u, code, models.OTPPurposeVerifyEmail); err != nil {
		return nil, err
	}

	if err := s.userRepo.MarkEmailVerified(ctx, u.ID); err != nil {
		return nil, err
	}
	u.IsEmailVerified = true
	u.OTP, u.OTPExpiry, u.OTPPurpose = nil, nil, nil

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &u.ID,
		ActorType:   "user",
		Action:      "email_verified",
		EntityType:  "user",
		EntityID:    &u.ID,
	})

	return u, nil
}

// ResendOTP issues a fresh verification code, invalidating the previous one.
// Resending to an already-verified account is a no-op success.
func (s *AccountService) ResendOTP(ctx context.Context, email string) error {
	u, err := s.getByEmail(ctx, email)
	if err != nil {
		return err
	}
	if !shouldIssueVerification(u) {
		return nil
	}
	return s.issueOTP(ctx, u, models.OTPPurposeVerifyEmail)
}

// shouldIssueVerification reports whether a verification code still makes
// sense for the account.
func shouldIssueVerification(u *models.User) bool {
	return !u.IsEmailVerified
}

// RequestPasswordReset issues a reset code to an existing account.
func (s *AccountService) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := s.getByEmail(ctx, email)
	if err != nil {
		return err
	}
	return s.issueOTP(ctx, u, models.OTPPurposeResetPassword)
}

// ConfirmPasswordReset validates the reset code and installs the new
// password. The code is single use; it is cleared with the update.
func (s *AccountService) ConfirmPasswordReset(ctx context.Context, email, code, newPassword string) error {
	u, err := s.getByEmail(ctx, email)
	if err != nil {
		return err
	}

	if err := validateOTP(u, code, models.OTPPurposeResetPassword); err != nil {
		return err
	}

	hash, err := auth.HashPassword(newPassword, s.cfg.BcryptCost)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, u.ID, hash); err != nil {
		return err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &u.ID,
		ActorType:   "user",
		Action:      "password_reset",
		EntityType:  "user",
		EntityID:    &u.ID,
	})

	return nil
}

// GoogleAuthURL stores a CSRF state in Redis and returns the consent URL.
func (s *AccountService) GoogleAuthURL(ctx context.Context) (string, error) {
	state, err := auth.GenerateState()
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, "oauth:state:"+state, "1", oauthStateTTL).Err(); err != nil {
		return "", err
	}
	return s.google.AuthCodeURL(state), nil
}

// GoogleCallback validates the state, exchanges the code and creates or
// links the account. Returns a token and the final frontend redirect URL.
func (s *AccountService) GoogleCallback(ctx context.Context, state, code string) (string, *models.User, error) {
	deleted, err := s.rdb.Del(ctx, "oauth:state:"+state).Result()
	if err != nil {
		return "", nil, err
	}
	if deleted == 0 {
		return "", nil, apperr.Unauthorized("Invalid or expired OAuth state")
	}

	profile, err := s.google.Exchange(ctx, code)
	if err != nil {
		s.log.Warn("google exchange failed", zap.Error(err))
		return "", nil, apperr.Unauthorized("Google authentication failed")
	}

	u, err := s.createOrLinkGoogleUser(ctx, profile)
	if err != nil {
		return "", nil, err
	}

	if err := s.userRepo.SetLastLogin(ctx, u.ID); err != nil {
		s.log.Warn("set last login failed", zap.Error(err))
	}

	token, err := auth.GenerateJWT(s.cfg.JWTSecret, u.ID, u.Email, u.Role, s.cfg.JWTExpiration)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *AccountService) createOrLinkGoogleUser(ctx context.Context, profile *auth.GoogleProfile) (*models.User, error) {
	u, err := s.userRepo.GetByGoogleID(ctx, profile.ID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	email := strings.ToLower(profile.Email)
	u, err = s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		var avatar *string
		if profile.Picture != "" {
			avatar = &profile.Picture
		}
		if err := s.userRepo.LinkGoogle(ctx, u.ID, profile.ID, avatar); err != nil {
			return nil, err
		}
		u.GoogleID = &profile.ID
		u.IsEmailVerified = true
		return u, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	// First sign-in: the account starts as INFLUENCER with a verified email
	// and no password.
	u = &models.User{
		Email:           email,
		Role:            models.RoleInfluencer,
		GoogleID:        &profile.ID,
		IsEmailVerified: true,
	}
	if profile.GivenName != "" {
		u.FirstName = &profile.GivenName
	}
	if profile.FamilyName != "" {
		u.LastName = &profile.FamilyName
	}
	if profile.Picture != "" {
		u.Avatar = &profile.Picture
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		if appErr := conflictFromPgError(err); appErr != nil {
			return nil, appErr
		}
		return nil, err
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &u.ID,
		ActorType:   "user",
		Action:      "account_registered_google",
		EntityType:  "user",
		EntityID:    &u.ID,
	})

	return u, nil
}

// FrontendCallbackURL builds the redirect that hands the token to the SPA.
func (s *AccountService) FrontendCallbackURL(token string, u *models.User) string {
	return fmt.Sprintf("%s/auth/callback?token=%s&role=%s", s.cfg.FrontendURL, token, u.Role)
}

func (s *AccountService) MintToken(u *models.User) (string, error) {
	return auth.GenerateJWT(s.cfg.JWTSecret, u.ID, u.Email, u.Role, s.cfg.JWTExpiration)
}

func (s *AccountService) getByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *AccountService) issueOTP(ctx context.Context, u *models.User, purpose string) error {
	code, err := auth.GenerateOTP()
	if err != nil {
		return err
	}
	expiry := auth.GenerateOTPExpiry(s.cfg.OTPTTL)
	if err := s.userRepo.SetOTP(ctx, u.ID, code, expiry, purpose); err != nil {
		return err
	}
	if err := s.mailer.SendOTP(ctx, u.Email, code, purpose); err != nil {
		s.log.Warn("otp delivery failed", zap.String("email", u.Email), zap.Error(err))
	}
	return nil
}

// validateOTP checks a stored code in order: existence, expiry, match.
func validateOTP(u *models.User, code, purpose string) error {
	if u.OTP == nil || u.OTPExpiry == nil || u.OTPPurpose == nil || *u.OTPPurpose != purpose {
		return apperr.ErrInvalidOTP
	}
	if auth.IsOTPExpired(*u.OTPExpiry, time.Now()) {
		return apperr.ErrOTPExpired
	}
	if *u.OTP != code {
		return apperr.ErrInvalidOTP
	}
	return nil
}

func duplicateFieldError(field string) *apperr.Error {
	switch field {
	case "email":
		return apperr.ErrEmailExists
	case "phone":
		return apperr.ErrPhoneExists
	case "instagram_handle":
		return apperr.ErrInstagramExists
	}
	return nil
}

// conflictFromPgError maps unique-violation errors raised by concurrent
// writes onto the same codes the up-front check produces.
func conflictFromPgError(err error) *apperr.Error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "email"):
		return apperr.ErrEmailExists
	case strings.Contains(pgErr.ConstraintName, "phone"):
		return apperr.ErrPhoneExists
	case strings.Contains(pgErr.ConstraintName, "instagram"):
		return apperr.ErrInstagramExists
	}
	return apperr.Conflict("Resource already exists")
}
