package services

import (
	"context"

	"go.uber.org/zap"
)

// Mailer delivers one-time codes to users. Delivery is best effort; account
// flows never fail because an email could not be sent.
type Mailer interface {
	SendOTP(ctx context.Context, email, code, purpose string) error
}

// LogMailer writes codes to the log instead of sending email. Used in
// development and as the fallback when no SMTP relay is configured.
type LogMailer struct {
	log *zap.Logger
}

func NewLogMailer(log *zap.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendOTP(ctx context.Context, email, code, purpose string) error {
	m.log.Info("otp issued",
		zap.String("email", email),
		zap.String("code", code),
		zap.String("purpose", purpose),
	)
	return nil
}
