package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestAs(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"direct", ErrEmailExists, CodeEmailAlreadyExists, 409},
		{"wrapped", fmt.Errorf("register: %w", ErrInvalidOTP), CodeInvalidOTP, 400},
		{"constructor", Forbidden("Only brands can create campaigns"), CodeForbidden, 403},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := As(tt.err)
			if e == nil {
				t.Fatalf("As(%v) = nil, want *Error", tt.err)
			}
			if e.Code != tt.wantCode || e.Status != tt.wantStatus {
				t.Errorf("As(%v) = {%s %d}, want {%s %d}", tt.err, e.Code, e.Status, tt.wantCode, tt.wantStatus)
			}
		})
	}
}

func TestAsPlainError(t *testing.T) {
	if e := As(errors.New("connection refused")); e != nil {
		t.Errorf("As(plain error) = %v, want nil", e)
	}
}

func TestCredentialErrorsShareMessage(t *testing.T) {
	// Same generic message for unknown email and wrong password.
	if ErrInvalidCredentials.Message != "Invalid email or password" {
		t.Errorf("unexpected message %q", ErrInvalidCredentials.Message)
	}
	if ErrInvalidCredentials.Status != 401 {
		t.Errorf("status = %d, want 401", ErrInvalidCredentials.Status)
	}
}
