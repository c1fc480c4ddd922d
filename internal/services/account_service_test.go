package services

import (
	"testing"

	"github.com/influencetie/backend/internal/models"
)

func TestShouldIssueVerification(t *testing.T) {
	if shouldIssueVerification(&models.User{IsEmailVerified: true}) {
		t.Error("verified account must not get another code")
	}
	if !shouldIssueVerification(&models.User{}) {
		t.Error("unverified account must get a code")
	}
}
