package models

import "testing"

func TestIsValidApplicationTransition(t *testing.T) {
	tests := []struct {
		from     string
		to       string
		expected bool
	}{
		// Happy path
		{ApplicationStatusInvited, ApplicationStatusAccepted, true},
		{ApplicationStatusInvited, ApplicationStatusRejected, true},

		// Decided applications stay decided
		{ApplicationStatusAccepted, ApplicationStatusRejected, false},
		{ApplicationStatusAccepted, ApplicationStatusAccepted, false},
		{ApplicationStatusRejected, ApplicationStatusAccepted, false},
		{ApplicationStatusRejected, ApplicationStatusRejected, false},

		// No backwards path
		{ApplicationStatusAccepted, ApplicationStatusInvited, false},
		{ApplicationStatusRejected, ApplicationStatusInvited, false},
		{ApplicationStatusInvited, ApplicationStatusInvited, false},

		// Unknown statuses
		{"nonexistent", ApplicationStatusAccepted, false},
		{ApplicationStatusInvited, "nonexistent", false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			result := IsValidApplicationTransition(tt.from, tt.to)
			if result != tt.expected {
				t.Errorf("IsValidApplicationTransition(%q, %q) = %v, want %v", tt.from, tt.to, result, tt.expected)
			}
		})
	}
}

func TestTerminalApplicationStatusesHaveNoTransitions(t *testing.T) {
	terminal := []string{ApplicationStatusAccepted, ApplicationStatusRejected}
	for _, status := range terminal {
		transitions := ValidApplicationTransitions[status]
		if len(transitions) != 0 {
			t.Errorf("terminal status %q should have no transitions, got %v", status, transitions)
		}
	}
}

func TestIsValidCampaignStatus(t *testing.T) {
	valid := []string{
		CampaignStatusDraft, CampaignStatusActive, CampaignStatusPaused,
		CampaignStatusCompleted, CampaignStatusCancelled,
	}
	for _, s := range valid {
		if !IsValidCampaignStatus(s) {
			t.Errorf("IsValidCampaignStatus(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "active", "ARCHIVED", "draft"} {
		if IsValidCampaignStatus(s) {
			t.Errorf("IsValidCampaignStatus(%q) = true, want false", s)
		}
	}
}

func TestIsValidRole(t *testing.T) {
	for _, r := range []string{RoleInfluencer, RoleBrand, RoleAdmin} {
		if !IsValidRole(r) {
			t.Errorf("IsValidRole(%q) = false, want true", r)
		}
	}
	for _, r := range []string{"", "influencer", "SUPERUSER"} {
		if IsValidRole(r) {
			t.Errorf("IsValidRole(%q) = true, want false", r)
		}
	}
}
