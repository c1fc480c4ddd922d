package rbac

import (
	"testing"

	"github.com/influencetie/backend/internal/models"
)

func TestHasPermission(t *testing.T) {
	tests := []struct {
		role       string
		permission string
		want       bool
	}{
		{models.RoleBrand, PermCreateCampaign, true},
		{models.RoleBrand, PermDecideApplication, true},
		{models.RoleBrand, PermApplyCampaign, false},
		{models.RoleInfluencer, PermApplyCampaign, true},
		{models.RoleInfluencer, PermCreateCampaign, false},
		{models.RoleInfluencer, PermDecideApplication, false},
		{models.RoleAdmin, PermModerateUsers, true},
		{models.RoleAdmin, PermCreateCampaign, false},
		{models.RoleAdmin, PermManageCampaign, true},
		{"UNKNOWN", PermApplyCampaign, false},
	}

	for _, tt := range tests {
		t.Run(tt.role+"/"+tt.permission, func(t *testing.T) {
			if got := HasPermission(tt.role, tt.permission); got != tt.want {
				t.Errorf("HasPermission(%q, %q) = %v, want %v", tt.role, tt.permission, got, tt.want)
			}
		})
	}
}
