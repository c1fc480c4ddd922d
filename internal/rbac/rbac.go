package rbac

import "github.com/influencetie/backend/internal/models"

// Permission constants
const (
	PermCreateCampaign    = "create_campaign"
	PermManageCampaign    = "manage_campaign"
	PermApplyCampaign     = "apply_campaign"
	PermDecideApplication = "decide_application"
	PermViewApplications  = "view_applications"
	PermBrowseInfluencers = "browse_influencers"
	PermModerateUsers     = "moderate_users"
)

// RolePermissions defines what each role can do.
var RolePermissions = map[string][]string{
	models.RoleBrand: {
		PermCreateCampaign, PermManageCampaign, PermDecideApplication,
		PermViewApplications, PermBrowseInfluencers,
	},
	models.RoleInfluencer: {
		PermApplyCampaign,
		// Influencer CANNOT: PermCreateCampaign, PermDecideApplication
	},
	models.RoleAdmin: {
		PermManageCampaign, PermDecideApplication,
		PermViewApplications, PermBrowseInfluencers, PermModerateUsers,
		// Admin CANNOT: PermCreateCampaign (campaigns belong to brands)
	},
}

// HasPermission checks if a role has a specific permission.
func HasPermission(role, permission string) bool {
	perms, ok := RolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range perms {
		if p == permission {
			return true
		}
	}
	return false
}
