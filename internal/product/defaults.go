package product

import (
	"github.com/kanthai/launchpad/internal/models"
	"github.com/kanthai/launchpad/internal/store"
	"gorm.io/gorm"
)

// mergeWithDefaults overlays explicit per-product assignments on top of
// the team-wide role defaults. Explicit non-empty emails win.
func mergeWithDefaults(db *gorm.DB, explicit map[string]string) (map[string]string, error) {
	defaults, err := store.FindAll[models.RoleDefault](db)
	if err != nil {
		return nil, err
	}
	merged := make(map[string]string, len(defaults)+len(explicit))
	for _, rd := range defaults {
		if rd.OwnerEmail != "" {
			merged[rd.Role] = rd.OwnerEmail
		}
	}
	for role, email := range explicit {
		if email != "" {
			merged[role] = email
		}
	}
	return merged, nil
}
