package db

import (
	"fmt"

	"github.com/kanthai/launchpad/internal/catalog"
	"github.com/kanthai/launchpad/internal/config"
	"github.com/kanthai/launchpad/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AllModels returns the list of all GORM models for migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.Product{},
		&models.ProductTask{},
		&models.RoleAssignment{},
		&models.RoleDefault{},
		&models.TaskTemplate{},
		&models.TemplateTask{},
		&models.Attachment{},
		&models.ActivityLog{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}

// SeedTemplates upserts the built-in task templates and their definitions.
// Definitions are keyed by (template_id, task_code), so re-running a seed
// updates edited rows in place instead of duplicating them.
func SeedTemplates(db *gorm.DB) error {
	for _, tpl := range catalog.Templates() {
		tmpl := models.TaskTemplate{
			TemplateID:   tpl.TemplateID,
			TemplateName: tpl.TemplateName,
			Active:       true,
		}
		result := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "template_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"template_name", "active"}),
		}).Create(&tmpl)
		if result.Error != nil {
			return fmt.Errorf("db: seed template %q: %w", tpl.TemplateID, result.Error)
		}

		for _, def := range tpl.Tasks {
			result := db.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "template_id"}, {Name: "task_code"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"task_name", "phase", "default_owner_role",
					"offset_days", "duration_days", "depends_on", "input_type",
				}),
			}).Create(&def)
			if result.Error != nil {
				return fmt.Errorf("db: seed definition %s/%s: %w", def.TemplateID, def.TaskCode, result.Error)
			}
		}
	}
	return nil
}

// SeedRoleDefaults upserts fallback role owners from configuration.
func SeedRoleDefaults(db *gorm.DB, defaults []config.RoleDefaultConfig) error {
	for _, rd := range defaults {
		row := models.RoleDefault{
			Role:       rd.Role,
			OwnerEmail: rd.OwnerEmail,
			Note:       rd.Note,
		}
		result := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "role"}},
			DoUpdates: clause.AssignmentColumns([]string{"owner_email", "note"}),
		}).Create(&row)
		if result.Error != nil {
			return fmt.Errorf("db: seed role default %q: %w", rd.Role, result.Error)
		}
	}
	return nil
}
