// Package activity writes audit rows for entity mutations.
package activity

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kanthai/launchpad/internal/models"
	"github.com/kanthai/launchpad/internal/store"
	"gorm.io/gorm"
)

// Entity types recorded in the log.
const (
	EntityProduct    = "product"
	EntityTask       = "product_task"
	EntityAttachment = "attachment"
)

// Actions recorded in the log.
const (
	ActionCreate       = "create"
	ActionUpdate       = "update"
	ActionDelete       = "delete"
	ActionStatusChange = "status_change"
	ActionReschedule   = "reschedule"
)

// Record appends one audit row. Before and after snapshots are serialized
// as JSON; pass nil to leave either side empty. Audit rows are advisory:
// a marshal failure is reported but the caller decides whether to care.
func Record(db *gorm.DB, entityType, entityID, action, actorEmail string, before, after any) error {
	beforeJSON, err := marshal(before)
	if err != nil {
		return fmt.Errorf("activity: marshal before for %s %s: %w", entityType, entityID, err)
	}
	afterJSON, err := marshal(after)
	if err != nil {
		return fmt.Errorf("activity: marshal after for %s %s: %w", entityType, entityID, err)
	}

	row := models.ActivityLog{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		BeforeJSON: beforeJSON,
		AfterJSON:  afterJSON,
		ActorEmail: actorEmail,
		Timestamp:  time.Now(),
	}
	return store.Create(db, &row)
}

// ForEntity returns the audit rows for one entity, newest first.
func ForEntity(db *gorm.DB, entityType, entityID string) ([]models.ActivityLog, error) {
	var rows []models.ActivityLog
	err := db.Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("timestamp DESC").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("activity: list %s %s: %w", entityType, entityID, err)
	}
	return rows, nil
}

func marshal(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
