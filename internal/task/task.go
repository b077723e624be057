// Package task provides checklist task updates.
package task

import (
	"time"

	"github.com/kanthai/launchpad/internal/activity"
	"github.com/kanthai/launchpad/internal/models"
	"github.com/kanthai/launchpad/internal/store"
	"gorm.io/gorm"
)

// UpdateOpts holds the fields a task update may change. Empty strings and
// nil pointers leave the current value untouched; pointer fields allow
// clearing a value by pointing at "".
type UpdateOpts struct {
	Status        string
	Priority      string
	OwnerEmail    string
	StartDate     string
	DueDate       string
	Notes         *string
	BlockerReason *string
	Actor         string
}

// Update applies the given changes to a task and records the change in
// the activity log. Any status can be set from any other status.
func Update(db *gorm.DB, productTaskID string, opts UpdateOpts) (*models.ProductTask, error) {
	current, err := store.FindOne[models.ProductTask](db, "product_task_id", productTaskID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if opts.Status != "" {
		fields["status"] = opts.Status
	}
	if opts.Priority != "" {
		fields["priority"] = opts.Priority
	}
	if opts.OwnerEmail != "" {
		fields["owner_email"] = opts.OwnerEmail
	}
	if opts.StartDate != "" {
		fields["start_date"] = opts.StartDate
	}
	if opts.DueDate != "" {
		fields["due_date"] = opts.DueDate
	}
	if opts.Notes != nil {
		fields["notes"] = *opts.Notes
	}
	if opts.BlockerReason != nil {
		fields["blocker_reason"] = *opts.BlockerReason
	}
	fields["updated_at"] = time.Now()

	if err := store.Update[models.ProductTask](db, "product_task_id", productTaskID, fields); err != nil {
		return nil, err
	}
	updated, err := store.FindOne[models.ProductTask](db, "product_task_id", productTaskID)
	if err != nil {
		return nil, err
	}

	actor := opts.Actor
	if actor == "" {
		actor = "system"
	}
	action := activity.ActionUpdate
	if opts.Status != "" && opts.Status != current.Status {
		action = activity.ActionStatusChange
	}
	if err := activity.Record(db, activity.EntityTask, productTaskID, action, actor, current, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Get retrieves a task by id.
func Get(db *gorm.DB, productTaskID string) (*models.ProductTask, error) {
	return store.FindOne[models.ProductTask](db, "product_task_id", productTaskID)
}
