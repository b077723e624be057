package schedule

import (
	"fmt"
	"log"
	"time"

	"github.com/kanthai/launchpad/internal/catalog"
	"github.com/kanthai/launchpad/internal/models"
	"github.com/kanthai/launchpad/internal/store"
	"gorm.io/gorm"
)

// GenerateTasksForProduct expands the named template into dated tasks for
// a product and persists them. The template's definitions are read from
// the store, so out-of-band template edits take effect on the next
// generation without touching existing tasks. Returns
// catalog.ErrTemplateNotFound when the template has no definitions.
func GenerateTasksForProduct(db *gorm.DB, productID, templateID, goLiveDate string, assignments map[string]string) ([]models.ProductTask, error) {
	goLive, err := ParseDate(goLiveDate)
	if err != nil {
		return nil, err
	}

	defs, err := store.FindWhere[models.TemplateTask](db, "template_id", templateID)
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("schedule: %q: %w", templateID, catalog.ErrTemplateNotFound)
	}

	tasks := Generate(defs, productID, goLive, assignments)
	if err := store.CreateMany(db, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// RecalculateScheduleForDateChange shifts every task of a product by the
// whole-day delta between the old and new go-live dates, and returns the
// number of tasks updated. A zero delta issues no writes. Each task is
// persisted independently; a task with unparseable dates is skipped so one
// corrupt row cannot block the rest of the product's schedule.
func RecalculateScheduleForDateChange(db *gorm.DB, productID, oldGoLiveDate, newGoLiveDate string) (int, error) {
	delta, err := DeltaDays(oldGoLiveDate, newGoLiveDate)
	if err != nil {
		return 0, err
	}
	if delta == 0 {
		return 0, nil
	}

	tasks, err := store.FindWhere[models.ProductTask](db, "product_id", productID)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	updated := 0
	for _, task := range tasks {
		start, due, err := ShiftDates(task.StartDate, task.DueDate, delta)
		if err != nil {
			log.Printf("schedule: skip %s: unparseable dates (%q, %q)", task.ProductTaskID, task.StartDate, task.DueDate)
			continue
		}
		err = store.Update[models.ProductTask](db, "product_task_id", task.ProductTaskID, map[string]any{
			"start_date": start,
			"due_date":   due,
			"updated_at": now,
		})
		if err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}
