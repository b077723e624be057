package schedule

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kanthai/launchpad/internal/models"
)

// NewTaskID creates a unique product-task id in PT-xxxxxxxx format.
func NewTaskID() string {
	return "PT-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Generate expands template definitions into concrete tasks for one
// product. Each definition's start is the go-live date plus its signed
// offset; its due date is start plus duration. Owner emails resolve
// through the assignments map, defaulting to empty when the role has no
// assignment. The result has exactly one task per definition and does not
// depend on definition order.
func Generate(defs []models.TemplateTask, productID string, goLive time.Time, assignments map[string]string) []models.ProductTask {
	now := time.Now()
	tasks := make([]models.ProductTask, 0, len(defs))
	for _, def := range defs {
		start := AddDays(goLive, def.OffsetDays)
		due := AddDays(start, def.DurationDays)

		tasks = append(tasks, models.ProductTask{
			ProductTaskID: NewTaskID(),
			ProductID:     productID,
			TaskCode:      def.TaskCode,
			TaskName:      def.TaskName,
			Phase:         def.Phase,
			OwnerRole:     def.DefaultOwnerRole,
			OwnerEmail:    assignments[def.DefaultOwnerRole],
			StartDate:     FormatDate(start),
			DueDate:       FormatDate(due),
			Status:        models.StatusNotStarted,
			Priority:      models.DefaultPriority,
			InputType:     def.InputType,
			UpdatedAt:     now,
		})
	}
	return tasks
}
