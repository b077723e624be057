package schedule

import "github.com/kanthai/launchpad/internal/models"

// ShiftDates moves a start/due date pair by a signed number of days. The
// pair shifts together, so the span between them is preserved exactly.
func ShiftDates(startDate, dueDate string, deltaDays int) (string, string, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return "", "", err
	}
	due, err := ParseDate(dueDate)
	if err != nil {
		return "", "", err
	}
	return FormatDate(AddDays(start, deltaDays)), FormatDate(AddDays(due, deltaDays)), nil
}

// Shift returns a copy of tasks with every task's dates moved by
// deltaDays. Status is not consulted: Done and Approved tasks move like
// any other, so relative offsets between tasks are preserved. A task whose
// dates cannot be parsed is passed through unchanged rather than aborting
// the batch.
func Shift(tasks []models.ProductTask, deltaDays int) []models.ProductTask {
	out := make([]models.ProductTask, len(tasks))
	copy(out, tasks)
	if deltaDays == 0 {
		return out
	}
	for i := range out {
		start, due, err := ShiftDates(out[i].StartDate, out[i].DueDate, deltaDays)
		if err != nil {
			continue
		}
		out[i].StartDate = start
		out[i].DueDate = due
	}
	return out
}
