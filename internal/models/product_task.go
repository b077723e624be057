package models

import "time"

// Task statuses. These are labels, not a state machine: any status can be
// set from any other status.
const (
	StatusNotStarted = "NotStarted"
	StatusInProgress = "InProgress"
	StatusBlocked    = "Blocked"
	StatusQA         = "QA"
	StatusReview     = "Review"
	StatusApproved   = "Approved"
	StatusDone       = "Done"
)

// DefaultPriority is assigned to every freshly generated task.
const DefaultPriority = "P1"

// ProductTask is one checklist item generated for a product. Template
// fields (code, name, phase, owner role) are snapshotted at generation
// time; later template edits do not touch existing tasks. StartDate and
// DueDate are calendar days stored as YYYY-MM-DD.
type ProductTask struct {
	ProductTaskID string `gorm:"column:product_task_id;primaryKey;size:16"`
	ProductID     string `gorm:"size:16;index;not null"`
	TaskCode      string `gorm:"size:16"`
	TaskName      string `gorm:"not null"`
	Phase         string `gorm:"size:64"`
	OwnerRole     string `gorm:"size:32"`
	OwnerEmail    string `gorm:"size:128"`
	StartDate     string `gorm:"size:10"`
	DueDate       string `gorm:"size:10"`
	Status        string `gorm:"size:16;default:NotStarted;index"`
	Priority      string `gorm:"size:16;default:P1"`
	BlockerReason string `gorm:"type:text"`
	Notes         string `gorm:"type:text"`
	InputType     string `gorm:"size:16;default:standard"`
	UpdatedAt     time.Time
}
