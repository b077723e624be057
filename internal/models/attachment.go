package models

import "time"

// Attachment records a file linked to a product or one of its tasks. Only
// the metadata row lives here; the file itself is uploaded to a drive by
// an external collaborator and referenced by URL.
type Attachment struct {
	AttachmentID  string `gorm:"column:attachment_id;primaryKey;size:16"`
	ProductID     string `gorm:"size:16;index"`
	ProductTaskID string `gorm:"size:16;index"`
	Type          string `gorm:"size:32"`
	DriveURL      string `gorm:"size:512"`
	CreatedAt     time.Time
	CreatedBy     string `gorm:"size:128"`
}
