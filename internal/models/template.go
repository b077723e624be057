package models

// Input kinds a task's detail view asks the user for.
const (
	InputStandard = "standard"
	InputNote     = "note"
	InputFile     = "file"
)

// TaskTemplate names a reusable launch checklist.
type TaskTemplate struct {
	TemplateID   string `gorm:"column:template_id;primaryKey;size:32"`
	TemplateName string `gorm:"not null"`
	Active       bool   `gorm:"default:true"`
}

// TemplateTask is one task definition inside a template. Definitions have
// no row id of their own: identity is the composite (template_id,
// task_code). OffsetDays is a signed day count from the product's go-live
// date; DependsOn is advisory metadata and is never enforced.
type TemplateTask struct {
	TemplateID       string `gorm:"column:template_id;primaryKey;size:32"`
	TaskCode         string `gorm:"primaryKey;size:16"`
	TaskName         string `gorm:"not null"`
	Phase            string `gorm:"size:64"`
	DefaultOwnerRole string `gorm:"size:32"`
	OffsetDays       int
	DurationDays     int
	DependsOn        string `gorm:"size:16"`
	InputType        string `gorm:"size:16;default:standard"`
}
