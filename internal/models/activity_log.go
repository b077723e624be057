package models

import "time"

// ActivityLog is an audit row capturing an entity mutation with before and
// after snapshots serialized as JSON.
type ActivityLog struct {
	LogID      uint   `gorm:"column:log_id;primaryKey;autoIncrement"`
	EntityType string `gorm:"size:32;index:idx_entity"`
	EntityID   string `gorm:"size:32;index:idx_entity"`
	Action     string `gorm:"size:32"`
	BeforeJSON string `gorm:"column:before_json;type:text"`
	AfterJSON  string `gorm:"column:after_json;type:text"`
	ActorEmail string `gorm:"size:128"`
	Timestamp  time.Time
}

func (ActivityLog) TableName() string { return "activity_log" }
