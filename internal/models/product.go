package models

import "time"

// Product statuses. Draft products have no generated checklist yet;
// activation triggers task generation.
const (
	ProductDraft    = "Draft"
	ProductActive   = "Active"
	ProductHold     = "Hold"
	ProductLaunched = "Launched"
)

// Product is a product being taken to launch. GoLiveDate anchors all
// offset-based task scheduling and is stored as a plain YYYY-MM-DD date.
type Product struct {
	ProductID    string `gorm:"column:product_id;primaryKey;size:16"`
	SKUCode      string `gorm:"column:sku_code;size:64"`
	ProductName  string `gorm:"not null"`
	Category     string `gorm:"size:64"`
	SubCategory  string `gorm:"size:64"`
	LaunchMonth  string `gorm:"size:16"`
	GoLiveDate   string `gorm:"size:10"`
	SalesChannel string `gorm:"size:255"`
	Cost         float64
	Price        float64
	GPPct        float64 `gorm:"column:gp_pct"`
	Status       string  `gorm:"size:16;default:Draft;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CreatedBy    string `gorm:"size:64"`
}
