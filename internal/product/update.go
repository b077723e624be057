package product

import (
	"time"

	"github.com/kanthai/launchpad/internal/activity"
	"github.com/kanthai/launchpad/internal/models"
	"github.com/kanthai/launchpad/internal/schedule"
	"github.com/kanthai/launchpad/internal/store"
	"gorm.io/gorm"
)

// UpdateOpts holds the fields an update may change. Empty strings and
// nil pointers leave the current value untouched.
type UpdateOpts struct {
	SKUCode     string
	ProductName string
	Category    string
	SubCategory string
	LaunchMonth string
	GoLiveDate  string
	Cost        *float64
	Price       *float64
	Activate    *bool
	Actor       string
}

// Update applies the given changes to a product. When the go-live date
// moves on a product that is (or becomes) active, the whole checklist is
// shifted by the same number of days; the count of rescheduled tasks is
// returned.
func Update(db *gorm.DB, productID string, opts UpdateOpts) (*models.Product, int, error) {
	current, err := store.FindOne[models.Product](db, "product_id", productID)
	if err != nil {
		return nil, 0, err
	}

	fields := map[string]any{}
	if opts.SKUCode != "" {
		fields["sku_code"] = opts.SKUCode
	}
	if opts.ProductName != "" {
		fields["product_name"] = opts.ProductName
	}
	if opts.Category != "" {
		fields["category"] = opts.Category
	}
	if opts.SubCategory != "" {
		fields["sub_category"] = opts.SubCategory
	}
	if opts.LaunchMonth != "" {
		fields["launch_month"] = opts.LaunchMonth
	}

	dateChanged := false
	if opts.GoLiveDate != "" && opts.GoLiveDate != current.GoLiveDate {
		if _, err := schedule.ParseDate(opts.GoLiveDate); err != nil {
			return nil, 0, err
		}
		fields["go_live_date"] = opts.GoLiveDate
		dateChanged = true
	}

	cost, price := current.Cost, current.Price
	if opts.Cost != nil {
		cost = *opts.Cost
		fields["cost"] = cost
	}
	if opts.Price != nil {
		price = *opts.Price
		fields["price"] = price
	}
	if opts.Cost != nil || opts.Price != nil {
		fields["gp_pct"] = GrossProfitPct(cost, price)
	}

	activating := opts.Activate != nil && *opts.Activate
	if activating && current.Status == models.ProductDraft {
		fields["status"] = models.ProductActive
	}
	fields["updated_at"] = time.Now()

	if err := store.Update[models.Product](db, "product_id", productID, fields); err != nil {
		return nil, 0, err
	}

	live := activating || current.Status == models.ProductActive || current.Status == models.ProductLaunched
	shifted := 0
	if dateChanged && live {
		shifted, err = schedule.RecalculateScheduleForDateChange(db, productID, current.GoLiveDate, opts.GoLiveDate)
		if err != nil {
			return nil, 0, err
		}
	}

	updated, err := store.FindOne[models.Product](db, "product_id", productID)
	if err != nil {
		return nil, 0, err
	}
	actor := opts.Actor
	if actor == "" {
		actor = "system"
	}
	if err := activity.Record(db, activity.EntityProduct, productID, activity.ActionUpdate, actor, current, updated); err != nil {
		return nil, 0, err
	}
	return updated, shifted, nil
}

// UpdateStatus moves a product to the given lifecycle status.
func UpdateStatus(db *gorm.DB, productID, status, actor string) error {
	current, err := store.FindOne[models.Product](db, "product_id", productID)
	if err != nil {
		return err
	}
	err = store.Update[models.Product](db, "product_id", productID, map[string]any{
		"status":     status,
		"updated_at": time.Now(),
	})
	if err != nil {
		return err
	}
	if actor == "" {
		actor = "system"
	}
	return activity.Record(db, activity.EntityProduct, productID, activity.ActionStatusChange, actor,
		map[string]string{"status": current.Status},
		map[string]string{"status": status})
}

// Delete removes a product row. Its tasks are kept for audit history.
func Delete(db *gorm.DB, productID, actor string) error {
	current, err := store.FindOne[models.Product](db, "product_id", productID)
	if err != nil {
		return err
	}
	if err := store.Delete[models.Product](db, "product_id", productID); err != nil {
		return err
	}
	if actor == "" {
		actor = "system"
	}
	return activity.Record(db, activity.EntityProduct, productID, activity.ActionDelete, actor, current, nil)
}
