// Package product provides product lifecycle operations.
package product

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/kanthai/launchpad/internal/activity"
	"github.com/kanthai/launchpad/internal/catalog"
	"github.com/kanthai/launchpad/internal/models"
	"github.com/kanthai/launchpad/internal/schedule"
	"github.com/kanthai/launchpad/internal/store"
	"gorm.io/gorm"
)

// CreateOpts holds parameters for creating a new product.
type CreateOpts struct {
	SKUCode       string
	ProductName   string
	Category      string
	SubCategory   string
	LaunchMonth   string
	GoLiveDate    string // YYYY-MM-DD
	SalesChannels []string
	Cost          float64
	Price         float64
	Activate      bool              // Active products get a generated checklist
	TemplateID    string            // defaults to the general launch template
	Assignments   map[string]string // role → owner email
	Actor         string
}

// ListFilters holds optional filters for listing products.
type ListFilters struct {
	Status      string
	Category    string
	LaunchMonth string
}

// NewProductID creates a unique product id in PRD-XXXXXXXX format.
func NewProductID() string {
	return "PRD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// GrossProfitPct computes the gross-profit percentage, or 0 when the
// price is not positive.
func GrossProfitPct(cost, price float64) float64 {
	if price <= 0 {
		return 0
	}
	return (price - cost) / price * 100
}

// Create creates a product, stores its role assignments, and, when the
// product is activated, generates its launch checklist from the template.
// Explicit assignments win over team-wide role defaults.
func Create(db *gorm.DB, opts CreateOpts) (*models.Product, []models.ProductTask, error) {
	if opts.ProductName == "" {
		return nil, nil, fmt.Errorf("product: product name is required")
	}
	if _, err := schedule.ParseDate(opts.GoLiveDate); err != nil {
		return nil, nil, err
	}
	if opts.TemplateID == "" {
		opts.TemplateID = catalog.GeneralTemplateID
	}

	status := models.ProductDraft
	if opts.Activate {
		status = models.ProductActive
	}
	actor := opts.Actor
	if actor == "" {
		actor = "system"
	}

	p := models.Product{
		ProductID:    NewProductID(),
		SKUCode:      opts.SKUCode,
		ProductName:  opts.ProductName,
		Category:     opts.Category,
		SubCategory:  opts.SubCategory,
		LaunchMonth:  opts.LaunchMonth,
		GoLiveDate:   opts.GoLiveDate,
		SalesChannel: strings.Join(opts.SalesChannels, ", "),
		Cost:         opts.Cost,
		Price:        opts.Price,
		GPPct:        GrossProfitPct(opts.Cost, opts.Price),
		Status:       status,
		CreatedBy:    actor,
	}
	if err := store.Create(db, &p); err != nil {
		return nil, nil, err
	}

	var assignments []models.RoleAssignment
	for role, email := range opts.Assignments {
		if email == "" {
			continue
		}
		assignments = append(assignments, models.RoleAssignment{
			ProductID:  p.ProductID,
			Role:       role,
			OwnerEmail: email,
		})
	}
	if err := store.CreateMany(db, assignments); err != nil {
		return nil, nil, err
	}

	var tasks []models.ProductTask
	if opts.Activate {
		merged, err := mergeWithDefaults(db, opts.Assignments)
		if err != nil {
			return nil, nil, err
		}
		tasks, err = schedule.GenerateTasksForProduct(db, p.ProductID, opts.TemplateID, opts.GoLiveDate, merged)
		if err != nil {
			return nil, nil, err
		}
	}

	if err := activity.Record(db, activity.EntityProduct, p.ProductID, activity.ActionCreate, actor, nil, p); err != nil {
		return nil, nil, err
	}
	return &p, tasks, nil
}

// Get retrieves a product by id.
func Get(db *gorm.DB, productID string) (*models.Product, error) {
	return store.FindOne[models.Product](db, "product_id", productID)
}

// Tasks returns a product's checklist.
func Tasks(db *gorm.DB, productID string) ([]models.ProductTask, error) {
	return store.FindWhere[models.ProductTask](db, "product_id", productID)
}

// List returns products matching the given filters, newest first.
func List(db *gorm.DB, filters ListFilters) ([]models.Product, error) {
	q := db.Model(&models.Product{})
	if filters.Status != "" {
		q = q.Where("status = ?", filters.Status)
	}
	if filters.Category != "" {
		q = q.Where("category = ?", filters.Category)
	}
	if filters.LaunchMonth != "" {
		q = q.Where("launch_month = ?", filters.LaunchMonth)
	}

	var products []models.Product
	if err := q.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("product: list: %w", err)
	}
	return products, nil
}

// Assignments returns a product's role→owner map.
func Assignments(db *gorm.DB, productID string) (map[string]string, error) {
	rows, err := store.FindWhere[models.RoleAssignment](db, "product_id", productID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, ra := range rows {
		out[ra.Role] = ra.OwnerEmail
	}
	return out, nil
}
