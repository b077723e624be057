package dashboard

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kanthai/launchpad/internal/activity"
	"github.com/kanthai/launchpad/internal/metrics"
	"github.com/kanthai/launchpad/internal/models"
	"github.com/kanthai/launchpad/internal/product"
	"github.com/kanthai/launchpad/internal/schedule"
	"github.com/kanthai/launchpad/internal/store"
	"github.com/kanthai/launchpad/internal/task"
	"gorm.io/gorm"
)

// registerRoutes sets up the API routes on the Gin router.
func registerRoutes(router *gin.Engine, db *gorm.DB) {
	api := router.Group("/api")

	api.GET("/products", handleProductList(db))
	api.POST("/products", handleProductCreate(db))
	api.GET("/products/:id", handleProductDetail(db))
	api.PATCH("/products/:id", handleProductUpdate(db))
	api.DELETE("/products/:id", handleProductDelete(db))
	api.PATCH("/products/:id/status", handleProductStatus(db))
	api.POST("/products/:id/attachments", handleAttachmentCreate(db))
	api.GET("/products/:id/metrics", handleProductMetrics(db))
	api.GET("/products/:id/activity", handleProductActivity(db))

	api.PATCH("/tasks/:id", handleTaskUpdate(db))

	api.GET("/portfolio", handlePortfolio(db))
	api.GET("/events", handleSSE(db))
}

// writeError maps domain errors onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, schedule.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func handleProductList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := product.List(db, product.ListFilters{
			Status:      c.Query("status"),
			Category:    c.Query("category"),
			LaunchMonth: c.Query("launch_month"),
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

type createProductRequest struct {
	SKUCode       string            `json:"sku_code"`
	ProductName   string            `json:"product_name"`
	Category      string            `json:"category"`
	SubCategory   string            `json:"sub_category"`
	LaunchMonth   string            `json:"launch_month"`
	GoLiveDate    string            `json:"go_live_date"`
	SalesChannels []string          `json:"sales_channels"`
	Cost          float64           `json:"cost"`
	Price         float64           `json:"price"`
	Activate      bool              `json:"activate"`
	TemplateID    string            `json:"template_id"`
	Assignments   map[string]string `json:"assignments"`
	Actor         string            `json:"actor"`
}

func handleProductCreate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		p, tasks, err := product.Create(db, product.CreateOpts{
			SKUCode:       req.SKUCode,
			ProductName:   req.ProductName,
			Category:      req.Category,
			SubCategory:   req.SubCategory,
			LaunchMonth:   req.LaunchMonth,
			GoLiveDate:    req.GoLiveDate,
			SalesChannels: req.SalesChannels,
			Cost:          req.Cost,
			Price:         req.Price,
			Activate:      req.Activate,
			TemplateID:    req.TemplateID,
			Assignments:   req.Assignments,
			Actor:         req.Actor,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"product": p, "tasks": tasks})
	}
}

func handleProductDetail(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		p, err := product.Get(db, id)
		if err != nil {
			writeError(c, err)
			return
		}
		tasks, err := product.Tasks(db, id)
		if err != nil {
			writeError(c, err)
			return
		}
		assignments, err := product.Assignments(db, id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"product":     p,
			"tasks":       tasks,
			"assignments": assignments,
		})
	}
}

type updateProductRequest struct {
	SKUCode     string   `json:"sku_code"`
	ProductName string   `json:"product_name"`
	Category    string   `json:"category"`
	SubCategory string   `json:"sub_category"`
	LaunchMonth string   `json:"launch_month"`
	GoLiveDate  string   `json:"go_live_date"`
	Cost        *float64 `json:"cost"`
	Price       *float64 `json:"price"`
	Activate    *bool    `json:"activate"`
	Actor       string   `json:"actor"`
}

func handleProductUpdate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		p, shifted, err := product.Update(db, c.Param("id"), product.UpdateOpts{
			SKUCode:     req.SKUCode,
			ProductName: req.ProductName,
			Category:    req.Category,
			SubCategory: req.SubCategory,
			LaunchMonth: req.LaunchMonth,
			GoLiveDate:  req.GoLiveDate,
			Cost:        req.Cost,
			Price:       req.Price,
			Activate:    req.Activate,
			Actor:       req.Actor,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": p, "shifted_tasks": shifted})
	}
}

func handleProductDelete(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := product.Delete(db, c.Param("id"), c.Query("actor")); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
	}
}

func handleProductStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Status string `json:"status"`
			Actor  string `json:"actor"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
			return
		}
		if err := product.UpdateStatus(db, c.Param("id"), req.Status, req.Actor); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": req.Status})
	}
}

func handleAttachmentCreate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			ProductTaskID string `json:"product_task_id"`
			Type          string `json:"type"`
			DriveURL      string `json:"drive_url"`
			Actor         string `json:"actor"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		att, err := product.AddAttachment(db, product.AttachOpts{
			ProductID:     c.Param("id"),
			ProductTaskID: req.ProductTaskID,
			Type:          req.Type,
			DriveURL:      req.DriveURL,
			Actor:         req.Actor,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"attachment": att})
	}
}

func handleProductMetrics(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		p, err := product.Get(db, id)
		if err != nil {
			writeError(c, err)
			return
		}
		tasks, err := product.Tasks(db, id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, metrics.ComputeProductMetrics(*p, tasks, time.Now()))
	}
}

func handleProductActivity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		logs, err := activity.ForEntity(db, activity.EntityProduct, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"activity": logs})
	}
}

type updateTaskRequest struct {
	Status        string  `json:"status"`
	Priority      string  `json:"priority"`
	OwnerEmail    string  `json:"owner_email"`
	StartDate     string  `json:"start_date"`
	DueDate       string  `json:"due_date"`
	Notes         *string `json:"notes"`
	BlockerReason *string `json:"blocker_reason"`
	Actor         string  `json:"actor"`
}

func handleTaskUpdate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateTaskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		pt, err := task.Update(db, c.Param("id"), task.UpdateOpts{
			Status:        req.Status,
			Priority:      req.Priority,
			OwnerEmail:    req.OwnerEmail,
			StartDate:     req.StartDate,
			DueDate:       req.DueDate,
			Notes:         req.Notes,
			BlockerReason: req.BlockerReason,
			Actor:         req.Actor,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"task": pt})
	}
}

func handlePortfolio(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := store.FindAll[models.Product](db)
		if err != nil {
			writeError(c, err)
			return
		}
		tasks, err := store.FindAll[models.ProductTask](db)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, metrics.ComputePortfolioMetrics(products, tasks, time.Now()))
	}
}
