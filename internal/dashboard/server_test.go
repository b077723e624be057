package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kanthai/launchpad/internal/db"
	"github.com/kanthai/launchpad/internal/models"
	"github.com/kanthai/launchpad/internal/product"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openSeededDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	if err := db.SeedTemplates(gdb); err != nil {
		t.Fatalf("seed templates: %v", err)
	}
	return gdb
}

func testRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	gdb := openSeededDB(t)
	return newRouter(gdb), gdb
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, w.Body.String())
	}
}

func TestStart_NilDB(t *testing.T) {
	err := Start(context.Background(), StartOpts{DB: nil})
	if err == nil {
		t.Fatal("expected error for nil db")
	}
	if !strings.Contains(err.Error(), "db is required") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "db is required")
	}
}

func TestCreateAndGetProduct(t *testing.T) {
	router, _ := testRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/products", map[string]any{
		"product_name": "Ceramic Mug",
		"category":     "Homeware",
		"go_live_date": "2024-06-15",
		"cost":         40,
		"price":        100,
		"activate":     true,
		"assignments":  map[string]string{models.RoleOps: "ops@example.com"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /api/products = %d, body %s", w.Code, w.Body.String())
	}

	var created struct {
		Product models.Product       `json:"product"`
		Tasks   []models.ProductTask `json:"tasks"`
	}
	decodeBody(t, w, &created)
	if created.Product.Status != models.ProductActive {
		t.Errorf("status = %q, want Active", created.Product.Status)
	}
	if len(created.Tasks) == 0 {
		t.Error("activated product returned no tasks")
	}

	w = doJSON(t, router, http.MethodGet, "/api/products/"+created.Product.ProductID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET product = %d", w.Code)
	}
	var detail struct {
		Product     models.Product       `json:"product"`
		Tasks       []models.ProductTask `json:"tasks"`
		Assignments map[string]string    `json:"assignments"`
	}
	decodeBody(t, w, &detail)
	if len(detail.Tasks) != len(created.Tasks) {
		t.Errorf("detail tasks = %d, want %d", len(detail.Tasks), len(created.Tasks))
	}
	if detail.Assignments[models.RoleOps] != "ops@example.com" {
		t.Errorf("assignments = %v", detail.Assignments)
	}
}

func TestCreateProduct_BadDate(t *testing.T) {
	router, _ := testRouter(t)
	w := doJSON(t, router, http.MethodPost, "/api/products", map[string]any{
		"product_name": "Mug",
		"go_live_date": "15/06/2024",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad date status = %d, want 400", w.Code)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	router, _ := testRouter(t)
	w := doJSON(t, router, http.MethodGet, "/api/products/PRD-MISSING", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestPatchProduct_ShiftsSchedule(t *testing.T) {
	router, gdb := testRouter(t)
	p, tasks, err := product.Create(gdb, product.CreateOpts{
		ProductName: "Mug", GoLiveDate: "2024-06-15", Activate: true,
	})
	if err != nil {
		t.Fatal(err)
	}

	w := doJSON(t, router, http.MethodPatch, "/api/products/"+p.ProductID, map[string]any{
		"go_live_date": "2024-06-20",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("PATCH = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Product      models.Product `json:"product"`
		ShiftedTasks int            `json:"shifted_tasks"`
	}
	decodeBody(t, w, &resp)
	if resp.ShiftedTasks != len(tasks) {
		t.Errorf("shifted_tasks = %d, want %d", resp.ShiftedTasks, len(tasks))
	}
	if resp.Product.GoLiveDate != "2024-06-20" {
		t.Errorf("go_live_date = %q", resp.Product.GoLiveDate)
	}
}

func TestProductStatusAndDelete(t *testing.T) {
	router, gdb := testRouter(t)
	p, _, err := product.Create(gdb, product.CreateOpts{
		ProductName: "Mug", GoLiveDate: "2024-06-15",
	})
	if err != nil {
		t.Fatal(err)
	}

	w := doJSON(t, router, http.MethodPatch, "/api/products/"+p.ProductID+"/status", map[string]any{
		"status": models.ProductHold,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status patch = %d", w.Code)
	}

	w = doJSON(t, router, http.MethodDelete, "/api/products/"+p.ProductID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete = %d", w.Code)
	}
	w = doJSON(t, router, http.MethodGet, "/api/products/"+p.ProductID, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete = %d, want 404", w.Code)
	}
}

func TestPatchTask(t *testing.T) {
	router, gdb := testRouter(t)
	_, tasks, err := product.Create(gdb, product.CreateOpts{
		ProductName: "Mug", GoLiveDate: "2024-06-15", Activate: true,
	})
	if err != nil {
		t.Fatal(err)
	}

	w := doJSON(t, router, http.MethodPatch, "/api/tasks/"+tasks[0].ProductTaskID, map[string]any{
		"status":         models.StatusBlocked,
		"blocker_reason": "supplier delay",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("PATCH task = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Task models.ProductTask `json:"task"`
	}
	decodeBody(t, w, &resp)
	if resp.Task.Status != models.StatusBlocked || resp.Task.BlockerReason != "supplier delay" {
		t.Errorf("task = %+v", resp.Task)
	}

	w = doJSON(t, router, http.MethodPatch, "/api/tasks/PT-missing", map[string]any{"status": "Done"})
	if w.Code != http.StatusNotFound {
		t.Errorf("missing task = %d, want 404", w.Code)
	}
}

func TestProductMetricsEndpoint(t *testing.T) {
	router, gdb := testRouter(t)
	p, _, err := product.Create(gdb, product.CreateOpts{
		ProductName: "Mug", GoLiveDate: "2024-06-15", Activate: true,
	})
	if err != nil {
		t.Fatal(err)
	}

	w := doJSON(t, router, http.MethodGet, "/api/products/"+p.ProductID+"/metrics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("metrics = %d", w.Code)
	}
	var m map[string]any
	decodeBody(t, w, &m)
	for _, key := range []string{"weighted_completion", "risk_score", "risk_band", "readiness"} {
		if _, ok := m[key]; !ok {
			t.Errorf("metrics missing %q: %v", key, m)
		}
	}
}

func TestPortfolioEndpoint(t *testing.T) {
	router, gdb := testRouter(t)
	for i := 0; i < 2; i++ {
		_, _, err := product.Create(gdb, product.CreateOpts{
			ProductName: fmt.Sprintf("Product %d", i),
			GoLiveDate:  "2024-06-15",
			Activate:    true,
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	w := doJSON(t, router, http.MethodGet, "/api/portfolio", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("portfolio = %d", w.Code)
	}
	var m struct {
		ActiveProducts int `json:"active_products"`
	}
	decodeBody(t, w, &m)
	if m.ActiveProducts != 2 {
		t.Errorf("active_products = %d, want 2", m.ActiveProducts)
	}
}

func TestProductActivityEndpoint(t *testing.T) {
	router, gdb := testRouter(t)
	p, _, err := product.Create(gdb, product.CreateOpts{
		ProductName: "Mug", GoLiveDate: "2024-06-15",
	})
	if err != nil {
		t.Fatal(err)
	}

	w := doJSON(t, router, http.MethodGet, "/api/products/"+p.ProductID+"/activity", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("activity = %d", w.Code)
	}
	var resp struct {
		Activity []models.ActivityLog `json:"activity"`
	}
	decodeBody(t, w, &resp)
	if len(resp.Activity) != 1 {
		t.Errorf("activity entries = %d, want 1", len(resp.Activity))
	}
}

func TestCORSHeaders(t *testing.T) {
	router, _ := testRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("missing Access-Control-Allow-Origin header")
	}
}

func TestUnknownRoute_Returns404(t *testing.T) {
	router, _ := testRouter(t)
	w := doJSON(t, router, http.MethodGet, "/nonexistent", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
