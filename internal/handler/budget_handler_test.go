package handler

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/financeflow/api/internal/apperr"
	"github.com/financeflow/api/internal/middleware"
	"github.com/financeflow/api/internal/models"
	"github.com/financeflow/api/internal/service"
	"github.com/financeflow/api/internal/token"
)

// ---- mock implementation ----

type mockBudgetService struct {
	listFn   func(token.Identity) ([]models.Budget, error)
	createFn func(token.Identity, models.Budget) (*models.Budget, error)
	getFn    func(token.Identity, string) (*models.Budget, error)
	updateFn func(token.Identity, string, service.BudgetUpdate) (*models.Budget, error)
	deleteFn func(token.Identity, string) error
}

func (m *mockBudgetService) List(id token.Identity) ([]models.Budget, error) {
	if m.listFn != nil {
		return m.listFn(id)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockBudgetService) Create(id token.Identity, b models.Budget) (*models.Budget, error) {
	if m.createFn != nil {
		return m.createFn(id, b)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockBudgetService) Get(id token.Identity, budgetID string) (*models.Budget, error) {
	if m.getFn != nil {
		return m.getFn(id, budgetID)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockBudgetService) Update(id token.Identity, budgetID string, update service.BudgetUpdate) (*models.Budget, error) {
	if m.updateFn != nil {
		return m.updateFn(id, budgetID, update)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockBudgetService) Delete(id token.Identity, budgetID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(id, budgetID)
	}
	return fmt.Errorf("not configured")
}

// ---- helpers ----

func newBudgetTestRouter(budgets BudgetServicer, identity *token.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if identity != nil {
		r.Use(func(c *gin.Context) {
			middleware.SetIdentity(c, *identity)
			c.Next()
		})
	}
	h := NewBudgetHandler(budgets)
	api := r.Group("/api/budgets")
	api.GET("", h.List)
	api.POST("", h.Create)
	api.GET("/:id", h.Get)
	api.PUT("/:id", h.Update)
	api.DELETE("/:id", h.Delete)
	return r
}

func testIdentity() *token.Identity {
	return &token.Identity{UserID: "usr-abc", Email: "alice@example.com"}
}

func validBudgetBody() map[string]interface{} {
	return map[string]interface{}{
		"name":          "Monthly Budget",
		"target_amount": 3000,
		"end_date":      "2026-09-30",
		"period":        "monthly",
	}
}

// ---- tests ----

func TestBudgetCreate(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		createFn       func(token.Identity, models.Budget) (*models.Budget, error)
		expectedStatus int
	}{
		{
			name: "success",
			body: validBudgetBody(),
			createFn: func(id token.Identity, b models.Budget) (*models.Budget, error) {
				b.ID = "bud-abc"
				b.UserID = id.UserID
				return &b, nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "bad request - missing name",
			body: map[string]interface{}{
				"target_amount": 3000,
				"end_date":      "2026-09-30",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "bad request - missing end date",
			body: map[string]interface{}{
				"name":          "Monthly Budget",
				"target_amount": 3000,
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "bad request - unknown period",
			body: map[string]interface{}{
				"name":     "Monthly Budget",
				"end_date": "2026-09-30",
				"period":   "yearly",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "bad request - unparseable end date",
			body: map[string]interface{}{
				"name":     "Monthly Budget",
				"end_date": "next month",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "bad request - negative planned item amount",
			body: map[string]interface{}{
				"name":     "Monthly Budget",
				"end_date": "2026-09-30",
				"items": []map[string]interface{}{
					{"category": "Rent", "planned": -100, "actual": 0},
				},
			},
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newBudgetTestRouter(&mockBudgetService{createFn: tt.createFn}, testIdentity())
			w := doRequest(router, http.MethodPost, "/api/budgets", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected %d got %d; body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestBudgetUpdateItemsPlumbing(t *testing.T) {
	var captured service.BudgetUpdate
	mock := &mockBudgetService{
		updateFn: func(id token.Identity, budgetID string, update service.BudgetUpdate) (*models.Budget, error) {
			captured = update
			return &models.Budget{ID: budgetID, UserID: id.UserID, Name: update.Name}, nil
		},
	}
	router := newBudgetTestRouter(mock, testIdentity())

	// Without an items field the service must not be asked to replace items.
	body := validBudgetBody()
	w := doRequest(router, http.MethodPut, "/api/budgets/bud-abc", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d; body: %s", w.Code, w.Body.String())
	}
	if captured.Items != nil {
		t.Errorf("expected nil items for payload without items, got %+v", *captured.Items)
	}

	// An explicit empty list clears the items.
	body["items"] = []map[string]interface{}{}
	w = doRequest(router, http.MethodPut, "/api/budgets/bud-abc", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d; body: %s", w.Code, w.Body.String())
	}
	if captured.Items == nil || len(*captured.Items) != 0 {
		t.Errorf("expected empty items slice, got %+v", captured.Items)
	}

	// A populated list is passed through field by field.
	body["items"] = []map[string]interface{}{
		{"category": "Rent", "planned": 1200, "actual": 1150, "color": "#ff0000"},
		{"category": "Food", "planned": 400, "actual": 0},
	}
	w = doRequest(router, http.MethodPut, "/api/budgets/bud-abc", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d; body: %s", w.Code, w.Body.String())
	}
	if captured.Items == nil || len(*captured.Items) != 2 {
		t.Fatalf("expected two items, got %+v", captured.Items)
	}
	items := *captured.Items
	if items[0].Category != "Rent" || items[0].Planned != 1200 || items[0].Actual != 1150 {
		t.Errorf("unexpected first item: %+v", items[0])
	}
	if items[0].Color == nil || *items[0].Color != "#ff0000" {
		t.Errorf("expected color passed through, got %v", items[0].Color)
	}
	if items[1].Color != nil {
		t.Errorf("expected nil color for second item, got %v", items[1].Color)
	}
}

func TestBudgetGet(t *testing.T) {
	tests := []struct {
		name           string
		getFn          func(token.Identity, string) (*models.Budget, error)
		expectedStatus int
	}{
		{
			name: "success",
			getFn: func(id token.Identity, budgetID string) (*models.Budget, error) {
				return &models.Budget{
					ID:     budgetID,
					UserID: id.UserID,
					Name:   "Monthly Budget",
					EndDate: time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC),
				}, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "not found - missing or foreign budget",
			getFn: func(token.Identity, string) (*models.Budget, error) {
				return nil, apperr.ErrNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newBudgetTestRouter(&mockBudgetService{getFn: tt.getFn}, testIdentity())
			w := doRequest(router, http.MethodGet, "/api/budgets/bud-abc", nil)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected %d got %d; body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestBudgetDelete(t *testing.T) {
	router := newBudgetTestRouter(&mockBudgetService{
		deleteFn: func(token.Identity, string) error { return nil },
	}, testIdentity())
	w := doRequest(router, http.MethodDelete, "/api/budgets/bud-abc", nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204 got %d; body: %s", w.Code, w.Body.String())
	}

	router = newBudgetTestRouter(&mockBudgetService{
		deleteFn: func(token.Identity, string) error { return apperr.ErrNotFound },
	}, testIdentity())
	w = doRequest(router, http.MethodDelete, "/api/budgets/bud-abc", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 got %d; body: %s", w.Code, w.Body.String())
	}
}

func TestBudgetMissingIdentity(t *testing.T) {
	router := newBudgetTestRouter(&mockBudgetService{}, nil)
	w := doRequest(router, http.MethodGet, "/api/budgets", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 got %d; body: %s", w.Code, w.Body.String())
	}
}
