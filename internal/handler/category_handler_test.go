package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/financeflow/api/internal/apperr"
	"github.com/financeflow/api/internal/middleware"
	"github.com/financeflow/api/internal/models"
	"github.com/financeflow/api/internal/token"
)

// ---- mock implementation ----

type mockCategoryService struct {
	listFn   func(token.Identity) ([]models.Category, error)
	createFn func(token.Identity, models.Category) (*models.Category, error)
	getFn    func(token.Identity, string) (*models.Category, error)
	updateFn func(token.Identity, string, models.Category) (*models.Category, error)
	deleteFn func(token.Identity, string) error
}

func (m *mockCategoryService) List(id token.Identity) ([]models.Category, error) {
	if m.listFn != nil {
		return m.listFn(id)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockCategoryService) Create(id token.Identity, c models.Category) (*models.Category, error) {
	if m.createFn != nil {
		return m.createFn(id, c)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockCategoryService) Get(id token.Identity, categoryID string) (*models.Category, error) {
	if m.getFn != nil {
		return m.getFn(id, categoryID)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockCategoryService) Update(id token.Identity, categoryID string, c models.Category) (*models.Category, error) {
	if m.updateFn != nil {
		return m.updateFn(id, categoryID, c)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockCategoryService) Delete(id token.Identity, categoryID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(id, categoryID)
	}
	return fmt.Errorf("not configured")
}

// ---- helper ----

func newCategoryTestRouter(categories CategoryServicer, identity *token.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if identity != nil {
		r.Use(func(c *gin.Context) {
			middleware.SetIdentity(c, *identity)
			c.Next()
		})
	}
	h := NewCategoryHandler(categories)
	api := r.Group("/api/categories")
	api.GET("", h.List)
	api.POST("", h.Create)
	api.GET("/:id", h.Get)
	api.PUT("/:id", h.Update)
	api.DELETE("/:id", h.Delete)
	return r
}

// ---- tests ----

func TestCategoryCreate(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		createFn       func(token.Identity, models.Category) (*models.Category, error)
		expectedStatus int
	}{
		{
			name: "success - income category",
			body: map[string]string{"name": "Salary", "cat_type": "IN"},
			createFn: func(id token.Identity, c models.Category) (*models.Category, error) {
				c.ID = "cat-abc"
				c.UserID = id.UserID
				return &c, nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "bad request - unknown cat_type",
			body:           map[string]string{"name": "Salary", "cat_type": "XX"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - missing name",
			body:           map[string]string{"cat_type": "EX"},
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newCategoryTestRouter(&mockCategoryService{createFn: tt.createFn}, testIdentity())
			w := doRequest(router, http.MethodPost, "/api/categories", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected %d got %d; body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

// A record owned by another user and a record that does not exist look the
// same to the caller.
func TestCategoryOwnerScoping(t *testing.T) {
	router := newCategoryTestRouter(&mockCategoryService{
		getFn: func(id token.Identity, categoryID string) (*models.Category, error) {
			if id.UserID != "usr-owner" {
				return nil, apperr.ErrNotFound
			}
			return &models.Category{ID: categoryID, UserID: id.UserID, Name: "Rent", CatType: "EX"}, nil
		},
	}, testIdentity())

	w := doRequest(router, http.MethodGet, "/api/categories/cat-abc", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign category, got %d; body: %s", w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp["message"] != "Not found" {
		t.Errorf("expected generic not-found message, got %v", resp["message"])
	}
}

func TestCategoryList(t *testing.T) {
	router := newCategoryTestRouter(&mockCategoryService{
		listFn: func(id token.Identity) ([]models.Category, error) {
			return []models.Category{
				{ID: "cat-1", UserID: id.UserID, Name: "Salary", CatType: "IN"},
				{ID: "cat-2", UserID: id.UserID, Name: "Rent", CatType: "EX"},
			}, nil
		},
	}, testIdentity())

	w := doRequest(router, http.MethodGet, "/api/categories", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d; body: %s", w.Code, w.Body.String())
	}

	var categories []models.Category
	if err := json.Unmarshal(w.Body.Bytes(), &categories); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected two categories, got %d", len(categories))
	}
	if categories[0].CatType != models.CategoryIncome {
		t.Errorf("unexpected first category: %+v", categories[0])
	}
}

// An unexpected storage failure must reach the server-side log with full
// detail while the caller only ever sees the opaque 500 body.
func TestCategoryInternalErrorLoggedNotLeaked(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)

	r := gin.New()
	r.Use(middleware.Logging(log))
	r.Use(func(c *gin.Context) {
		middleware.SetIdentity(c, *testIdentity())
		c.Next()
	})
	h := NewCategoryHandler(&mockCategoryService{
		listFn: func(token.Identity) ([]models.Category, error) {
			return nil, fmt.Errorf("pq: connection reset by peer")
		},
	})
	r.GET("/api/categories", h.List)

	w := doRequest(r, http.MethodGet, "/api/categories", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d; body: %s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "connection reset") {
		t.Errorf("storage detail leaked into the response: %s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Internal server error") {
		t.Errorf("expected opaque body, got: %s", w.Body.String())
	}
	if !strings.Contains(buf.String(), "pq: connection reset by peer") {
		t.Errorf("storage detail missing from the server log: %s", buf.String())
	}
}

func TestCategoryUpdateNotFound(t *testing.T) {
	router := newCategoryTestRouter(&mockCategoryService{
		updateFn: func(token.Identity, string, models.Category) (*models.Category, error) {
			return nil, apperr.ErrNotFound
		},
	}, testIdentity())

	w := doRequest(router, http.MethodPut, "/api/categories/cat-gone",
		map[string]string{"name": "Rent", "cat_type": "EX"})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 got %d; body: %s", w.Code, w.Body.String())
	}
}
