package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/financeflow/api/internal/middleware"
	"github.com/financeflow/api/internal/models"
	"github.com/financeflow/api/internal/token"
)

type mockSavingsService struct {
	listFn   func(token.Identity) ([]models.Savings, error)
	createFn func(token.Identity) (*models.Savings, error)
	getFn    func(token.Identity, string) (*models.Savings, error)
	deleteFn func(token.Identity, string) error
}

func (m *mockSavingsService) List(id token.Identity) ([]models.Savings, error) {
	if m.listFn != nil {
		return m.listFn(id)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockSavingsService) Create(id token.Identity) (*models.Savings, error) {
	if m.createFn != nil {
		return m.createFn(id)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockSavingsService) Get(id token.Identity, savingsID string) (*models.Savings, error) {
	if m.getFn != nil {
		return m.getFn(id, savingsID)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockSavingsService) Delete(id token.Identity, savingsID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(id, savingsID)
	}
	return fmt.Errorf("not configured")
}

func newSavingsTestRouter(savings SavingsServicer, identity *token.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if identity != nil {
		r.Use(func(c *gin.Context) {
			middleware.SetIdentity(c, *identity)
			c.Next()
		})
	}
	h := NewSavingsHandler(savings)
	api := r.Group("/api/savings")
	api.GET("", h.List)
	api.POST("", h.Create)
	api.GET("/:id", h.Get)
	api.PUT("/:id", h.Update)
	api.DELETE("/:id", h.Delete)
	return r
}

func TestSavingsCreate(t *testing.T) {
	router := newSavingsTestRouter(&mockSavingsService{
		createFn: func(id token.Identity) (*models.Savings, error) {
			return &models.Savings{ID: "sav-abc", UserID: id.UserID, Total: 60}, nil
		},
	}, testIdentity())

	w := doRequest(router, http.MethodPost, "/api/savings", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d; body: %s", w.Code, w.Body.String())
	}

	var record models.Savings
	if err := json.Unmarshal(w.Body.Bytes(), &record); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if record.Total != 60 {
		t.Errorf("expected total 60, got %v", record.Total)
	}
}

// A PUT on savings carries no authoritative payload; the handler discards the
// body and returns the recomputed snapshot.
func TestSavingsUpdateIgnoresPayload(t *testing.T) {
	router := newSavingsTestRouter(&mockSavingsService{
		getFn: func(id token.Identity, savingsID string) (*models.Savings, error) {
			return &models.Savings{ID: savingsID, UserID: id.UserID, Total: 60}, nil
		},
	}, testIdentity())

	w := doRequest(router, http.MethodPut, "/api/savings/sav-abc",
		map[string]interface{}{"total": 999999})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d; body: %s", w.Code, w.Body.String())
	}

	var record models.Savings
	if err := json.Unmarshal(w.Body.Bytes(), &record); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if record.Total != 60 {
		t.Errorf("expected recomputed total 60, got %v", record.Total)
	}
}
