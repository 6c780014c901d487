package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/financeflow/api/internal/middleware"
	"github.com/financeflow/api/internal/models"
	"github.com/financeflow/api/internal/service"
	"github.com/financeflow/api/internal/token"
)

type BudgetServicer interface {
	List(token.Identity) ([]models.Budget, error)
	Create(token.Identity, models.Budget) (*models.Budget, error)
	Get(identity token.Identity, id string) (*models.Budget, error)
	Update(identity token.Identity, id string, update service.BudgetUpdate) (*models.Budget, error)
	Delete(identity token.Identity, id string) error
}

type BudgetHandler struct {
	budgets BudgetServicer
}

type BudgetItemPayload struct {
	Category string  `json:"category" validate:"required,max=100"`
	Planned  float64 `json:"planned" validate:"gte=0"`
	Actual   float64 `json:"actual" validate:"gte=0"`
	Color    *string `json:"color"`
}

type BudgetRequest struct {
	Name          string               `json:"name" validate:"required,max=100"`
	Description   string               `json:"description"`
	TargetAmount  float64              `json:"target_amount" validate:"gte=0"`
	CurrentAmount float64              `json:"current_amount" validate:"gte=0"`
	StartDate     string               `json:"start_date"`
	EndDate       string               `json:"end_date" validate:"required"`
	Period        string               `json:"period" validate:"omitempty,oneof=daily weekly monthly"`
	Items         *[]BudgetItemPayload `json:"items" validate:"omitempty,dive"`
}

// UpdateBudgetRequest relaxes EndDate so a partial update does not have to
// resend it.
type UpdateBudgetRequest struct {
	Name          string               `json:"name" validate:"required,max=100"`
	Description   string               `json:"description"`
	TargetAmount  float64              `json:"target_amount" validate:"gte=0"`
	CurrentAmount float64              `json:"current_amount" validate:"gte=0"`
	StartDate     string               `json:"start_date"`
	EndDate       string               `json:"end_date"`
	Period        string               `json:"period" validate:"omitempty,oneof=daily weekly monthly"`
	Items         *[]BudgetItemPayload `json:"items" validate:"omitempty,dive"`
}

func NewBudgetHandler(budgets BudgetServicer) *BudgetHandler {
	return &BudgetHandler{budgets: budgets}
}

func (h *BudgetHandler) List(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	budgets, err := h.budgets.List(identity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, budgets)
}

func (h *BudgetHandler) Create(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	startDate, ok1 := parseDate(req.StartDate)
	endDate, ok2 := parseDate(req.EndDate)
	if !ok1 || !ok2 {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid date format")
		return
	}

	budget := models.Budget{
		Name:          req.Name,
		Description:   req.Description,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		StartDate:     startDate,
		EndDate:       endDate,
		Period:        req.Period,
	}
	if req.Items != nil {
		budget.Items = itemsFromPayload(*req.Items)
	}

	created, err := h.budgets.Create(identity, budget)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *BudgetHandler) Get(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	budget, err := h.budgets.Get(identity, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, budget)
}

func (h *BudgetHandler) Update(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	startDate, ok1 := parseDate(req.StartDate)
	endDate, ok2 := parseDate(req.EndDate)
	if !ok1 || !ok2 {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid date format")
		return
	}

	update := service.BudgetUpdate{
		Name:          req.Name,
		Description:   req.Description,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		StartDate:     startDate,
		EndDate:       endDate,
		Period:        req.Period,
	}
	if req.Items != nil {
		items := itemsFromPayload(*req.Items)
		update.Items = &items
	}

	updated, err := h.budgets.Update(identity, c.Param("id"), update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *BudgetHandler) Delete(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.budgets.Delete(identity, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func itemsFromPayload(payload []BudgetItemPayload) []models.BudgetItem {
	items := make([]models.BudgetItem, len(payload))
	for i, p := range payload {
		items[i] = models.BudgetItem{
			Category: p.Category,
			Planned:  p.Planned,
			Actual:   p.Actual,
			Color:    p.Color,
		}
	}
	return items
}
