package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/financeflow/api/internal/middleware"
	"github.com/financeflow/api/internal/models"
	"github.com/financeflow/api/internal/token"
)

type ExpenseServicer interface {
	List(token.Identity) ([]models.Expense, error)
	Create(token.Identity, models.Expense) (*models.Expense, error)
	Get(identity token.Identity, id string) (*models.Expense, error)
	Update(identity token.Identity, id string, expense models.Expense) (*models.Expense, error)
	Delete(identity token.Identity, id string) error
}

type ExpenseHandler struct {
	expenses ExpenseServicer
}

type ExpenseRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount" validate:"gte=0"`
	Date        string  `json:"date"`
	Category    *string `json:"category"`
}

func NewExpenseHandler(expenses ExpenseServicer) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

func (h *ExpenseHandler) List(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	expenses, err := h.expenses.List(identity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, expenses)
}

func (h *ExpenseHandler) Create(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	record, ok := h.bind(c)
	if !ok {
		return
	}

	created, err := h.expenses.Create(identity, *record)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ExpenseHandler) Get(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	record, err := h.expenses.Get(identity, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *ExpenseHandler) Update(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	record, ok := h.bind(c)
	if !ok {
		return
	}

	updated, err := h.expenses.Update(identity, c.Param("id"), *record)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ExpenseHandler) Delete(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.expenses.Delete(identity, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ExpenseHandler) bind(c *gin.Context) (*models.Expense, bool) {
	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return nil, false
	}
	date, ok := parseDate(req.Date)
	if !ok {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid date format")
		return nil, false
	}
	return &models.Expense{
		Name:        req.Name,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        date,
		CategoryID:  req.Category,
	}, true
}
