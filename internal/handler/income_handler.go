package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/financeflow/api/internal/middleware"
	"github.com/financeflow/api/internal/models"
	"github.com/financeflow/api/internal/token"
)

type IncomeServicer interface {
	List(token.Identity) ([]models.Income, error)
	Create(token.Identity, models.Income) (*models.Income, error)
	Get(identity token.Identity, id string) (*models.Income, error)
	Update(identity token.Identity, id string, income models.Income) (*models.Income, error)
	Delete(identity token.Identity, id string) error
}

type IncomeHandler struct {
	income IncomeServicer
}

type IncomeRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount" validate:"gte=0"`
	Date        string  `json:"date"`
	Category    *string `json:"category"`
}

func NewIncomeHandler(income IncomeServicer) *IncomeHandler {
	return &IncomeHandler{income: income}
}

func (h *IncomeHandler) List(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	income, err := h.income.List(identity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, income)
}

func (h *IncomeHandler) Create(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	record, ok := h.bind(c)
	if !ok {
		return
	}

	created, err := h.income.Create(identity, *record)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *IncomeHandler) Get(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	record, err := h.income.Get(identity, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *IncomeHandler) Update(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	record, ok := h.bind(c)
	if !ok {
		return
	}

	updated, err := h.income.Update(identity, c.Param("id"), *record)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *IncomeHandler) Delete(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.income.Delete(identity, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *IncomeHandler) bind(c *gin.Context) (*models.Income, bool) {
	var req IncomeRequest
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
	return &models.Income{
		Name:        req.Name,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        date,
		CategoryID:  req.Category,
	}, true
}
