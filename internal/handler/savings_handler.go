package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/financeflow/api/internal/middleware"
	"github.com/financeflow/api/internal/models"
	"github.com/financeflow/api/internal/token"
)

// SavingsServicer serves derived savings snapshots. There is no update
// payload: the total is recomputed from income and expenses on every read.
type SavingsServicer interface {
	List(token.Identity) ([]models.Savings, error)
	Create(token.Identity) (*models.Savings, error)
	Get(identity token.Identity, id string) (*models.Savings, error)
	Delete(identity token.Identity, id string) error
}

type SavingsHandler struct {
	savings SavingsServicer
}

func NewSavingsHandler(savings SavingsServicer) *SavingsHandler {
	return &SavingsHandler{savings: savings}
}

func (h *SavingsHandler) List(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	savings, err := h.savings.List(identity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, savings)
}

func (h *SavingsHandler) Create(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	record, err := h.savings.Create(identity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *SavingsHandler) Get(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	record, err := h.savings.Get(identity, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// Update ignores any caller-supplied total and just returns the freshly
// recomputed snapshot; savings are not independently authoritative.
func (h *SavingsHandler) Update(c *gin.Context) {
	h.Get(c)
}

func (h *SavingsHandler) Delete(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.savings.Delete(identity, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
