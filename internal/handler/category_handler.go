package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/financeflow/api/internal/middleware"
	"github.com/financeflow/api/internal/models"
	"github.com/financeflow/api/internal/token"
)

// CategoryServicer defines the owner-scoped category operations used by
// CategoryHandler.
type CategoryServicer interface {
	List(token.Identity) ([]models.Category, error)
	Create(token.Identity, models.Category) (*models.Category, error)
	Get(identity token.Identity, id string) (*models.Category, error)
	Update(identity token.Identity, id string, category models.Category) (*models.Category, error)
	Delete(identity token.Identity, id string) error
}

type CategoryHandler struct {
	categories CategoryServicer
}

type CategoryRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	CatType string `json:"cat_type" validate:"required,oneof=IN EX"`
}

func NewCategoryHandler(categories CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

func (h *CategoryHandler) List(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	categories, err := h.categories.List(identity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	category, err := h.categories.Create(identity, models.Category{Name: req.Name, CatType: req.CatType})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	category, err := h.categories.Get(identity, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	category, err := h.categories.Update(identity, c.Param("id"), models.Category{Name: req.Name, CatType: req.CatType})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.categories.Delete(identity, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
