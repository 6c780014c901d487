package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/financeflow/api/internal/middleware"
	"github.com/financeflow/api/internal/models"
	"github.com/financeflow/api/internal/token"
)

type GoalServicer interface {
	List(token.Identity) ([]models.Goal, error)
	Create(token.Identity, models.Goal) (*models.Goal, error)
	Get(identity token.Identity, id string) (*models.Goal, error)
	Update(identity token.Identity, id string, goal models.Goal) (*models.Goal, error)
	Delete(identity token.Identity, id string) error
}

type GoalHandler struct {
	goals GoalServicer
}

type GoalRequest struct {
	Name          string  `json:"name" validate:"required,max=100"`
	Description   string  `json:"description"`
	TargetAmount  float64 `json:"target_amount" validate:"gte=0"`
	CurrentAmount float64 `json:"current_amount" validate:"gte=0"`
	Deadline      string  `json:"deadline" validate:"required"`
}

func NewGoalHandler(goals GoalServicer) *GoalHandler {
	return &GoalHandler{goals: goals}
}

func (h *GoalHandler) List(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	goals, err := h.goals.List(identity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}

func (h *GoalHandler) Create(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	goal, ok := h.bind(c)
	if !ok {
		return
	}

	created, err := h.goals.Create(identity, *goal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *GoalHandler) Get(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	goal, err := h.goals.Get(identity, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

func (h *GoalHandler) Update(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	goal, ok := h.bind(c)
	if !ok {
		return
	}

	updated, err := h.goals.Update(identity, c.Param("id"), *goal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *GoalHandler) Delete(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.goals.Delete(identity, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *GoalHandler) bind(c *gin.Context) (*models.Goal, bool) {
	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return nil, false
	}
	deadline, ok := parseDate(req.Deadline)
	if !ok {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid date format")
		return nil, false
	}
	return &models.Goal{
		Name:          req.Name,
		Description:   req.Description,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Deadline:      deadline,
	}, true
}
