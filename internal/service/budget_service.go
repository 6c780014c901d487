package service

import (
	"time"

	"github.com/financeflow/api/internal/models"
	"github.com/financeflow/api/internal/token"
	"github.com/financeflow/api/internal/utils"
)

// BudgetUpdate is a budget mutation. Items is a pointer so the service can
// tell "no items supplied" from "replace with an empty set".
type BudgetUpdate struct {
	Name          string
	Description   string
	TargetAmount  float64
	CurrentAmount float64
	StartDate     time.Time
	EndDate       time.Time
	Period        string
	Items         *[]models.BudgetItem
}

// BudgetStore is the persistence surface the service needs. Update's
// replaceItems flag decides whether the stored child set is swapped for
// budget.Items or left alone.
type BudgetStore interface {
	Create(budget *models.Budget) error
	ListByUser(userID string) ([]models.Budget, error)
	GetByIDAndUser(id, userID string) (*models.Budget, error)
	Update(budget *models.Budget, replaceItems bool) error
	Delete(id, userID string) error
}

type BudgetService struct {
	repo BudgetStore
}

func NewBudgetService(repo BudgetStore) *BudgetService {
	return &BudgetService{repo: repo}
}

func (s *BudgetService) List(identity token.Identity) ([]models.Budget, error) {
	budgets, err := s.repo.ListByUser(identity.UserID)
	if err != nil {
		return nil, err
	}
	for i := range budgets {
		DecorateBudget(&budgets[i])
	}
	return budgets, nil
}

func (s *BudgetService) Create(identity token.Identity, budget models.Budget) (*models.Budget, error) {
	budget.ID = utils.GenerateID("bud")
	budget.UserID = identity.UserID
	if budget.Period == "" {
		budget.Period = models.PeriodMonthly
	}
	if budget.StartDate.IsZero() {
		budget.StartDate = time.Now().UTC()
	}
	if budget.Items == nil {
		budget.Items = []models.BudgetItem{}
	}
	if err := s.repo.Create(&budget); err != nil {
		return nil, err
	}
	DecorateBudget(&budget)
	return &budget, nil
}

func (s *BudgetService) Get(identity token.Identity, id string) (*models.Budget, error) {
	budget, err := s.repo.GetByIDAndUser(id, identity.UserID)
	if err != nil {
		return nil, err
	}
	DecorateBudget(budget)
	return budget, nil
}

// Update applies the mutation. When update.Items is non-nil the existing
// child set is dropped and recreated from the supplied one, all-or-nothing;
// there is no partial merge.
func (s *BudgetService) Update(identity token.Identity, id string, update BudgetUpdate) (*models.Budget, error) {
	existing, err := s.repo.GetByIDAndUser(id, identity.UserID)
	if err != nil {
		return nil, err
	}

	existing.Name = update.Name
	existing.Description = update.Description
	existing.TargetAmount = update.TargetAmount
	existing.CurrentAmount = update.CurrentAmount
	if !update.StartDate.IsZero() {
		existing.StartDate = update.StartDate
	}
	if !update.EndDate.IsZero() {
		existing.EndDate = update.EndDate
	}
	if update.Period != "" {
		existing.Period = update.Period
	}

	replaceItems := update.Items != nil
	if replaceItems {
		existing.Items = *update.Items
	}

	if err := s.repo.Update(existing, replaceItems); err != nil {
		return nil, err
	}

	updated, err := s.repo.GetByIDAndUser(id, identity.UserID)
	if err != nil {
		return nil, err
	}
	DecorateBudget(updated)
	return updated, nil
}

func (s *BudgetService) Delete(identity token.Identity, id string) error {
	return s.repo.Delete(id, identity.UserID)
}
