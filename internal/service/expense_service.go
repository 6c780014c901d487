package service

import (
	"time"

	"github.com/financeflow/api/internal/models"
	"github.com/financeflow/api/internal/repository"
	"github.com/financeflow/api/internal/token"
	"github.com/financeflow/api/internal/utils"
)

type ExpenseService struct {
	repo *repository.ExpenseRepository
}

func NewExpenseService(repo *repository.ExpenseRepository) *ExpenseService {
	return &ExpenseService{repo: repo}
}

func (s *ExpenseService) List(identity token.Identity) ([]models.Expense, error) {
	return s.repo.ListByUser(identity.UserID)
}

func (s *ExpenseService) Create(identity token.Identity, expense models.Expense) (*models.Expense, error) {
	expense.ID = utils.GenerateID("exp")
	expense.UserID = identity.UserID
	if expense.Date.IsZero() {
		expense.Date = time.Now().UTC()
	}
	if err := s.repo.Create(&expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

func (s *ExpenseService) Get(identity token.Identity, id string) (*models.Expense, error) {
	return s.repo.GetByIDAndUser(id, identity.UserID)
}

func (s *ExpenseService) Update(identity token.Identity, id string, expense models.Expense) (*models.Expense, error) {
	existing, err := s.repo.GetByIDAndUser(id, identity.UserID)
	if err != nil {
		return nil, err
	}
	existing.Name = expense.Name
	existing.Description = expense.Description
	existing.Amount = expense.Amount
	existing.CategoryID = expense.CategoryID
	if !expense.Date.IsZero() {
		existing.Date = expense.Date
	}
	if err := s.repo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *ExpenseService) Delete(identity token.Identity, id string) error {
	return s.repo.Delete(id, identity.UserID)
}
