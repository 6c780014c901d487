package service

import (
	"time"

	"github.com/financeflow/api/internal/models"
	"github.com/financeflow/api/internal/repository"
	"github.com/financeflow/api/internal/token"
	"github.com/financeflow/api/internal/utils"
)

type IncomeService struct {
	repo *repository.IncomeRepository
}

func NewIncomeService(repo *repository.IncomeRepository) *IncomeService {
	return &IncomeService{repo: repo}
}

func (s *IncomeService) List(identity token.Identity) ([]models.Income, error) {
	return s.repo.ListByUser(identity.UserID)
}

func (s *IncomeService) Create(identity token.Identity, income models.Income) (*models.Income, error) {
	income.ID = utils.GenerateID("inc")
	income.UserID = identity.UserID
	if income.Date.IsZero() {
		income.Date = time.Now().UTC()
	}
	if err := s.repo.Create(&income); err != nil {
		return nil, err
	}
	return &income, nil
}

func (s *IncomeService) Get(identity token.Identity, id string) (*models.Income, error) {
	return s.repo.GetByIDAndUser(id, identity.UserID)
}

func (s *IncomeService) Update(identity token.Identity, id string, income models.Income) (*models.Income, error) {
	existing, err := s.repo.GetByIDAndUser(id, identity.UserID)
	if err != nil {
		return nil, err
	}
	existing.Name = income.Name
	existing.Description = income.Description
	existing.Amount = income.Amount
	existing.CategoryID = income.CategoryID
	if !income.Date.IsZero() {
		existing.Date = income.Date
	}
	if err := s.repo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *IncomeService) Delete(identity token.Identity, id string) error {
	return s.repo.Delete(id, identity.UserID)
}
