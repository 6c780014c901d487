package service

import (
	"github.com/financeflow/api/internal/models"
	"github.com/financeflow/api/internal/repository"
	"github.com/financeflow/api/internal/token"
	"github.com/financeflow/api/internal/utils"
)

// SavingsService serves savings snapshots. Totals are never maintained
// incrementally: every read re-scans the owner's income and expense
// collections and writes the fresh total back.
type SavingsService struct {
	savings  *repository.SavingsRepository
	income   *repository.IncomeRepository
	expenses *repository.ExpenseRepository
}

func NewSavingsService(
	savings *repository.SavingsRepository,
	income *repository.IncomeRepository,
	expenses *repository.ExpenseRepository,
) *SavingsService {
	return &SavingsService{savings: savings, income: income, expenses: expenses}
}

// Total computes sum(income) - sum(expenses) for the identity.
func (s *SavingsService) Total(identity token.Identity) (float64, error) {
	incomeTotal, err := s.income.SumByUser(identity.UserID)
	if err != nil {
		return 0, err
	}
	expenseTotal, err := s.expenses.SumByUser(identity.UserID)
	if err != nil {
		return 0, err
	}
	return incomeTotal - expenseTotal, nil
}

func (s *SavingsService) List(identity token.Identity) ([]models.Savings, error) {
	total, err := s.Total(identity)
	if err != nil {
		return nil, err
	}

	records, err := s.savings.ListByUser(identity.UserID)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].Total != total {
			if err := s.savings.UpdateTotal(records[i].ID, identity.UserID, total); err != nil {
				return nil, err
			}
		}
		records[i].Total = total
	}
	return records, nil
}

func (s *SavingsService) Create(identity token.Identity) (*models.Savings, error) {
	total, err := s.Total(identity)
	if err != nil {
		return nil, err
	}
	record := &models.Savings{
		ID:     utils.GenerateID("sav"),
		Total:  total,
		UserID: identity.UserID,
	}
	if err := s.savings.Create(record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *SavingsService) Get(identity token.Identity, id string) (*models.Savings, error) {
	record, err := s.savings.GetByIDAndUser(id, identity.UserID)
	if err != nil {
		return nil, err
	}
	total, err := s.Total(identity)
	if err != nil {
		return nil, err
	}
	if record.Total != total {
		if err := s.savings.UpdateTotal(record.ID, identity.UserID, total); err != nil {
			return nil, err
		}
		record.Total = total
	}
	return record, nil
}

func (s *SavingsService) Delete(identity token.Identity, id string) error {
	return s.savings.Delete(id, identity.UserID)
}
