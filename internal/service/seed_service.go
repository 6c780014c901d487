package service

import (
	"fmt"
	"time"

	"github.com/financeflow/api/internal/models"
	"github.com/financeflow/api/internal/repository"
	"github.com/financeflow/api/internal/utils"
)

// SeedService creates the starter data every new account gets: one income
// and one expense category, an empty savings snapshot, a default monthly
// budget and a default goal.
type SeedService struct {
	categories *repository.CategoryRepository
	savings    *repository.SavingsRepository
	budgets    *repository.BudgetRepository
	goals      *repository.GoalRepository
}

func NewSeedService(
	categories *repository.CategoryRepository,
	savings *repository.SavingsRepository,
	budgets *repository.BudgetRepository,
	goals *repository.GoalRepository,
) *SeedService {
	return &SeedService{categories: categories, savings: savings, budgets: budgets, goals: goals}
}

func (s *SeedService) SeedDefaults(user *models.User) error {
	now := time.Now().UTC()

	defaults := []models.Category{
		{ID: utils.GenerateID("cat"), Name: "Salary", CatType: models.CategoryIncome, UserID: user.ID},
		{ID: utils.GenerateID("cat"), Name: "Rent", CatType: models.CategoryExpense, UserID: user.ID},
	}
	for i := range defaults {
		if err := s.categories.Create(&defaults[i]); err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
	}

	if err := s.savings.Create(&models.Savings{
		ID:     utils.GenerateID("sav"),
		Total:  0,
		UserID: user.ID,
	}); err != nil {
		return fmt.Errorf("seed savings: %w", err)
	}

	if err := s.budgets.Create(&models.Budget{
		ID:           utils.GenerateID("bud"),
		Name:         "Monthly Budget",
		Description:  "Default monthly budget",
		TargetAmount: 3000,
		StartDate:    now,
		EndDate:      now.AddDate(0, 1, 0),
		Period:       models.PeriodMonthly,
		UserID:       user.ID,
		Items:        []models.BudgetItem{},
	}); err != nil {
		return fmt.Errorf("seed budget: %w", err)
	}

	if err := s.goals.Create(&models.Goal{
		ID:           utils.GenerateID("gol"),
		Name:         "Emergency Fund",
		Description:  "Save for emergencies",
		TargetAmount: 5000,
		Deadline:     now.AddDate(1, 0, 0),
		UserID:       user.ID,
	}); err != nil {
		return fmt.Errorf("seed goal: %w", err)
	}

	return nil
}
