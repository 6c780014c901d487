package service

import (
	"github.com/financeflow/api/internal/models"
	"github.com/financeflow/api/internal/repository"
	"github.com/financeflow/api/internal/token"
	"github.com/financeflow/api/internal/utils"
)

type GoalService struct {
	repo *repository.GoalRepository
}

func NewGoalService(repo *repository.GoalRepository) *GoalService {
	return &GoalService{repo: repo}
}

func (s *GoalService) List(identity token.Identity) ([]models.Goal, error) {
	goals, err := s.repo.ListByUser(identity.UserID)
	if err != nil {
		return nil, err
	}
	for i := range goals {
		DecorateGoal(&goals[i])
	}
	return goals, nil
}

func (s *GoalService) Create(identity token.Identity, goal models.Goal) (*models.Goal, error) {
	goal.ID = utils.GenerateID("gol")
	goal.UserID = identity.UserID
	if err := s.repo.Create(&goal); err != nil {
		return nil, err
	}
	DecorateGoal(&goal)
	return &goal, nil
}

func (s *GoalService) Get(identity token.Identity, id string) (*models.Goal, error) {
	goal, err := s.repo.GetByIDAndUser(id, identity.UserID)
	if err != nil {
		return nil, err
	}
	DecorateGoal(goal)
	return goal, nil
}

func (s *GoalService) Update(identity token.Identity, id string, goal models.Goal) (*models.Goal, error) {
	existing, err := s.repo.GetByIDAndUser(id, identity.UserID)
	if err != nil {
		return nil, err
	}
	existing.Name = goal.Name
	existing.Description = goal.Description
	existing.TargetAmount = goal.TargetAmount
	existing.CurrentAmount = goal.CurrentAmount
	if !goal.Deadline.IsZero() {
		existing.Deadline = goal.Deadline
	}
	if err := s.repo.Update(existing); err != nil {
		return nil, err
	}
	DecorateGoal(existing)
	return existing, nil
}

func (s *GoalService) Delete(identity token.Identity, id string) error {
	return s.repo.Delete(id, identity.UserID)
}
