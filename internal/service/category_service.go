package service

import (
	"github.com/financeflow/api/internal/models"
	"github.com/financeflow/api/internal/repository"
	"github.com/financeflow/api/internal/token"
	"github.com/financeflow/api/internal/utils"
)

// CategoryService is the owner-scoped gateway for categories: every read is
// filtered to the identity's records and every write is stamped with it.
type CategoryService struct {
	repo *repository.CategoryRepository
}

func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) List(identity token.Identity) ([]models.Category, error) {
	return s.repo.ListByUser(identity.UserID)
}

func (s *CategoryService) Create(identity token.Identity, category models.Category) (*models.Category, error) {
	category.ID = utils.GenerateID("cat")
	category.UserID = identity.UserID
	if err := s.repo.Create(&category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) Get(identity token.Identity, id string) (*models.Category, error) {
	return s.repo.GetByIDAndUser(id, identity.UserID)
}

func (s *CategoryService) Update(identity token.Identity, id string, category models.Category) (*models.Category, error) {
	existing, err := s.repo.GetByIDAndUser(id, identity.UserID)
	if err != nil {
		return nil, err
	}
	existing.Name = category.Name
	existing.CatType = category.CatType
	if err := s.repo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *CategoryService) Delete(identity token.Identity, id string) error {
	return s.repo.Delete(id, identity.UserID)
}
