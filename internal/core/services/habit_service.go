package services

import (
	"context"

	"github.com/mlorenzato/ritmo/internal/core/domain"
)

type HabitService struct {
	repo         domain.HabitRepository
	categoryRepo domain.CategoryRepository
}

func NewHabitService(repo domain.HabitRepository, categoryRepo domain.CategoryRepository) *HabitService {
	return &HabitService{
		repo:         repo,
		categoryRepo: categoryRepo,
	}
}

type CreateHabitInput struct {
	UserID      string
	CategoryID  string
	Title       string
	Description string
	Color       string
	Icon        string
	Custom      bool
}

type UpdateHabitInput struct {
	ID          string
	UserID      string
	CategoryID  string
	Title       string
	Description string
	Color       string
	Icon        string
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	if input.CategoryID != "" {
		if _, err := s.categoryRepo.GetByID(ctx, input.CategoryID); err != nil {
			return nil, err
		}
	}

	ownerID := ""
	if input.Custom {
		ownerID = input.UserID
	}

	habit, err := domain.NewHabit(input.CategoryID, ownerID, input.Title, input.Description, input.Color, input.Icon)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, err
	}

	return habit, nil
}

func (s *HabitService) ListCatalog(ctx context.Context, userID string) ([]*domain.Habit, error) {
	return s.repo.ListCatalog(ctx, userID)
}

func (s *HabitService) Update(ctx context.Context, input UpdateHabitInput) (*domain.Habit, error) {
	habit, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	// Only custom habits can be edited by their owner; the shared catalog
	// is read-only through this path.
	if !habit.IsCustom() || habit.OwnerID != input.UserID {
		return nil, domain.ErrHabitNotOwned
	}

	if input.CategoryID != "" {
		if _, err := s.categoryRepo.GetByID(ctx, input.CategoryID); err != nil {
			return nil, err
		}
	}

	if err := habit.Update(input.Title, input.Description, input.Color, input.Icon, input.CategoryID); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}

	return habit, nil
}

func (s *HabitService) Delete(ctx context.Context, id string, userID string) error {
	habit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !habit.IsCustom() || habit.OwnerID != userID {
		return domain.ErrHabitNotOwned
	}

	return s.repo.Delete(ctx, id)
}

type CategoryInput struct {
	Name        string
	Description string
}

func (s *HabitService) CreateCategory(ctx context.Context, input CategoryInput) (*domain.Category, error) {
	category, err := domain.NewCategory(input.Name, input.Description)
	if err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (s *HabitService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *HabitService) UpdateCategory(ctx context.Context, id string, input CategoryInput) (*domain.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := category.Rename(input.Name, input.Description); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (s *HabitService) DeleteCategory(ctx context.Context, id string) error {
	return s.categoryRepo.Delete(ctx, id)
}
