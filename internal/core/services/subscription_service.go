package services

import (
	"context"

	"github.com/mlorenzato/ritmo/internal/core/domain"
)

type SubscriptionService struct {
	repo      domain.SubscriptionRepository
	habitRepo domain.HabitRepository
}

func NewSubscriptionService(repo domain.SubscriptionRepository, habitRepo domain.HabitRepository) *SubscriptionService {
	return &SubscriptionService{
		repo:      repo,
		habitRepo: habitRepo,
	}
}

func (s *SubscriptionService) Subscribe(ctx context.Context, userID, habitID string) (*domain.Subscription, error) {
	habit, err := s.habitRepo.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}

	if !habit.VisibleTo(userID) {
		return nil, domain.ErrHabitNotFound
	}

	sub := domain.NewSubscription(userID, habitID)

	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, err
	}

	return sub, nil
}

func (s *SubscriptionService) ListByUserID(ctx context.Context, userID string) ([]*domain.Subscription, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *SubscriptionService) Unsubscribe(ctx context.Context, id string, userID string) error {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if sub.UserID != userID {
		return domain.ErrSubscriptionNotFound
	}

	return s.repo.Delete(ctx, id)
}
