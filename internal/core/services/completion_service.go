package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mlorenzato/ritmo/internal/core/domain"
	"github.com/mlorenzato/ritmo/internal/core/streak"
)

// Toggling and storing the recomputed streak is read-recompute-store; the
// subscription version check serializes concurrent toggles on the same
// subscription, and on conflict the whole cycle is retried.
const maxStreakRetries = 3

type CompletionService struct {
	repo    domain.CompletionRepository
	subRepo domain.SubscriptionRepository

	now func() time.Time
}

func NewCompletionService(repo domain.CompletionRepository, subRepo domain.SubscriptionRepository) *CompletionService {
	return &CompletionService{
		repo:    repo,
		subRepo: subRepo,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the service clock. Tests use it to pin "today".
func (s *CompletionService) WithClock(now func() time.Time) *CompletionService {
	s.now = now
	return s
}

type ToggleResult struct {
	Completion *domain.Completion `json:"completion"`
	Streaks    streak.Streaks     `json:"streaks"`
}

// Toggle flips the completion status of one day and synchronously
// recomputes the subscription's streak pair from the full completed-date
// history. Unmarking an old day therefore lands on exactly the same state
// a fresh computation would produce; there is no stored-counter shortcut.
func (s *CompletionService) Toggle(ctx context.Context, subscriptionID, userID string, date time.Time) (*ToggleResult, error) {
	sub, err := s.subRepo.GetByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if sub.UserID != userID {
		return nil, domain.ErrUnauthorized
	}

	today := streak.Normalize(s.now())
	day := streak.Normalize(date)
	if day.After(today) {
		return nil, domain.ErrFutureDate
	}

	completion, err := s.repo.GetByDay(ctx, subscriptionID, day)
	switch {
	case err == nil:
		completion.Flip()
		if err := s.repo.Update(ctx, completion); err != nil {
			return nil, err
		}
	case errors.Is(err, domain.ErrCompletionNotFound):
		completion = domain.NewCompletion(subscriptionID, day, domain.StatusCompleted)
		if err := completion.Validate(); err != nil {
			return nil, err
		}
		if err := s.repo.Create(ctx, completion); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	streaks, err := s.recompute(ctx, sub, today)
	if err != nil {
		return nil, err
	}

	return &ToggleResult{Completion: completion, Streaks: streaks}, nil
}

func (s *CompletionService) recompute(ctx context.Context, sub *domain.Subscription, today time.Time) (streak.Streaks, error) {
	for attempt := 0; attempt < maxStreakRetries; attempt++ {
		dates, err := s.repo.ListCompletedDates(ctx, sub.ID)
		if err != nil {
			return streak.Streaks{}, err
		}

		result, err := streak.Recompute(dates, today, sub.MaxStreak)
		if err != nil {
			return streak.Streaks{}, fmt.Errorf("streak recompute for subscription %s: %w", sub.ID, err)
		}

		err = s.subRepo.UpdateStreaks(ctx, sub.ID, result.Current, result.Max, sub.Version)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, domain.ErrSubscriptionConflict) {
			return streak.Streaks{}, err
		}

		// Lost the race: reload and recompute against the fresh state.
		sub, err = s.subRepo.GetByID(ctx, sub.ID)
		if err != nil {
			return streak.Streaks{}, err
		}
	}

	return streak.Streaks{}, domain.ErrSubscriptionConflict
}

// History returns a subscription's completions inside [from, to] through
// the owning user's completion feed.
func (s *CompletionService) History(ctx context.Context, subscriptionID, userID string, from, to time.Time) ([]*domain.Completion, error) {
	sub, err := s.subRepo.GetByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if sub.UserID != userID {
		return nil, domain.ErrUnauthorized
	}

	all, err := s.repo.ListByUserAndRange(ctx, userID, streak.Normalize(from), streak.Normalize(to))
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Completion, 0, len(all))
	for _, c := range all {
		if c.SubscriptionID == subscriptionID {
			out = append(out, c)
		}
	}
	return out, nil
}
