package services

import (
	"context"
	"time"

	"github.com/mlorenzato/ritmo/internal/core/domain"
	"github.com/mlorenzato/ritmo/internal/core/streak"
)

type StatsService struct {
	subRepo        domain.SubscriptionRepository
	completionRepo domain.CompletionRepository
}

func NewStatsService(subRepo domain.SubscriptionRepository, completionRepo domain.CompletionRepository) *StatsService {
	return &StatsService{
		subRepo:        subRepo,
		completionRepo: completionRepo,
	}
}

type ReportInput struct {
	UserID         string
	Window         string
	MonthlyBuckets bool
	Today          time.Time
}

// GetReport fetches a user's subscriptions and in-window completions and
// hands them to the pure aggregation. The service owns all I/O; the
// aggregation owns all the math.
func (s *StatsService) GetReport(ctx context.Context, input ReportInput) (*streak.Report, error) {
	window, err := streak.ParseWindow(input.Window)
	if err != nil {
		return nil, err
	}

	today := streak.Normalize(input.Today)
	from := today.AddDate(0, 0, -(window.Days() - 1))

	subs, err := s.subRepo.ListByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	completions, err := s.completionRepo.ListByUserAndRange(ctx, input.UserID, from, today)
	if err != nil {
		return nil, err
	}

	in := streak.AggregateInput{
		Subscriptions:  make([]streak.SubscriptionStreak, 0, len(subs)),
		Completions:    make([]streak.Completion, 0, len(completions)),
		Window:         window,
		MonthlyBuckets: input.MonthlyBuckets,
		Today:          today,
	}

	for _, sub := range subs {
		in.Subscriptions = append(in.Subscriptions, streak.SubscriptionStreak{
			SubscriptionID: sub.ID,
			Current:        sub.CurrentStreak,
			Max:            sub.MaxStreak,
		})
	}

	for _, c := range completions {
		in.Completions = append(in.Completions, streak.Completion{
			SubscriptionID: c.SubscriptionID,
			Date:           c.Date,
			Completed:      c.IsCompleted(),
		})
	}

	return streak.Aggregate(in)
}
