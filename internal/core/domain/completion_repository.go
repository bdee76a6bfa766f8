package domain

import (
	"context"
	"time"
)

type CompletionRepository interface {
	// Create persists a new completion. Implementations must map the
	// (subscription_id, date) unique violation to ErrCompletionConflict.
	Create(ctx context.Context, completion *Completion) error

	// Update modifies an existing completion (status flips).
	Update(ctx context.Context, completion *Completion) error

	// GetByDay retrieves the completion for one subscription and day, or
	// ErrCompletionNotFound when the day has no record yet.
	GetByDay(ctx context.Context, subscriptionID string, day time.Time) (*Completion, error)

	// ListCompletedDates returns the distinct days marked completed for a
	// subscription. This is the full history the streak recompute runs on.
	ListCompletedDates(ctx context.Context, subscriptionID string) ([]time.Time, error)

	// ListByUserAndRange returns all completions for every subscription of
	// a user with date in [from, to]. This is the single data fetch the
	// statistics aggregation runs on.
	ListByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]*Completion, error)
}
