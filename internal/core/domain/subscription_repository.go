package domain

import "context"

type SubscriptionRepository interface {
	// Create persists a new subscription. Implementations must map the
	// (user_id, habit_id) unique violation to ErrAlreadySubscribed.
	Create(ctx context.Context, sub *Subscription) error

	// GetByID retrieves a subscription by its unique identifier.
	GetByID(ctx context.Context, id string) (*Subscription, error)

	// ListByUserID retrieves all of a user's subscriptions with their
	// stored streak pairs.
	ListByUserID(ctx context.Context, userID string) ([]*Subscription, error)

	// UpdateStreaks stores a recomputed streak pair. The version check is
	// the serialization point for concurrent toggles on the same
	// subscription: on mismatch implementations return
	// ErrSubscriptionConflict and the caller retries the whole
	// read-recompute-store cycle.
	UpdateStreaks(ctx context.Context, id string, current, max, version int) error

	// Delete removes a subscription and its completion history.
	Delete(ctx context.Context, id string) error

	// ListIDs returns every subscription ID. Used by the reconciler sweep
	// that refreshes streaks after day rollover.
	ListIDs(ctx context.Context) ([]string, error)
}
