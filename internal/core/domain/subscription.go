package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrAlreadySubscribed    = errors.New("user is already subscribed to this habit")
	ErrSubscriptionConflict = errors.New("subscription version conflict")
	ErrStreakInvariant      = errors.New("max streak cannot be lower than current streak")
	ErrUnauthorized         = errors.New("resource does not belong to this user")
)

// Subscription is a user's adoption of one habit. The streak pair is
// derived state: it is only ever written with the result of a full
// recomputation over the subscription's completion history, guarded by the
// Version optimistic lock so concurrent toggles cannot interleave.
type Subscription struct {
	ID            string    `json:"id" db:"id"`
	UserID        string    `json:"user_id" db:"user_id"`
	HabitID       string    `json:"habit_id" db:"habit_id"`
	CurrentStreak int       `json:"current_streak" db:"current_streak"`
	MaxStreak     int       `json:"max_streak" db:"max_streak"`
	Version       int       `json:"version" db:"version"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

func NewSubscription(userID, habitID string) *Subscription {
	now := time.Now().UTC()
	return &Subscription{
		ID:        uuid.New().String(),
		UserID:    userID,
		HabitID:   habitID,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetStreaks stores a recomputed streak pair. Max below current is a
// caller bug and is rejected rather than clamped.
func (s *Subscription) SetStreaks(current, max int) error {
	if current < 0 || max < current {
		return ErrStreakInvariant
	}

	s.CurrentStreak = current
	s.MaxStreak = max
	s.UpdatedAt = time.Now().UTC()
	return nil
}
