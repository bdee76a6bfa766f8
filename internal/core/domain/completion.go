package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrCompletionNotFound = errors.New("completion not found")
	ErrCompletionConflict = errors.New("completion already exists for this day")
	ErrInvalidStatus      = errors.New("invalid completion status")
	ErrFutureDate         = errors.New("completion date cannot be in the future")
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// Completion records one subscription's state for one calendar day. At
// most one row exists per (subscription, day); the unique index in the
// store enforces it.
type Completion struct {
	ID             string    `json:"id" db:"id"`
	SubscriptionID string    `json:"subscription_id" db:"subscription_id"`
	Date           time.Time `json:"date" db:"date"`
	Status         string    `json:"status" db:"status"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

func NewCompletion(subscriptionID string, date time.Time, status string) *Completion {
	now := time.Now().UTC()

	d := date.UTC()
	return &Completion{
		SubscriptionID: subscriptionID,
		Date:           time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC),
		Status:         status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func (c *Completion) Validate() error {
	if strings.TrimSpace(c.SubscriptionID) == "" {
		return errors.New("subscription_id is required")
	}
	if c.Date.IsZero() {
		return errors.New("date is required")
	}
	switch c.Status {
	case StatusPending, StatusCompleted:
	default:
		return ErrInvalidStatus
	}
	return nil
}

// Flip switches the day between pending and completed.
func (c *Completion) Flip() {
	if c.Status == StatusCompleted {
		c.Status = StatusPending
	} else {
		c.Status = StatusCompleted
	}
	c.UpdatedAt = time.Now().UTC()
}

func (c *Completion) IsCompleted() bool {
	return c.Status == StatusCompleted
}
