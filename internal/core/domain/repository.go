package domain

import (
	"context"
	"errors"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrHabitConflict = errors.New("habit version conflict")
)

type HabitRepository interface {
	// Create persists a new habit definition.
	Create(ctx context.Context, habit *Habit) error

	// GetByID retrieves a habit by its unique identifier.
	GetByID(ctx context.Context, id string) (*Habit, error)

	// ListCatalog retrieves every habit visible to a user: the shared
	// catalog plus the user's own custom habits.
	ListCatalog(ctx context.Context, userID string) ([]*Habit, error)

	// Update modifies an existing habit. Implementations must check the
	// Version optimistic lock and return ErrHabitConflict on mismatch.
	Update(ctx context.Context, habit *Habit) error

	// Delete removes a habit definition.
	Delete(ctx context.Context, id string) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	GetByID(ctx context.Context, id string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id string) error
}
