package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrHabitTitleEmpty   = errors.New("habit title cannot be empty")
	ErrHabitTitleTooLong = errors.New("habit title is too long (max 100 chars)")
	ErrHabitDescTooLong  = errors.New("habit description is too long (max 500 chars)")
	ErrInvalidColor      = errors.New("invalid color format (must be #RRGGBB)")
	ErrHabitNotOwned     = errors.New("habit does not belong to this user")
)

var colorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

const (
	DefaultIcon = "default_icon"
	MaxTitleLen = 100
	MaxDescLen  = 500
)

// Habit is a habit definition from the catalog. Catalog habits have an
// empty OwnerID and are shared; custom habits carry the creating user's ID
// and are visible only to them. Users track a habit through a Subscription,
// never through the definition itself.
type Habit struct {
	ID          string    `json:"id" db:"id"`
	CategoryID  string    `json:"category_id" db:"category_id"`
	OwnerID     string    `json:"owner_id,omitempty" db:"owner_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description,omitempty" db:"description"`
	Color       string    `json:"color" db:"color"`
	Icon        string    `json:"icon" db:"icon"`
	Version     int       `json:"version" db:"version"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

func validateHabitFields(title, desc, color string) error {
	if strings.TrimSpace(title) == "" {
		return ErrHabitTitleEmpty
	}
	if len(strings.TrimSpace(title)) > MaxTitleLen {
		return ErrHabitTitleTooLong
	}
	if len(strings.TrimSpace(desc)) > MaxDescLen {
		return ErrHabitDescTooLong
	}
	if color != "" && !colorRegex.MatchString(color) {
		return ErrInvalidColor
	}
	return nil
}

func NewHabit(categoryID, ownerID, title, description, color, icon string) (*Habit, error) {
	if err := validateHabitFields(title, description, color); err != nil {
		return nil, err
	}

	if icon == "" {
		icon = DefaultIcon
	}

	now := time.Now().UTC()

	return &Habit{
		ID:          uuid.New().String(),
		CategoryID:  categoryID,
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Color:       color,
		Icon:        icon,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (h *Habit) Update(title, description, color, icon, categoryID string) error {
	if err := validateHabitFields(title, description, color); err != nil {
		return err
	}

	if icon == "" {
		icon = DefaultIcon
	}

	h.Title = strings.TrimSpace(title)
	h.Description = strings.TrimSpace(description)
	h.Color = color
	h.Icon = icon
	if categoryID != "" {
		h.CategoryID = categoryID
	}
	h.UpdatedAt = time.Now().UTC()

	return nil
}

// IsCustom reports whether the habit is user-defined rather than part of
// the shared catalog.
func (h *Habit) IsCustom() bool {
	return h.OwnerID != ""
}

// VisibleTo reports whether a user may subscribe to or read this habit.
func (h *Habit) VisibleTo(userID string) bool {
	return !h.IsCustom() || h.OwnerID == userID
}
