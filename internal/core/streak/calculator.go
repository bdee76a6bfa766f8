package streak

import (
	"fmt"
	"sort"
	"time"
)

// Streaks is a recomputed (current, max) pair for one subscription.
type Streaks struct {
	Current int `json:"current_streak"`
	Max     int `json:"max_streak"`
}

// Recompute derives the streak pair from a subscription's full
// completed-date history. It is a pure function of its arguments: the
// caller supplies the anchor day explicitly, and toggling any day, past or
// present, maps to one fresh call over the updated history. There is no
// increment shortcut, so unmarking an old day can never leave a stale
// counter behind.
//
// The current streak counts consecutive completed days ending at today or
// yesterday; a most-recent completion two or more days back means the
// streak is broken. Max never decreases below priorMax.
func Recompute(completedDates []time.Time, today time.Time, priorMax int) (Streaks, error) {
	if priorMax < 0 {
		return Streaks{}, fmt.Errorf("%w: negative prior max %d", ErrInvalidArgument, priorMax)
	}

	anchor := Normalize(today)

	seen := make(map[time.Time]struct{}, len(completedDates))
	days := make([]time.Time, 0, len(completedDates))
	for _, d := range completedDates {
		day := Normalize(d)
		if day.After(anchor) {
			return Streaks{}, fmt.Errorf("%w: completed date %s is after today %s",
				ErrInvalidArgument, day.Format(dayFormat), anchor.Format(dayFormat))
		}
		if _, dup := seen[day]; dup {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].After(days[j])
	})

	current := 0
	if len(days) > 0 && DaysBetween(days[0], anchor) <= 1 {
		current = 1
		for i := 1; i < len(days); i++ {
			if DaysBetween(days[i], days[i-1]) != 1 {
				break
			}
			current++
		}
	}

	if current > len(days) {
		return Streaks{}, fmt.Errorf("%w: current streak %d exceeds %d completed days",
			ErrInconsistent, current, len(days))
	}

	max := priorMax
	if current > max {
		max = current
	}

	return Streaks{Current: current, Max: max}, nil
}
