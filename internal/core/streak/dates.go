package streak

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidArgument marks caller mistakes: unknown windows, dates in
	// the future, negative prior maxima.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInconsistent marks results that cannot follow from the input,
	// which means the caller fed malformed data. Fail loudly, never clamp.
	ErrInconsistent = errors.New("inconsistent streak state")
)

const dayFormat = "2006-01-02"

// Window is a reporting range anchored at "today".
type Window string

const (
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
	WindowYear  Window = "year"
	WindowAll   Window = "all"
)

func ParseWindow(s string) (Window, error) {
	switch Window(s) {
	case WindowWeek, WindowMonth, WindowYear, WindowAll:
		return Window(s), nil
	default:
		return "", fmt.Errorf("%w: unknown window %q", ErrInvalidArgument, s)
	}
}

func (w Window) Days() int {
	switch w {
	case WindowWeek:
		return 7
	case WindowMonth:
		return 30
	case WindowYear:
		return 365
	case WindowAll:
		return 730
	default:
		return 0
	}
}

// Normalize truncates a timestamp to its UTC calendar day. All streak math
// runs on normalized dates; wall-clock time never enters a comparison.
func Normalize(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole calendar days from a to b. Both inputs are
// normalized first, so a late-evening a and early-morning b one day later
// still count as exactly one day apart.
func DaysBetween(a, b time.Time) int {
	return int(Normalize(b).Sub(Normalize(a)).Hours() / 24)
}
