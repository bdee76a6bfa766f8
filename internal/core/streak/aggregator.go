package streak

import (
	"fmt"
	"math"
	"time"
)

// SubscriptionStreak is the stored streak pair the aggregation reads.
type SubscriptionStreak struct {
	SubscriptionID string
	Current        int
	Max            int
}

// Completion is one subscription-day event fed into the aggregation.
type Completion struct {
	SubscriptionID string
	Date           time.Time
	Completed      bool
}

type DailyCount struct {
	Date      string `json:"date"`
	Completed int    `json:"completed"`
}

type MonthlyCount struct {
	Month     string `json:"month"`
	Completed int    `json:"completed"`
}

// Report is the dashboard payload for one user and window.
type Report struct {
	Window        Window         `json:"window"`
	TotalHabits   int            `json:"total_habits"`
	AverageStreak int            `json:"average_streak"`
	BestStreak    int            `json:"best_streak"`
	History       []DailyCount   `json:"history"`
	Months        []MonthlyCount `json:"months,omitempty"`
}

type AggregateInput struct {
	Subscriptions  []SubscriptionStreak
	Completions    []Completion
	Window         Window
	MonthlyBuckets bool
	Today          time.Time
}

// Aggregate derives a user's statistics report. It is pure: all data is
// supplied by the caller, and absence of data yields zeros, not errors. A
// user with no subscriptions still gets the full zero-filled date range.
func Aggregate(in AggregateInput) (*Report, error) {
	dayCount := in.Window.Days()
	if dayCount == 0 {
		return nil, fmt.Errorf("%w: unknown window %q", ErrInvalidArgument, in.Window)
	}

	today := Normalize(in.Today)
	from := today.AddDate(0, 0, -(dayCount - 1))

	report := &Report{
		Window:      in.Window,
		TotalHabits: len(in.Subscriptions),
	}

	streakSum := 0
	for _, sub := range in.Subscriptions {
		streakSum += sub.Current
		if sub.Max > report.BestStreak {
			report.BestStreak = sub.Max
		}
	}
	if report.TotalHabits > 0 {
		report.AverageStreak = int(math.Round(float64(streakSum) / float64(report.TotalHabits)))
	}

	// Count distinct subscriptions per day, not raw events.
	perDay := make(map[string]map[string]struct{})
	for _, c := range in.Completions {
		if !c.Completed {
			continue
		}
		day := Normalize(c.Date)
		if day.Before(from) || day.After(today) {
			continue
		}
		key := day.Format(dayFormat)
		if perDay[key] == nil {
			perDay[key] = make(map[string]struct{})
		}
		perDay[key][c.SubscriptionID] = struct{}{}
	}

	report.History = make([]DailyCount, 0, dayCount)
	for d := from; !d.After(today); d = d.AddDate(0, 0, 1) {
		key := d.Format(dayFormat)
		report.History = append(report.History, DailyCount{
			Date:      key,
			Completed: len(perDay[key]),
		})
	}

	if in.MonthlyBuckets {
		report.Months = bucketByMonth(report.History)
	}

	return report, nil
}

// bucketByMonth groups the daily history by calendar month, valuing each
// bucket at the rounded average of its daily counts. Averages, not sums,
// keep months of different lengths comparable.
func bucketByMonth(history []DailyCount) []MonthlyCount {
	type bucket struct {
		sum  int
		days int
	}

	totals := make(map[string]*bucket)
	var order []string

	for _, dc := range history {
		month := dc.Date[:len("2006-01")]
		b, ok := totals[month]
		if !ok {
			b = &bucket{}
			totals[month] = b
			order = append(order, month)
		}
		b.sum += dc.Completed
		b.days++
	}

	months := make([]MonthlyCount, 0, len(order))
	for _, month := range order {
		b := totals[month]
		months = append(months, MonthlyCount{
			Month:     month,
			Completed: int(math.Round(float64(b.sum) / float64(b.days))),
		})
	}

	return months
}
