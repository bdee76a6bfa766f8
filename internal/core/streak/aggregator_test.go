package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	today := day("2026-06-15")

	t.Run("zero subscriptions still fill the window", func(t *testing.T) {
		report, err := Aggregate(AggregateInput{
			Window: WindowWeek,
			Today:  today,
		})
		require.NoError(t, err)

		assert.Equal(t, 0, report.TotalHabits)
		assert.Equal(t, 0, report.AverageStreak)
		assert.Equal(t, 0, report.BestStreak)
		require.Len(t, report.History, 7)

		assert.Equal(t, "2026-06-09", report.History[0].Date)
		assert.Equal(t, "2026-06-15", report.History[6].Date)
		for _, dc := range report.History {
			assert.Equal(t, 0, dc.Completed)
		}
	})

	t.Run("summary numbers from stored streaks", func(t *testing.T) {
		report, err := Aggregate(AggregateInput{
			Subscriptions: []SubscriptionStreak{
				{SubscriptionID: "a", Current: 3, Max: 9},
				{SubscriptionID: "b", Current: 0, Max: 4},
				{SubscriptionID: "c", Current: 2, Max: 2},
			},
			Window: WindowWeek,
			Today:  today,
		})
		require.NoError(t, err)

		assert.Equal(t, 3, report.TotalHabits)
		assert.Equal(t, 2, report.AverageStreak, "round(5/3)")
		assert.Equal(t, 9, report.BestStreak)
	})

	t.Run("daily counts are distinct subscriptions", func(t *testing.T) {
		report, err := Aggregate(AggregateInput{
			Subscriptions: []SubscriptionStreak{
				{SubscriptionID: "a"}, {SubscriptionID: "b"},
			},
			Completions: []Completion{
				{SubscriptionID: "a", Date: today, Completed: true},
				{SubscriptionID: "a", Date: today.Add(6 * time.Hour), Completed: true},
				{SubscriptionID: "b", Date: today, Completed: true},
				{SubscriptionID: "b", Date: today.AddDate(0, 0, -1), Completed: false},
			},
			Window: WindowWeek,
			Today:  today,
		})
		require.NoError(t, err)

		last := report.History[len(report.History)-1]
		assert.Equal(t, 2, last.Completed, "two distinct subscriptions completed today")

		yesterday := report.History[len(report.History)-2]
		assert.Equal(t, 0, yesterday.Completed, "pending events never count")
	})

	t.Run("one fully completed habit among idle ones", func(t *testing.T) {
		var completions []Completion
		for i := 0; i < 30; i++ {
			completions = append(completions, Completion{
				SubscriptionID: "a",
				Date:           today.AddDate(0, 0, -i),
				Completed:      true,
			})
		}

		report, err := Aggregate(AggregateInput{
			Subscriptions: []SubscriptionStreak{
				{SubscriptionID: "a"}, {SubscriptionID: "b"}, {SubscriptionID: "c"},
			},
			Completions: completions,
			Window:      WindowMonth,
			Today:       today,
		})
		require.NoError(t, err)

		assert.Equal(t, 3, report.TotalHabits)
		require.Len(t, report.History, 30)
		for _, dc := range report.History {
			assert.Equal(t, 1, dc.Completed)
		}
	})

	t.Run("history sums match in-window completions", func(t *testing.T) {
		completions := []Completion{
			{SubscriptionID: "a", Date: today, Completed: true},
			{SubscriptionID: "a", Date: today.AddDate(0, 0, -3), Completed: true},
			{SubscriptionID: "b", Date: today.AddDate(0, 0, -5), Completed: true},
			// Outside the week window, must not count.
			{SubscriptionID: "a", Date: today.AddDate(0, 0, -10), Completed: true},
		}

		report, err := Aggregate(AggregateInput{
			Subscriptions: []SubscriptionStreak{{SubscriptionID: "a"}, {SubscriptionID: "b"}},
			Completions:   completions,
			Window:        WindowWeek,
			Today:         today,
		})
		require.NoError(t, err)

		sum := 0
		for _, dc := range report.History {
			sum += dc.Completed
		}
		assert.Equal(t, 3, sum)
	})

	t.Run("unknown window rejected", func(t *testing.T) {
		_, err := Aggregate(AggregateInput{Window: Window("decade"), Today: today})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("months omitted unless requested", func(t *testing.T) {
		report, err := Aggregate(AggregateInput{Window: WindowYear, Today: today})
		require.NoError(t, err)
		assert.Nil(t, report.Months)
	})
}

func TestAggregateMonthlyBuckets(t *testing.T) {
	today := day("2026-03-15")

	t.Run("year window spans thirteen buckets", func(t *testing.T) {
		report, err := Aggregate(AggregateInput{
			Window:         WindowYear,
			MonthlyBuckets: true,
			Today:          today,
		})
		require.NoError(t, err)

		// 2025-03-16 .. 2026-03-15 touches March twice: eleven full
		// months plus the two partial edge months.
		require.Len(t, report.Months, 13)
		assert.Equal(t, "2025-03", report.Months[0].Month)
		assert.Equal(t, "2026-03", report.Months[12].Month)
	})

	t.Run("bucket value is the rounded daily average", func(t *testing.T) {
		var completions []Completion
		// 10 completed days in April 2025 (30 days): avg 0.33 rounds to 0.
		for i := 1; i <= 10; i++ {
			completions = append(completions, Completion{
				SubscriptionID: "a",
				Date:           time.Date(2025, 4, i, 0, 0, 0, 0, time.UTC),
				Completed:      true,
			})
		}
		// 20 completed days in May 2025 (31 days): avg 0.65 rounds to 1.
		for i := 1; i <= 20; i++ {
			completions = append(completions, Completion{
				SubscriptionID: "a",
				Date:           time.Date(2025, 5, i, 0, 0, 0, 0, time.UTC),
				Completed:      true,
			})
		}

		report, err := Aggregate(AggregateInput{
			Subscriptions:  []SubscriptionStreak{{SubscriptionID: "a"}},
			Completions:    completions,
			Window:         WindowYear,
			MonthlyBuckets: true,
			Today:          today,
		})
		require.NoError(t, err)

		byMonth := make(map[string]int)
		for _, m := range report.Months {
			byMonth[m.Month] = m.Completed
		}
		assert.Equal(t, 0, byMonth["2025-04"])
		assert.Equal(t, 1, byMonth["2025-05"])
	})

	t.Run("buckets preserve chronological order", func(t *testing.T) {
		report, err := Aggregate(AggregateInput{
			Window:         WindowAll,
			MonthlyBuckets: true,
			Today:          today,
		})
		require.NoError(t, err)

		for i := 1; i < len(report.Months); i++ {
			assert.Less(t, report.Months[i-1].Month, report.Months[i].Month)
		}
	})
}
