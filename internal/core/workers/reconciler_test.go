package workers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mlorenzato/ritmo/internal/core/domain"
)

type fakeSubRepo struct {
	subs    map[string]*domain.Subscription
	updates int
}

func (f *fakeSubRepo) GetByID(ctx context.Context, id string) (*domain.Subscription, error) {
	s, ok := f.subs[id]
	if !ok {
		return nil, domain.ErrSubscriptionNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSubRepo) UpdateStreaks(ctx context.Context, id string, current, max, version int) error {
	s, ok := f.subs[id]
	if !ok {
		return domain.ErrSubscriptionNotFound
	}
	if s.Version != version {
		return domain.ErrSubscriptionConflict
	}
	s.CurrentStreak = current
	s.MaxStreak = max
	s.Version++
	f.updates++
	return nil
}

func (f *fakeSubRepo) ListIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(f.subs))
	for id := range f.subs {
		ids = append(ids, id)
	}
	return ids, nil
}

type fakeCompletionRepo struct {
	dates map[string][]time.Time
}

func (f *fakeCompletionRepo) ListCompletedDates(ctx context.Context, subscriptionID string) ([]time.Time, error) {
	return f.dates[subscriptionID], nil
}

func TestStreakReconciler_ProcessJob(t *testing.T) {
	ctx := context.Background()
	today := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("Day rollover zeroes a stale current streak", func(t *testing.T) {
		// Last completion 3 days ago; the stored pair still says current=4.
		subRepo := &fakeSubRepo{subs: map[string]*domain.Subscription{
			"s1": {ID: "s1", CurrentStreak: 4, MaxStreak: 4, Version: 1},
		}}
		compRepo := &fakeCompletionRepo{dates: map[string][]time.Time{
			"s1": {
				today.AddDate(0, 0, -3),
				today.AddDate(0, 0, -4),
				today.AddDate(0, 0, -5),
				today.AddDate(0, 0, -6),
			},
		}}

		r := NewStreakReconciler(subRepo, compRepo, time.Hour)
		r.now = func() time.Time { return today }

		r.processJob(ctx, ReconcileJob{SubscriptionID: "s1"})

		assert.Equal(t, 0, subRepo.subs["s1"].CurrentStreak)
		assert.Equal(t, 4, subRepo.subs["s1"].MaxStreak, "max survives the break")
	})

	t.Run("Already consistent pair is not rewritten", func(t *testing.T) {
		subRepo := &fakeSubRepo{subs: map[string]*domain.Subscription{
			"s1": {ID: "s1", CurrentStreak: 1, MaxStreak: 1, Version: 1},
		}}
		compRepo := &fakeCompletionRepo{dates: map[string][]time.Time{
			"s1": {today},
		}}

		r := NewStreakReconciler(subRepo, compRepo, time.Hour)
		r.now = func() time.Time { return today }

		r.processJob(ctx, ReconcileJob{SubscriptionID: "s1"})

		assert.Equal(t, 0, subRepo.updates)
	})

	t.Run("Sweep covers every subscription", func(t *testing.T) {
		subRepo := &fakeSubRepo{subs: map[string]*domain.Subscription{
			"s1": {ID: "s1", CurrentStreak: 9, MaxStreak: 9, Version: 1},
			"s2": {ID: "s2", CurrentStreak: 9, MaxStreak: 9, Version: 1},
		}}
		compRepo := &fakeCompletionRepo{dates: map[string][]time.Time{}}

		r := NewStreakReconciler(subRepo, compRepo, time.Hour)
		r.now = func() time.Time { return today }

		r.sweep(ctx)

		assert.Equal(t, 0, subRepo.subs["s1"].CurrentStreak)
		assert.Equal(t, 0, subRepo.subs["s2"].CurrentStreak)
		assert.Equal(t, 2, subRepo.updates)
	})
}
