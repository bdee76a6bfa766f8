package workers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/mlorenzato/ritmo/internal/core/domain"
	"github.com/mlorenzato/ritmo/internal/core/streak"
)

type SubscriptionRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Subscription, error)
	UpdateStreaks(ctx context.Context, id string, current, max, version int) error
	ListIDs(ctx context.Context) ([]string, error)
}

type CompletionRepository interface {
	ListCompletedDates(ctx context.Context, subscriptionID string) ([]time.Time, error)
}

type ReconcileJob struct {
	SubscriptionID string
}

// StreakReconciler keeps stored streak pairs aligned with the completion
// history. Toggles recompute synchronously, but a stored current streak
// also goes stale at day rollover when a user simply stops completing, so
// a periodic sweep re-runs the same recomputation for every subscription.
type StreakReconciler struct {
	subRepo  SubscriptionRepository
	compRepo CompletionRepository
	jobs     chan ReconcileJob

	sweepEvery time.Duration
	now        func() time.Time
}

func NewStreakReconciler(subRepo SubscriptionRepository, compRepo CompletionRepository, sweepEvery time.Duration) *StreakReconciler {
	return &StreakReconciler{
		subRepo:    subRepo,
		compRepo:   compRepo,
		jobs:       make(chan ReconcileJob, 100),
		sweepEvery: sweepEvery,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (r *StreakReconciler) Start(ctx context.Context) {
	go func() {
		log.Println("Streak reconciler started in background...")

		ticker := time.NewTicker(r.sweepEvery)
		defer ticker.Stop()

		for {
			select {
			case job := <-r.jobs:
				r.processJob(ctx, job)
			case <-ticker.C:
				r.sweep(ctx)
			case <-ctx.Done():
				log.Println("Streak reconciler shutting down...")
				return
			}
		}
	}()
}

func (r *StreakReconciler) Enqueue(subscriptionID string) {
	select {
	case r.jobs <- ReconcileJob{SubscriptionID: subscriptionID}:
	default:
		log.Printf("Reconciler queue full! Dropping job for subscription %s", subscriptionID)
	}
}

func (r *StreakReconciler) sweep(ctx context.Context) {
	ids, err := r.subRepo.ListIDs(ctx)
	if err != nil {
		log.Printf("Reconciler sweep failed to list subscriptions: %v", err)
		return
	}

	for _, id := range ids {
		r.processJob(ctx, ReconcileJob{SubscriptionID: id})
	}
}

func (r *StreakReconciler) processJob(ctx context.Context, job ReconcileJob) {
	sub, err := r.subRepo.GetByID(ctx, job.SubscriptionID)
	if err != nil {
		log.Printf("Reconciler error fetching subscription %s: %v", job.SubscriptionID, err)
		return
	}

	dates, err := r.compRepo.ListCompletedDates(ctx, job.SubscriptionID)
	if err != nil {
		log.Printf("Reconciler error fetching completions for %s: %v", job.SubscriptionID, err)
		return
	}

	result, err := streak.Recompute(dates, r.now(), sub.MaxStreak)
	if err != nil {
		log.Printf("Reconciler recompute failed for %s: %v", job.SubscriptionID, err)
		return
	}

	if sub.CurrentStreak == result.Current && sub.MaxStreak == result.Max {
		return
	}

	err = r.subRepo.UpdateStreaks(ctx, sub.ID, result.Current, result.Max, sub.Version)
	if err != nil {
		// A concurrent toggle already stored a fresher pair; the next
		// sweep converges.
		if errors.Is(err, domain.ErrSubscriptionConflict) {
			return
		}
		log.Printf("Reconciler failed to update streaks for %s: %v", sub.ID, err)
		return
	}

	log.Printf("Streaks reconciled for %s: current=%d max=%d", sub.ID, result.Current, result.Max)
}
