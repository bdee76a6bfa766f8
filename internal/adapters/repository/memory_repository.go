package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mlorenzato/ritmo/internal/core/domain"
)

// In-memory implementations of the repository ports, used by handler tests
// and local runs without a database.

type InMemoryUserRepository struct {
	store map[string]*domain.User

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{store: make(map[string]*domain.User)}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.store {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}

	r.store[user.ID] = user
	return nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.store[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.store {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type InMemoryCategoryRepository struct {
	store map[string]*domain.Category

	mu sync.RWMutex
}

func NewInMemoryCategoryRepository() *InMemoryCategoryRepository {
	return &InMemoryCategoryRepository{store: make(map[string]*domain.Category)}
}

func (r *InMemoryCategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[c.ID] = c
	return nil
}

func (r *InMemoryCategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.store[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	return c, nil
}

func (r *InMemoryCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var categories []*domain.Category
	for _, c := range r.store {
		categories = append(categories, c)
	}

	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})

	return categories, nil
}

func (r *InMemoryCategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[c.ID]; !ok {
		return domain.ErrCategoryNotFound
	}
	r.store[c.ID] = c
	return nil
}

func (r *InMemoryCategoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(r.store, id)
	return nil
}

type InMemoryHabitRepository struct {
	store map[string]*domain.Habit

	mu sync.RWMutex
}

func NewInMemoryHabitRepository() *InMemoryHabitRepository {
	return &InMemoryHabitRepository{store: make(map[string]*domain.Habit)}
}

func (r *InMemoryHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[habit.ID] = habit
	return nil
}

func (r *InMemoryHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habit, ok := r.store[id]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	return habit, nil
}

func (r *InMemoryHabitRepository) ListCatalog(ctx context.Context, userID string) ([]*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var habits []*domain.Habit
	for _, h := range r.store {
		if h.VisibleTo(userID) {
			habits = append(habits, h)
		}
	}

	sort.Slice(habits, func(i, j int) bool {
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})

	return habits, nil
}

func (r *InMemoryHabitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[habit.ID]; !ok {
		return domain.ErrHabitNotFound
	}
	r.store[habit.ID] = habit
	return nil
}

func (r *InMemoryHabitRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrHabitNotFound
	}
	delete(r.store, id)
	return nil
}

type InMemorySubscriptionRepository struct {
	store map[string]*domain.Subscription

	mu sync.RWMutex
}

func NewInMemorySubscriptionRepository() *InMemorySubscriptionRepository {
	return &InMemorySubscriptionRepository{store: make(map[string]*domain.Subscription)}
}

func (r *InMemorySubscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.store {
		if s.UserID == sub.UserID && s.HabitID == sub.HabitID {
			return domain.ErrAlreadySubscribed
		}
	}

	r.store[sub.ID] = sub
	return nil
}

func (r *InMemorySubscriptionRepository) GetByID(ctx context.Context, id string) (*domain.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sub, ok := r.store[id]
	if !ok {
		return nil, domain.ErrSubscriptionNotFound
	}
	cp := *sub
	return &cp, nil
}

func (r *InMemorySubscriptionRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var subs []*domain.Subscription
	for _, s := range r.store {
		if s.UserID == userID {
			cp := *s
			subs = append(subs, &cp)
		}
	}

	sort.Slice(subs, func(i, j int) bool {
		return subs[i].CreatedAt.Before(subs[j].CreatedAt)
	})

	return subs, nil
}

func (r *InMemorySubscriptionRepository) UpdateStreaks(ctx context.Context, id string, current, max, version int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, ok := r.store[id]
	if !ok {
		return domain.ErrSubscriptionNotFound
	}
	if sub.Version != version {
		return domain.ErrSubscriptionConflict
	}

	if err := sub.SetStreaks(current, max); err != nil {
		return err
	}
	sub.Version++
	return nil
}

func (r *InMemorySubscriptionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrSubscriptionNotFound
	}
	delete(r.store, id)
	return nil
}

func (r *InMemorySubscriptionRepository) ListIDs(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.store))
	for id := range r.store {
		ids = append(ids, id)
	}
	return ids, nil
}

type InMemoryCompletionRepository struct {
	store map[string]*domain.Completion
	subs  *InMemorySubscriptionRepository

	mu sync.RWMutex
}

// NewInMemoryCompletionRepository needs the subscription store to resolve
// the user join in ListByUserAndRange.
func NewInMemoryCompletionRepository(subs *InMemorySubscriptionRepository) *InMemoryCompletionRepository {
	return &InMemoryCompletionRepository{
		store: make(map[string]*domain.Completion),
		subs:  subs,
	}
}

func (r *InMemoryCompletionRepository) Create(ctx context.Context, c *domain.Completion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.store {
		if existing.SubscriptionID == c.SubscriptionID && existing.Date.Equal(c.Date) {
			return domain.ErrCompletionConflict
		}
	}

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	r.store[c.ID] = c
	return nil
}

func (r *InMemoryCompletionRepository) Update(ctx context.Context, c *domain.Completion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[c.ID]; !ok {
		return domain.ErrCompletionNotFound
	}
	r.store[c.ID] = c
	return nil
}

func (r *InMemoryCompletionRepository) GetByDay(ctx context.Context, subscriptionID string, day time.Time) (*domain.Completion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.store {
		if c.SubscriptionID == subscriptionID && c.Date.Equal(day) {
			return c, nil
		}
	}
	return nil, domain.ErrCompletionNotFound
}

func (r *InMemoryCompletionRepository) ListCompletedDates(ctx context.Context, subscriptionID string) ([]time.Time, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var dates []time.Time
	for _, c := range r.store {
		if c.SubscriptionID == subscriptionID && c.IsCompleted() {
			dates = append(dates, c.Date)
		}
	}

	sort.Slice(dates, func(i, j int) bool {
		return dates[i].After(dates[j])
	})

	return dates, nil
}

func (r *InMemoryCompletionRepository) ListByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.Completion, error) {
	subs, err := r.subs.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	owned := make(map[string]bool, len(subs))
	for _, s := range subs {
		owned[s.ID] = true
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var completions []*domain.Completion
	for _, c := range r.store {
		if !owned[c.SubscriptionID] {
			continue
		}
		if c.Date.Before(from) || c.Date.After(to) {
			continue
		}
		completions = append(completions, c)
	}

	sort.Slice(completions, func(i, j int) bool {
		return completions[i].Date.Before(completions[j].Date)
	})

	return completions, nil
}
