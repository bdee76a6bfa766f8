package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/mlorenzato/ritmo/internal/core/domain"
)

type PostgresSubscriptionRepository struct {
	db *sqlx.DB
}

func NewPostgresSubscriptionRepository(db *sqlx.DB) *PostgresSubscriptionRepository {
	return &PostgresSubscriptionRepository{db: db}
}

func (r *PostgresSubscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) error {
	query := `
		INSERT INTO subscriptions (
			id, user_id, habit_id, current_streak, max_streak,
			version, created_at, updated_at
		) VALUES (
			:id, :user_id, :habit_id, :current_streak, :max_streak,
			:version, :created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, sub)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code == "23505" {
				return domain.ErrAlreadySubscribed
			}
			if pqErr.Code == "23503" {
				return domain.ErrHabitNotFound
			}
		}
		return fmt.Errorf("failed to insert subscription: %w", err)
	}

	return nil
}

func (r *PostgresSubscriptionRepository) GetByID(ctx context.Context, id string) (*domain.Subscription, error) {
	var sub domain.Subscription

	err := r.db.GetContext(ctx, &sub, `SELECT * FROM subscriptions WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}

	return &sub, nil
}

func (r *PostgresSubscriptionRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Subscription, error) {
	subs := []*domain.Subscription{}

	query := `
		SELECT * FROM subscriptions
		WHERE user_id = $1
		ORDER BY created_at ASC`

	if err := r.db.SelectContext(ctx, &subs, query, userID); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	return subs, nil
}

// UpdateStreaks is the single write path for streak pairs. The version
// predicate serializes concurrent recomputes: losing writers get
// ErrSubscriptionConflict and must recompute against the fresh row.
func (r *PostgresSubscriptionRepository) UpdateStreaks(ctx context.Context, id string, current, max, version int) error {
	query := `
		UPDATE subscriptions
		SET current_streak = $1,
		    max_streak = $2,
		    updated_at = NOW(),
		    version = version + 1
		WHERE id = $3 AND version = $4`

	res, err := r.db.ExecContext(ctx, query, current, max, id, version)
	if err != nil {
		return fmt.Errorf("streak update failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		var count int
		if checkErr := r.db.GetContext(ctx, &count, `SELECT count(*) FROM subscriptions WHERE id = $1`, id); checkErr != nil {
			return fmt.Errorf("existence check failed: %w", checkErr)
		}
		if count == 0 {
			return domain.ErrSubscriptionNotFound
		}
		return domain.ErrSubscriptionConflict
	}

	return nil
}

func (r *PostgresSubscriptionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete query failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrSubscriptionNotFound
	}

	return nil
}

func (r *PostgresSubscriptionRepository) ListIDs(ctx context.Context) ([]string, error) {
	ids := []string{}

	if err := r.db.SelectContext(ctx, &ids, `SELECT id FROM subscriptions`); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	return ids, nil
}
