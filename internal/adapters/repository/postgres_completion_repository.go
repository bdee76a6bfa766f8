package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/mlorenzato/ritmo/internal/core/domain"
)

type PostgresCompletionRepository struct {
	db *sqlx.DB
}

func NewPostgresCompletionRepository(db *sqlx.DB) *PostgresCompletionRepository {
	return &PostgresCompletionRepository{db: db}
}

func (r *PostgresCompletionRepository) Create(ctx context.Context, c *domain.Completion) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	query := `
		INSERT INTO completions (
			id, subscription_id, date, status, created_at, updated_at
		) VALUES (
			:id, :subscription_id, :date, :status, :created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, c)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			// One row per (subscription, day).
			if pqErr.Code == "23505" {
				return domain.ErrCompletionConflict
			}
			if pqErr.Code == "23503" {
				return domain.ErrSubscriptionNotFound
			}
		}
		return fmt.Errorf("failed to insert completion: %w", err)
	}

	return nil
}

func (r *PostgresCompletionRepository) Update(ctx context.Context, c *domain.Completion) error {
	query := `
		UPDATE completions
		SET status = :status, updated_at = :updated_at
		WHERE id = :id`

	res, err := r.db.NamedExecContext(ctx, query, c)
	if err != nil {
		return fmt.Errorf("update query failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrCompletionNotFound
	}

	return nil
}

func (r *PostgresCompletionRepository) GetByDay(ctx context.Context, subscriptionID string, day time.Time) (*domain.Completion, error) {
	var c domain.Completion

	query := `SELECT * FROM completions WHERE subscription_id = $1 AND date = $2`

	err := r.db.GetContext(ctx, &c, query, subscriptionID, day)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCompletionNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}

	return &c, nil
}

func (r *PostgresCompletionRepository) ListCompletedDates(ctx context.Context, subscriptionID string) ([]time.Time, error) {
	dates := []time.Time{}

	query := `
		SELECT date FROM completions
		WHERE subscription_id = $1 AND status = $2
		ORDER BY date DESC`

	if err := r.db.SelectContext(ctx, &dates, query, subscriptionID, domain.StatusCompleted); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	return dates, nil
}

func (r *PostgresCompletionRepository) ListByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.Completion, error) {
	completions := []*domain.Completion{}

	query := `
		SELECT c.* FROM completions c
		JOIN subscriptions s ON s.id = c.subscription_id
		WHERE s.user_id = $1
		  AND c.date >= $2
		  AND c.date <= $3
		ORDER BY c.date ASC`

	if err := r.db.SelectContext(ctx, &completions, query, userID, from, to); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	return completions, nil
}
