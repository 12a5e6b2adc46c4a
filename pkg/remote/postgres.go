package remote

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresClient implements SyncClient against the remote Postgres store.
type PostgresClient struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// NewPostgresClient wraps an existing connection pool.
func NewPostgresClient(pool *pgxpool.Pool, log *slog.Logger) *PostgresClient {
	if log == nil {
		log = slog.Default()
	}
	return &PostgresClient{pool: pool, log: log}
}

func (c *PostgresClient) UpsertSubscription(ctx context.Context, row SubscriptionRow) error {
	// Pure free users have no transaction id; there is nothing to key a
	// server record on, and that is not an error.
	if row.TransactionID == "" {
		return nil
	}

	const q = `
		INSERT INTO subscriptions (id, original_transaction_id, plan_id, is_active, start_date, end_date, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (original_transaction_id) DO UPDATE SET
			plan_id = EXCLUDED.plan_id,
			is_active = EXCLUDED.is_active,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			updated_at = EXCLUDED.updated_at`

	_, err := c.pool.Exec(ctx, q,
		uuid.New(), row.TransactionID, row.PlanID, row.IsActive,
		row.StartDate, row.EndDate, time.Now().UTC())
	if err != nil {
		return errors.Join(ErrUpsertFailed, err)
	}
	return nil
}

func (c *PostgresClient) UpsertDailyUsage(ctx context.Context, row UsageRow) error {
	if row.TransactionID == "" {
		return nil
	}

	const q = `
		INSERT INTO daily_usage (id, original_transaction_id, usage_date, count, start_date, end_date, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (original_transaction_id, usage_date) DO UPDATE SET
			count = EXCLUDED.count,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			updated_at = EXCLUDED.updated_at`

	_, err := c.pool.Exec(ctx, q,
		uuid.New(), row.TransactionID, row.Date, row.Count,
		row.StartDate, row.EndDate, time.Now().UTC())
	if err != nil {
		return errors.Join(ErrUpsertFailed, err)
	}
	return nil
}

func (c *PostgresClient) GetSubscription(ctx context.Context, transactionID string) (*SubscriptionRow, error) {
	if transactionID == "" {
		return nil, ErrNotFound
	}

	const q = `
		SELECT original_transaction_id, plan_id, is_active, start_date, end_date, updated_at
		FROM subscriptions
		WHERE original_transaction_id = $1`

	var row SubscriptionRow
	err := c.pool.QueryRow(ctx, q, transactionID).Scan(
		&row.TransactionID, &row.PlanID, &row.IsActive,
		&row.StartDate, &row.EndDate, &row.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Join(ErrQueryFailed, err)
	}
	return &row, nil
}

func (c *PostgresClient) GetDailyUsage(ctx context.Context, transactionID, date string) (*UsageRow, error) {
	if transactionID == "" {
		return nil, ErrNotFound
	}

	const q = `
		SELECT original_transaction_id, usage_date, count, start_date, end_date, updated_at
		FROM daily_usage
		WHERE original_transaction_id = $1 AND usage_date = $2`

	var row UsageRow
	err := c.pool.QueryRow(ctx, q, transactionID, date).Scan(
		&row.TransactionID, &row.Date, &row.Count,
		&row.StartDate, &row.EndDate, &row.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Join(ErrQueryFailed, err)
	}
	return &row, nil
}
