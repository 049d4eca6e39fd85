package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"artha/internal/domain/history"
)

// HistoryRepository keeps each user's ledger in the users.history JSONB column.
type HistoryRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewHistoryRepository(pool *pgxpool.Pool, log *slog.Logger) *HistoryRepository {
	return &HistoryRepository{
		pool: pool,
		log:  log.With("component", "history_repository"),
	}
}

// Update holds the user's row lock for the whole read-modify-write, so concurrent
// appends for one user queue up instead of overwriting each other.
func (r *HistoryRepository) Update(ctx context.Context, userID string, fn func(*history.Ledger) error) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var stored []history.Record
		err := tx.QueryRow(ctx,
			`SELECT history FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&stored)
		if err != nil {
			if isNoRows(err) {
				return history.ErrNotFound
			}
			return fmt.Errorf("lock history: %w", err)
		}

		ledger := history.NewLedger(stored)
		if err := fn(ledger); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx,
			`UPDATE users SET history = $2 WHERE id = $1`, userID, ledger.Entries()); err != nil {
			return fmt.Errorf("store history: %w", err)
		}

		return nil
	})
}

func (r *HistoryRepository) List(ctx context.Context, userID string) ([]history.Record, error) {
	var stored []history.Record
	err := r.pool.QueryRow(ctx,
		`SELECT history FROM users WHERE id = $1`, userID).Scan(&stored)
	if err != nil {
		if isNoRows(err) {
			return nil, history.ErrNotFound
		}
		r.log.Error("failed to load history", "user_id", userID, "error", err)
		return nil, fmt.Errorf("load history: %w", err)
	}

	return history.NewLedger(stored).Entries(), nil
}
