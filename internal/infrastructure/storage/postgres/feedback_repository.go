package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"artha/internal/domain/feedback"
)

type FeedbackRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewFeedbackRepository(pool *pgxpool.Pool, log *slog.Logger) *FeedbackRepository {
	return &FeedbackRepository{
		pool: pool,
		log:  log.With("component", "feedback_repository"),
	}
}

const feedbackColumns = `id::text, name, email, type, message, status, replies, created_at`

func (r *FeedbackRepository) Create(ctx context.Context, e feedback.Entry) error {
	replies := e.Replies
	if replies == nil {
		replies = []feedback.Reply{}
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO feedback (id, name, email, type, message, status, replies, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.Name, e.Email, string(e.Type), e.Message, string(e.Status), replies, e.CreatedAt)
	if err != nil {
		r.log.Error("failed to create feedback", "error", err)
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

func (r *FeedbackRepository) List(ctx context.Context) ([]feedback.Entry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+feedbackColumns+` FROM feedback ORDER BY created_at DESC`)
	if err != nil {
		r.log.Error("failed to list feedback", "error", err)
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()

	var entries []feedback.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (r *FeedbackRepository) GroupCounts(ctx context.Context) ([]feedback.Count, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT type, status, COUNT(*) FROM feedback GROUP BY type, status`)
	if err != nil {
		return nil, fmt.Errorf("count feedback: %w", err)
	}
	defer rows.Close()

	var counts []feedback.Count
	for rows.Next() {
		var (
			typ, status string
			n           int
		)
		if err := rows.Scan(&typ, &status, &n); err != nil {
			return nil, fmt.Errorf("scan feedback count: %w", err)
		}
		counts = append(counts, feedback.Count{Type: feedback.Category(typ), Status: feedback.Status(status), N: n})
	}

	return counts, rows.Err()
}

func (r *FeedbackRepository) UpdateStatus(ctx context.Context, id string, status feedback.Status) (feedback.Entry, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE feedback SET status = $2 WHERE id = $1 RETURNING `+feedbackColumns,
		id, string(status))
	return scanEntry(row)
}

func (r *FeedbackRepository) AppendReply(ctx context.Context, id string, reply feedback.Reply) (feedback.Entry, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE feedback SET replies = replies || jsonb_build_array($2::jsonb)
		 WHERE id = $1 RETURNING `+feedbackColumns,
		id, reply)
	return scanEntry(row)
}

func scanEntry(row pgx.Row) (feedback.Entry, error) {
	var (
		e           feedback.Entry
		typ, status string
	)
	err := row.Scan(&e.ID, &e.Name, &e.Email, &typ, &e.Message, &status, &e.Replies, &e.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return feedback.Entry{}, feedback.ErrNotFound
		}
		return feedback.Entry{}, fmt.Errorf("scan feedback: %w", err)
	}
	e.Type = feedback.Category(typ)
	e.Status = feedback.Status(status)
	if e.Replies == nil {
		e.Replies = []feedback.Reply{}
	}
	return e, nil
}
