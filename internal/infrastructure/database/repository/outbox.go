package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"scamshield/internal/domain/models"
)

// ErrNotFound is returned when a submission does not exist
var ErrNotFound = errors.New("submission not found")

// OutboxRepository persists pending submissions in PostgreSQL
type OutboxRepository struct {
	pool *pgxpool.Pool
}

// NewOutboxRepository creates a new outbox repository
func NewOutboxRepository(pool *pgxpool.Pool) *OutboxRepository {
	return &OutboxRepository{pool: pool}
}

// Durable is true: rows survive restarts
func (r *OutboxRepository) Durable() bool { return true }

const submissionColumns = `id, kind, payload, status, attempts, last_error, created_at, next_attempt_at`

// Enqueue inserts a new pending submission
func (r *OutboxRepository) Enqueue(ctx context.Context, s *models.PendingSubmission) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	query := `
		INSERT INTO pending_submissions (` + submissionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		s.ID, s.Kind, []byte(s.Payload), s.Status, s.Attempts, s.LastError, s.CreatedAt, s.NextAttemptAt,
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue submission: %w", err)
	}
	return nil
}

// Due returns up to limit pending submissions whose next attempt is at or
// before now, oldest first
func (r *OutboxRepository) Due(ctx context.Context, now time.Time, limit int) ([]*models.PendingSubmission, error) {
	query := `
		SELECT ` + submissionColumns + `
		FROM pending_submissions
		WHERE status = 'pending' AND next_attempt_at <= $1
		ORDER BY next_attempt_at, created_at
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query due submissions: %w", err)
	}
	return collectSubmissions(rows)
}

// ListPending returns pending submissions of kind, newest first
func (r *OutboxRepository) ListPending(ctx context.Context, kind models.SubmissionKind, limit int) ([]*models.PendingSubmission, error) {
	query := `
		SELECT ` + submissionColumns + `
		FROM pending_submissions
		WHERE status = 'pending' AND kind = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending submissions: %w", err)
	}
	return collectSubmissions(rows)
}

// Update stores the delivery state of s
func (r *OutboxRepository) Update(ctx context.Context, s *models.PendingSubmission) error {
	query := `
		UPDATE pending_submissions
		SET status = $2, attempts = $3, last_error = $4, next_attempt_at = $5
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, s.ID, s.Status, s.Attempts, s.LastError, s.NextAttemptAt)
	if err != nil {
		return fmt.Errorf("failed to update submission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountPending returns the number of submissions awaiting delivery
func (r *OutboxRepository) CountPending(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM pending_submissions WHERE status = 'pending'`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending submissions: %w", err)
	}
	return n, nil
}

func collectSubmissions(rows pgx.Rows) ([]*models.PendingSubmission, error) {
	defer rows.Close()

	var out []*models.PendingSubmission
	for rows.Next() {
		var (
			s       models.PendingSubmission
			payload []byte
		)
		if err := rows.Scan(
			&s.ID, &s.Kind, &payload, &s.Status, &s.Attempts, &s.LastError, &s.CreatedAt, &s.NextAttemptAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		s.Payload = payload
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate submissions: %w", err)
	}
	return out, nil
}
