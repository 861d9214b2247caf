package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"scamshield/internal/domain/models"
)

// MemoryOutbox keeps pending submissions in process memory. Used when no
// database is configured; contents are lost on restart.
type MemoryOutbox struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*models.PendingSubmission
}

// NewMemoryOutbox creates an empty in-memory outbox
func NewMemoryOutbox() *MemoryOutbox {
	return &MemoryOutbox{rows: make(map[uuid.UUID]*models.PendingSubmission)}
}

// Enqueue stores a copy of s
// Durable is false: rows live only as long as the process
func (o *MemoryOutbox) Durable() bool { return false }

func (o *MemoryOutbox) Enqueue(_ context.Context, s *models.PendingSubmission) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	cp := *s
	o.rows[s.ID] = &cp
	return nil
}

// Due returns up to limit pending submissions due at now, oldest first
func (o *MemoryOutbox) Due(_ context.Context, now time.Time, limit int) ([]*models.PendingSubmission, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	var out []*models.PendingSubmission
	for _, s := range o.rows {
		if s.Status == models.SubmissionPending && !s.NextAttemptAt.After(now) {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].NextAttemptAt.Equal(out[j].NextAttemptAt) {
			return out[i].NextAttemptAt.Before(out[j].NextAttemptAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ListPending returns pending submissions of kind, newest first
func (o *MemoryOutbox) ListPending(_ context.Context, kind models.SubmissionKind, limit int) ([]*models.PendingSubmission, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	var out []*models.PendingSubmission
	for _, s := range o.rows {
		if s.Status == models.SubmissionPending && s.Kind == kind {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Update stores the delivery state of s. Delivered rows are dropped.
func (o *MemoryOutbox) Update(_ context.Context, s *models.PendingSubmission) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, ok := o.rows[s.ID]; !ok {
		return ErrNotFound
	}
	if s.Status == models.SubmissionDelivered {
		delete(o.rows, s.ID)
		return nil
	}
	cp := *s
	o.rows[s.ID] = &cp
	return nil
}

// CountPending returns the number of submissions awaiting delivery
func (o *MemoryOutbox) CountPending(_ context.Context) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	n := 0
	for _, s := range o.rows {
		if s.Status == models.SubmissionPending {
			n++
		}
	}
	return n, nil
}
