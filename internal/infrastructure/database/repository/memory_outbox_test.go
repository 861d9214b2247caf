package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"scamshield/internal/domain/models"
)

func newSubmission(t *testing.T, kind models.SubmissionKind, created time.Time) *models.PendingSubmission {
	t.Helper()
	s, err := models.NewPendingSubmission(kind, map[string]string{"k": "v"})
	if err != nil {
		t.Fatal(err)
	}
	s.CreatedAt = created
	s.NextAttemptAt = created
	return s
}

func TestMemoryOutboxDueOrdering(t *testing.T) {
	ctx := context.Background()
	o := NewMemoryOutbox()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	late := newSubmission(t, models.SubmissionFeedback, base.Add(time.Minute))
	early := newSubmission(t, models.SubmissionScamReport, base)
	future := newSubmission(t, models.SubmissionFeedback, base.Add(time.Hour))
	for _, s := range []*models.PendingSubmission{late, early, future} {
		if err := o.Enqueue(ctx, s); err != nil {
			t.Fatal(err)
		}
	}

	due, err := o.Due(ctx, base.Add(2*time.Minute), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(due) != 2 || due[0].ID != early.ID || due[1].ID != late.ID {
		t.Fatalf("due = %v", due)
	}

	due, _ = o.Due(ctx, base.Add(2*time.Minute), 1)
	if len(due) != 1 {
		t.Errorf("limit ignored: %d rows", len(due))
	}
}

func TestMemoryOutboxUpdate(t *testing.T) {
	ctx := context.Background()
	o := NewMemoryOutbox()
	s := newSubmission(t, models.SubmissionCommunityReport, time.Now())
	_ = o.Enqueue(ctx, s)

	s.Attempts = 1
	s.LastError = "backend network"
	s.NextAttemptAt = s.NextAttemptAt.Add(time.Minute)
	if err := o.Update(ctx, s); err != nil {
		t.Fatal(err)
	}
	if due, _ := o.Due(ctx, time.Now(), 10); len(due) != 0 {
		t.Errorf("rescheduled row is still due")
	}

	pending, _ := o.ListPending(ctx, models.SubmissionCommunityReport, 10)
	if len(pending) != 1 || pending[0].Attempts != 1 {
		t.Fatalf("pending = %v", pending)
	}

	s.Status = models.SubmissionDelivered
	if err := o.Update(ctx, s); err != nil {
		t.Fatal(err)
	}
	if n, _ := o.CountPending(ctx); n != 0 {
		t.Errorf("count = %d after delivery", n)
	}
	if err := o.Update(ctx, s); !errors.Is(err, ErrNotFound) {
		t.Errorf("update of delivered row err = %v, want ErrNotFound", err)
	}
}

func TestMemoryOutboxListPendingNewestFirst(t *testing.T) {
	ctx := context.Background()
	o := NewMemoryOutbox()
	base := time.Now()
	older := newSubmission(t, models.SubmissionCommunityReport, base)
	newer := newSubmission(t, models.SubmissionCommunityReport, base.Add(time.Second))
	other := newSubmission(t, models.SubmissionFeedback, base.Add(2*time.Second))
	for _, s := range []*models.PendingSubmission{older, newer, other} {
		_ = o.Enqueue(ctx, s)
	}

	got, _ := o.ListPending(ctx, models.SubmissionCommunityReport, 10)
	if len(got) != 2 || got[0].ID != newer.ID || got[1].ID != older.ID {
		t.Errorf("got %v", got)
	}
}
