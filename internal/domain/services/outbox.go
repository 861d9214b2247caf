package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"scamshield/internal/config"
	"scamshield/internal/domain/models"
	"scamshield/internal/i18n"
	"scamshield/internal/infrastructure/backend"
	"scamshield/internal/infrastructure/cache"
	"scamshield/internal/metrics"
	"scamshield/pkg/logger"
)

// Backoff bounds for redelivery
const (
	outboxBaseBackoff = 30 * time.Second
	outboxMaxBackoff  = time.Hour
)

// Flush lock held while a process drains a shared store. The holder
// extends it every outboxLockRefresh for as long as the pass runs.
const (
	OutboxLockKey     = "outbox:flush"
	outboxLockTTL     = 5 * time.Minute
	outboxLockRefresh = time.Minute
)

// defaultFlushInterval applies when the configured interval is not positive
const defaultFlushInterval = time.Minute

// OutboxStore persists submissions awaiting delivery
type OutboxStore interface {
	Enqueue(ctx context.Context, s *models.PendingSubmission) error
	Due(ctx context.Context, now time.Time, limit int) ([]*models.PendingSubmission, error)
	ListPending(ctx context.Context, kind models.SubmissionKind, limit int) ([]*models.PendingSubmission, error)
	Update(ctx context.Context, s *models.PendingSubmission) error
	CountPending(ctx context.Context) (int, error)
}

// SubmissionBackend is the part of the remote API outbox rows are sent to
type SubmissionBackend interface {
	SubmitCommunityReport(ctx context.Context, req models.CommunityReportRequest) (*models.CommunityReport, error)
	SubmitReport(ctx context.Context, req models.ReportRequest) (*models.Report, error)
	SubmitFeedback(ctx context.Context, req models.FeedbackRequest) (*models.Feedback, error)
}

// Outbox queues submissions and redelivers them in the background
type Outbox struct {
	store   OutboxStore
	backend SubmissionBackend
	cfg     config.OutboxConfig
	metrics *metrics.Metrics
	logger  *logger.Logger
	locker  cache.Locker
	now     func() time.Time

	lockTTL     time.Duration
	lockRefresh time.Duration

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
}

// FlushReport summarizes one redelivery pass
type FlushReport struct {
	Attempted   int `json:"attempted"`
	Delivered   int `json:"delivered"`
	Rescheduled int `json:"rescheduled"`
	Failed      int `json:"failed"`
}

// NewOutbox creates an outbox over store
func NewOutbox(store OutboxStore, b SubmissionBackend, cfg config.OutboxConfig, m *metrics.Metrics, log *logger.Logger) *Outbox {
	return &Outbox{
		store:   store,
		backend: b,
		cfg:     cfg,
		metrics: m,
		logger:  log.WithComponent("outbox"),
		now:     time.Now,
		stopCh:  make(chan struct{}),

		lockTTL:     outboxLockTTL,
		lockRefresh: outboxLockRefresh,
	}
}

// durableStore is implemented by stores that can say whether queued rows
// survive a restart
type durableStore interface {
	Durable() bool
}

// Durable reports whether queued submissions survive the process
func (o *Outbox) Durable() bool {
	if d, ok := o.store.(durableStore); ok {
		return d.Durable()
	}
	return true
}

// QueuedNotice tells the user what became of a queued submission
func (o *Outbox) QueuedNotice(lang i18n.Lang) string {
	if o.Durable() {
		return i18n.T(lang, "notice_queued")
	}
	return i18n.T(lang, "notice_queued_memory")
}

// SetLocker makes every background flush hold l's outbox lock, so
// processes sharing one store never deliver the same row twice
func (o *Outbox) SetLocker(l cache.Locker) {
	o.locker = l
}

// Enqueue stores payload for later delivery as kind
func (o *Outbox) Enqueue(ctx context.Context, kind models.SubmissionKind, payload any) (*models.PendingSubmission, error) {
	sub, err := models.NewPendingSubmission(kind, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s submission: %w", kind, err)
	}
	now := o.now().UTC()
	sub.CreatedAt = now
	sub.NextAttemptAt = now

	if err := o.store.Enqueue(ctx, sub); err != nil {
		return nil, err
	}
	o.refreshGauge(ctx)
	o.logger.Info().Str("id", sub.ID.String()).Str("kind", string(kind)).Msg("submission queued")
	return sub, nil
}

// Pending lists queued submissions of kind, newest first
func (o *Outbox) Pending(ctx context.Context, kind models.SubmissionKind, limit int) ([]*models.PendingSubmission, error) {
	return o.store.ListPending(ctx, kind, limit)
}

// Start runs the redelivery loop until ctx is cancelled or Stop is called
func (o *Outbox) Start(ctx context.Context) error {
	o.mu.Lock()
	if o.running {
		o.mu.Unlock()
		return nil
	}
	o.running = true
	o.stopCh = make(chan struct{})
	stopCh := o.stopCh
	o.mu.Unlock()

	interval := o.cfg.FlushInterval
	if interval <= 0 {
		o.logger.Warn().Dur("configured", interval).Dur("interval", defaultFlushInterval).Msg("non-positive flush interval, using default")
		interval = defaultFlushInterval
	}
	o.logger.Info().Dur("interval", interval).Msg("outbox flusher started")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			o.Stop()
			return ctx.Err()
		case <-stopCh:
			return nil
		case <-ticker.C:
			if _, _, err := o.FlushLocked(ctx); err != nil {
				o.logger.Error().Err(err).Msg("outbox flush failed")
			}
		}
	}
}

// Stop stops the redelivery loop
func (o *Outbox) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.running {
		return
	}
	o.running = false
	close(o.stopCh)
	o.logger.Info().Msg("outbox flusher stopped")
}

// Flush attempts delivery of every due submission once
func (o *Outbox) Flush(ctx context.Context) (FlushReport, error) {
	var report FlushReport

	batch := o.cfg.BatchSize
	if batch <= 0 {
		batch = 25
	}
	due, err := o.store.Due(ctx, o.now().UTC(), batch)
	if err != nil {
		return report, err
	}

	for _, sub := range due {
		if ctx.Err() != nil {
			break
		}
		report.Attempted++
		sendErr := o.deliver(ctx, sub)
		if ctx.Err() != nil {
			// cancelled mid-send; the row stays due for the next pass
			break
		}
		sub.Attempts++

		switch {
		case sendErr == nil:
			sub.Status = models.SubmissionDelivered
			sub.LastError = ""
			report.Delivered++
		case !backend.IsFallbackEligible(sendErr) || sub.Attempts >= o.cfg.MaxAttempts:
			sub.Status = models.SubmissionFailed
			sub.LastError = sendErr.Error()
			report.Failed++
			o.logger.Warn().Err(sendErr).Str("id", sub.ID.String()).Int("attempts", sub.Attempts).Msg("giving up on submission")
		default:
			sub.LastError = sendErr.Error()
			sub.NextAttemptAt = o.now().UTC().Add(Backoff(sub.Attempts))
			report.Rescheduled++
		}

		if err := o.store.Update(ctx, sub); err != nil {
			o.logger.Error().Err(err).Str("id", sub.ID.String()).Msg("failed to record delivery state")
		}
	}

	o.refreshGauge(ctx)
	if report.Attempted > 0 {
		o.logger.Info().
			Int("attempted", report.Attempted).
			Int("delivered", report.Delivered).
			Int("rescheduled", report.Rescheduled).
			Int("failed", report.Failed).
			Msg("outbox flushed")
	}
	return report, nil
}

// FlushLocked runs Flush while holding the outbox lock. ran is false when
// another process holds it. Without a locker it is Flush.
func (o *Outbox) FlushLocked(ctx context.Context) (report FlushReport, ran bool, err error) {
	if o.locker == nil {
		report, err = o.Flush(ctx)
		return report, true, err
	}

	acquired, err := o.locker.AcquireLock(ctx, OutboxLockKey, o.lockTTL)
	if err != nil {
		return report, false, fmt.Errorf("failed to acquire outbox lock: %w", err)
	}
	if !acquired {
		o.logger.Debug().Msg("another process is flushing, skipping")
		return report, false, nil
	}
	defer func() {
		if rerr := o.locker.ReleaseLock(context.WithoutCancel(ctx), OutboxLockKey); rerr != nil {
			o.logger.Warn().Err(rerr).Msg("failed to release outbox lock")
		}
	}()

	flushCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	refreshDone := make(chan struct{})
	go func() {
		defer close(refreshDone)
		o.holdLock(flushCtx, cancel)
	}()

	report, err = o.Flush(flushCtx)
	cancel()
	<-refreshDone
	return report, true, err
}

// holdLock extends the flush lock until ctx ends. Losing the lock cancels
// the pass so no row is sent while another process may own the batch.
func (o *Outbox) holdLock(ctx context.Context, lost context.CancelFunc) {
	ticker := time.NewTicker(o.lockRefresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			held, err := o.locker.RefreshLock(ctx, OutboxLockKey, o.lockTTL)
			if err != nil {
				o.logger.Warn().Err(err).Msg("failed to refresh outbox lock")
				continue
			}
			if !held {
				o.logger.Warn().Msg("outbox lock lost, stopping flush")
				lost()
				return
			}
		}
	}
}

// Backoff returns the delay before attempt n+1: 30s doubling, capped at 1h
func Backoff(attempts int) time.Duration {
	d := outboxBaseBackoff
	for i := 1; i < attempts; i++ {
		d *= 2
		if d >= outboxMaxBackoff {
			return outboxMaxBackoff
		}
	}
	return d
}

func (o *Outbox) deliver(ctx context.Context, sub *models.PendingSubmission) error {
	switch sub.Kind {
	case models.SubmissionCommunityReport:
		var req models.CommunityReportRequest
		if err := json.Unmarshal(sub.Payload, &req); err != nil {
			return fmt.Errorf("failed to decode community report: %w", err)
		}
		_, err := o.backend.SubmitCommunityReport(ctx, req)
		return err
	case models.SubmissionScamReport:
		var req models.ReportRequest
		if err := json.Unmarshal(sub.Payload, &req); err != nil {
			return fmt.Errorf("failed to decode report: %w", err)
		}
		_, err := o.backend.SubmitReport(ctx, req)
		return err
	case models.SubmissionFeedback:
		var req models.FeedbackRequest
		if err := json.Unmarshal(sub.Payload, &req); err != nil {
			return fmt.Errorf("failed to decode feedback: %w", err)
		}
		_, err := o.backend.SubmitFeedback(ctx, req)
		return err
	default:
		return fmt.Errorf("unknown submission kind %q", sub.Kind)
	}
}

func (o *Outbox) refreshGauge(ctx context.Context) {
	if o.metrics == nil {
		return
	}
	n, err := o.store.CountPending(ctx)
	if err != nil {
		o.logger.Debug().Err(err).Msg("failed to count pending submissions")
		return
	}
	o.metrics.SetOutboxPending(n)
}
