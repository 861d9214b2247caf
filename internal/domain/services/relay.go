package services

import (
	"context"
	"encoding/json"
	"errors"

	"scamshield/internal/domain/models"
	"scamshield/internal/i18n"
	"scamshield/internal/infrastructure/backend"
	"scamshield/pkg/logger"
)

// Report listing bounds
const (
	ReportsDefaultLimit = 50
	ReportsMaxLimit     = 100
)

// RelayBackend is the part of the remote API scam reports and verdict
// feedback go to
type RelayBackend interface {
	SubmitReport(ctx context.Context, req models.ReportRequest) (*models.Report, error)
	Reports(ctx context.Context, status string, limit int) ([]models.Report, error)
	SubmitFeedback(ctx context.Context, req models.FeedbackRequest) (*models.Feedback, error)
	FeedbackStats(ctx context.Context) (*models.FeedbackStats, error)
}

// RelayService forwards scam reports and feedback to the backend and
// queues them while it is unreachable
type RelayService struct {
	backend RelayBackend
	outbox  *Outbox
	logger  *logger.Logger
}

// NewRelayService creates a relay. outbox may be nil, in which case
// outages are surfaced.
func NewRelayService(b RelayBackend, outbox *Outbox, log *logger.Logger) *RelayService {
	return &RelayService{
		backend: b,
		outbox:  outbox,
		logger:  log.WithComponent("relay"),
	}
}

// SubmitReport files a scam report
func (s *RelayService) SubmitReport(ctx context.Context, req models.ReportRequest, lang i18n.Lang) (*models.Report, error) {
	if err := ValidateReport(&req); err != nil {
		return nil, err
	}

	report, err := s.backend.SubmitReport(ctx, req)
	if err == nil {
		return report, nil
	}
	sub, qerr := s.queue(ctx, err, models.SubmissionScamReport, req)
	if qerr != nil {
		return nil, qerr
	}
	return queuedReport(req, sub, s.outbox.QueuedNotice(lang)), nil
}

// Reports lists filed reports, optionally filtered by status. Offline,
// reports still waiting in the queue are listed.
func (s *RelayService) Reports(ctx context.Context, status string, limit int, lang i18n.Lang) ([]models.Report, error) {
	if limit <= 0 {
		limit = ReportsDefaultLimit
	}
	limit = clampLimit(limit, 1, ReportsMaxLimit)

	reports, err := s.backend.Reports(ctx, status, limit)
	if err == nil {
		return reports, nil
	}
	if !backend.IsFallbackEligible(err) || s.outbox == nil || (status != "" && status != string(models.SubmissionPending)) {
		return nil, err
	}

	pending, perr := s.outbox.Pending(ctx, models.SubmissionScamReport, limit)
	if perr != nil {
		return nil, errors.Join(err, perr)
	}
	out := make([]models.Report, 0, len(pending))
	for _, sub := range pending {
		var req models.ReportRequest
		if err := json.Unmarshal(sub.Payload, &req); err != nil {
			continue
		}
		out = append(out, *queuedReport(req, sub, s.outbox.QueuedNotice(lang)))
	}
	return out, nil
}

// SubmitFeedback records a verdict correction. The feedback type is derived
// from the two verdicts when not given.
func (s *RelayService) SubmitFeedback(ctx context.Context, req models.FeedbackRequest, lang i18n.Lang) (*models.Feedback, error) {
	if err := ValidateFeedback(&req); err != nil {
		return nil, err
	}

	fb, err := s.backend.SubmitFeedback(ctx, req)
	if err == nil {
		return fb, nil
	}
	sub, qerr := s.queue(ctx, err, models.SubmissionFeedback, req)
	if qerr != nil {
		return nil, qerr
	}

	out := &models.Feedback{
		InputType:       string(req.InputType),
		InputText:       req.InputText,
		OriginalVerdict: string(req.OriginalVerdict),
		UserVerdict:     string(req.UserVerdict),
		FeedbackType:    req.FeedbackType,
		Status:          string(models.SubmissionPending),
		CreatedAt:       sub.CreatedAt,
		Queued:          true,
		Notice:          s.outbox.QueuedNotice(lang),
	}
	if req.Comment != "" {
		out.Comment = &req.Comment
	}
	return out, nil
}

// FeedbackStats returns aggregate feedback counts. There is no offline
// answer.
func (s *RelayService) FeedbackStats(ctx context.Context) (*models.FeedbackStats, error) {
	return s.backend.FeedbackStats(ctx)
}

// queue stores payload when cause permits it and returns cause otherwise
func (s *RelayService) queue(ctx context.Context, cause error, kind models.SubmissionKind, payload any) (*models.PendingSubmission, error) {
	if !backend.IsFallbackEligible(cause) || s.outbox == nil {
		return nil, cause
	}
	sub, err := s.outbox.Enqueue(ctx, kind, payload)
	if err != nil {
		s.logger.Error().Err(err).Str("kind", string(kind)).Msg("failed to queue submission")
		return nil, errors.Join(cause, err)
	}
	s.logger.Info().Err(cause).Str("kind", string(kind)).Msg("backend unavailable, submission queued")
	return sub, nil
}

func queuedReport(req models.ReportRequest, sub *models.PendingSubmission, notice string) *models.Report {
	r := &models.Report{
		InputType: string(req.InputType),
		InputText: req.InputText,
		Status:    string(models.SubmissionPending),
		CreatedAt: sub.CreatedAt,
		Queued:    true,
		Notice:    notice,
	}
	if req.Comment != "" {
		r.Comment = &req.Comment
	}
	return r
}
