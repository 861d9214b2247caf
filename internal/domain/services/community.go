package services

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"scamshield/internal/domain/models"
	"scamshield/internal/i18n"
	"scamshield/internal/infrastructure/backend"
	"scamshield/pkg/logger"
)

// localExplanationReasons is how many analyzer reasons a locally built
// community entry explains
const localExplanationReasons = 2

var schemePrefix = regexp.MustCompile(`(?i)^https?://`)

// MaskURL defangs a URL for display: the scheme is dropped and every dot
// becomes [.] so the text is no longer clickable
func MaskURL(raw string) string {
	s := schemePrefix.ReplaceAllString(strings.TrimSpace(raw), "")
	return strings.ReplaceAll(s, ".", "[.]")
}

// UnmaskURL reverses MaskURL, minus the scheme
func UnmaskURL(masked string) string {
	return strings.ReplaceAll(masked, "[.]", ".")
}

// CommunityBackend is the part of the remote API the community feed uses
type CommunityBackend interface {
	SubmitCommunityReport(ctx context.Context, req models.CommunityReportRequest) (*models.CommunityReport, error)
	CommunityReports(ctx context.Context, language string, limit int) ([]models.CommunityReport, error)
}

// CommunityService submits and lists community reports. Submissions made
// while the backend is down are queued and shown in the feed until sent.
type CommunityService struct {
	backend CommunityBackend
	outbox  *Outbox
	urls    *URLAnalyzer
	logger  *logger.Logger
}

// NewCommunityService creates a community service. outbox may be nil, in
// which case outages are surfaced.
func NewCommunityService(b CommunityBackend, outbox *Outbox, urls *URLAnalyzer, log *logger.Logger) *CommunityService {
	if urls == nil {
		urls = NewURLAnalyzer()
	}
	return &CommunityService{
		backend: b,
		outbox:  outbox,
		urls:    urls,
		logger:  log.WithComponent("community"),
	}
}

// Submit sends a community report, queueing it when the backend is down
func (s *CommunityService) Submit(ctx context.Context, req models.CommunityReportRequest) (*models.CommunityReport, error) {
	if err := ValidateCommunityReport(&req); err != nil {
		return nil, err
	}
	lang := i18n.Parse(req.Language)
	req.Language = lang.String()

	report, err := s.backend.SubmitCommunityReport(ctx, req)
	if err == nil {
		return report, nil
	}
	if !backend.IsFallbackEligible(err) || s.outbox == nil {
		return nil, err
	}

	sub, qerr := s.outbox.Enqueue(ctx, models.SubmissionCommunityReport, req)
	if qerr != nil {
		s.logger.Error().Err(qerr).Msg("failed to queue community report")
		return nil, errors.Join(err, qerr)
	}
	s.logger.Info().Str("url", SanitizeURL(req.URLText)).Msg("community report queued")

	local := s.localReport(req, sub.ID, sub.CreatedAt, lang)
	local.Notice = s.outbox.QueuedNotice(lang)
	return local, nil
}

// Feed lists recent reports, newest first. limit is clamped to
// 1..CommunityMaxLimit.
func (s *CommunityService) Feed(ctx context.Context, lang i18n.Lang, limit int) ([]models.CommunityReport, error) {
	limit = clampLimit(limit, 1, models.CommunityMaxLimit)

	reports, err := s.backend.CommunityReports(ctx, lang.String(), limit)
	if err == nil {
		return reports, nil
	}
	if !backend.IsFallbackEligible(err) || s.outbox == nil {
		return nil, err
	}

	s.logger.Warn().Err(err).Msg("community feed unavailable, listing queued reports")
	pending, perr := s.outbox.Pending(ctx, models.SubmissionCommunityReport, limit)
	if perr != nil {
		return nil, errors.Join(err, perr)
	}
	out := make([]models.CommunityReport, 0, len(pending))
	for _, sub := range pending {
		var req models.CommunityReportRequest
		if err := json.Unmarshal(sub.Payload, &req); err != nil {
			s.logger.Warn().Err(err).Str("id", sub.ID.String()).Msg("skipping undecodable queued report")
			continue
		}
		out = append(out, *s.localReport(req, sub.ID, sub.CreatedAt, lang))
	}
	return out, nil
}

// Warning returns the awareness banner in lang
func (s *CommunityService) Warning(lang i18n.Lang) models.CommunityWarning {
	return models.CommunityWarning{
		Warning:  i18n.T(lang, "community_warning"),
		Language: lang.String(),
	}
}

// localReport renders a queued submission the way the backend would
func (s *CommunityService) localReport(req models.CommunityReportRequest, id uuid.UUID, at time.Time, lang i18n.Lang) *models.CommunityReport {
	report := s.urls.Inspect(req.URLText)

	explanation := i18n.T(lang, "community_no_patterns")
	if reasons := report.Reasons(lang); len(reasons) > 0 {
		if len(reasons) > localExplanationReasons {
			reasons = reasons[:localExplanationReasons]
		}
		explanation = strings.Join(reasons, " ")
	}

	return &models.CommunityReport{
		ID:             "LOCAL-" + id.String()[:8],
		MaskedURL:      MaskURL(req.URLText),
		ThreatCategory: i18n.T(lang, "category_"+string(models.NormalizeThreatCategory(req.ThreatCategory))),
		AttackPatterns: report.PatternNames(lang),
		Explanation:    explanation,
		SafetyTip:      i18n.T(lang, "tip_general"),
		SubmittedAt:    at.UTC().Format(time.RFC3339),
		Language:       lang.String(),
		Local:          true,
	}
}

func clampLimit(limit, lo, hi int) int {
	if limit < lo {
		return lo
	}
	if limit > hi {
		return hi
	}
	return limit
}
