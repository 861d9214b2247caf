package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"scamshield/internal/domain/models"
	"scamshield/internal/i18n"
	"scamshield/internal/infrastructure/backend"
	"scamshield/internal/infrastructure/cache"
	"scamshield/internal/metrics"
	"scamshield/pkg/logger"
)

// batchConcurrency bounds in-flight backend calls for a batch URL scan
const batchConcurrency = 8

// ScanBackend is the part of the remote API the scan flow uses
type ScanBackend interface {
	ScanURL(ctx context.Context, rawURL string) (*models.RemoteScanResponse, error)
	ScanText(ctx context.Context, text string) (*models.RemoteScanResponse, error)
	ScanScreenshot(ctx context.Context, up models.Upload) (*models.RemoteScanResponse, error)
	ScanAudio(ctx context.Context, up models.Upload) (*models.RemoteScanResponse, error)
}

// ScanService runs scans against the backend and falls back to the local
// analyzers when the backend cannot answer
type ScanService struct {
	backend    ScanBackend
	urls       *URLAnalyzer
	message    *KeywordClassifier
	call       *KeywordClassifier
	screenshot *KeywordClassifier
	verdicts   *cache.VerdictCache
	metrics    *metrics.Metrics
	logger     *logger.Logger
}

// NewScanService creates a scan service. verdicts and m may be nil.
func NewScanService(b ScanBackend, verdicts *cache.VerdictCache, m *metrics.Metrics, log *logger.Logger) *ScanService {
	return &ScanService{
		backend:    b,
		urls:       NewURLAnalyzer(),
		message:    NewKeywordClassifier(MessageProfile()),
		call:       NewKeywordClassifier(CallProfile()),
		screenshot: NewKeywordClassifier(ScreenshotProfile()),
		verdicts:   verdicts,
		metrics:    m,
		logger:     log.WithComponent("scan-flow"),
	}
}

// URLAnalyzer returns the local URL analyzer
func (s *ScanService) URLAnalyzer() *URLAnalyzer {
	return s.urls
}

// ScanURL scans a URL, consulting the verdict cache first
func (s *ScanService) ScanURL(ctx context.Context, raw string, lang i18n.Lang) (*models.ScanResult, error) {
	input, err := ValidateURLInput(raw)
	if err != nil {
		return nil, err
	}
	normalized := NormalizeURL(input)
	log := s.logger.WithScanKind(string(models.ScanKindURL))

	if s.verdicts != nil {
		cached, ok := s.verdicts.Get(ctx, normalized)
		s.metrics.ObserveCacheLookup(ok)
		if ok {
			result := s.fromRemote(cached, models.ScanKindURL, input, lang)
			result.Source = models.ScanSourceCache
			s.enrichURL(result, input, lang)
			s.metrics.ObserveScan(string(models.ScanKindURL), string(result.Source))
			return result, nil
		}
	}

	resp, err := s.backend.ScanURL(ctx, normalized)
	if err == nil {
		s.verdicts.Put(ctx, normalized, resp)
		result := s.fromRemote(resp, models.ScanKindURL, input, lang)
		s.enrichURL(result, input, lang)
		s.metrics.ObserveScan(string(models.ScanKindURL), string(result.Source))
		log.Debug().Str("url", SanitizeURL(normalized)).Int("score", result.RiskScore).Msg("remote url verdict")
		return result, nil
	}
	if !backend.IsFallbackEligible(err) {
		return nil, err
	}

	result := s.urls.AnalyzeLocalized(input, lang)
	s.markFallback(result, err, lang)
	log.Info().Str("url", SanitizeURL(normalized)).Int("score", result.RiskScore).Msg("url scanned locally")
	return result, nil
}

// ScanURLBatch scans up to MaxBatchURLs URLs with bounded concurrency.
// Individually invalid entries get the local invalid-URL verdict.
func (s *ScanService) ScanURLBatch(ctx context.Context, urls []string, lang i18n.Lang) (*models.BatchURLScanResponse, error) {
	if len(urls) == 0 {
		return nil, invalidf("At least one URL is required")
	}
	if len(urls) > MaxBatchURLs {
		return nil, invalidf("At most %d URLs can be scanned at once", MaxBatchURLs)
	}

	results := make([]*models.ScanResult, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for i, u := range urls {
		g.Go(func() error {
			result, err := s.ScanURL(gctx, u, lang)
			if errors.Is(err, ErrInvalidInput) {
				result, err = s.urls.AnalyzeLocalized(u, lang), nil
			}
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &models.BatchURLScanResponse{Results: results, Total: len(results)}
	for _, r := range results {
		switch r.Tier {
		case models.RiskTierHighRisk:
			out.HighRisk++
		case models.RiskTierSuspicious:
			out.Suspicious++
		default:
			out.Safe++
		}
	}
	return out, nil
}

// ScanText scans pasted message text
func (s *ScanService) ScanText(ctx context.Context, raw string, lang i18n.Lang) (*models.ScanResult, error) {
	text, err := ValidateTextInput(raw)
	if err != nil {
		return nil, err
	}

	resp, err := s.backend.ScanText(ctx, text)
	if err == nil {
		result := s.fromRemote(resp, models.ScanKindText, text, lang)
		s.metrics.ObserveScan(string(models.ScanKindText), string(result.Source))
		return result, nil
	}
	if !backend.IsFallbackEligible(err) {
		return nil, err
	}

	result := s.message.ClassifyLocalized(text, lang)
	s.markFallback(result, err, lang)
	s.logger.Info().Str("text", SanitizeForLogging(text)).Int("score", result.RiskScore).Msg("text scanned locally")
	return result, nil
}

// ScanScreenshot uploads an image. Offline, the caller-supplied text hint
// is classified instead.
func (s *ScanService) ScanScreenshot(ctx context.Context, up models.Upload, lang i18n.Lang) (*models.ScanResult, error) {
	if err := ValidateScreenshot(up); err != nil {
		return nil, err
	}

	resp, err := s.backend.ScanScreenshot(ctx, up)
	if err == nil {
		result := s.fromRemote(resp, models.ScanKindScreenshot, up.Filename, lang)
		s.metrics.ObserveScan(string(models.ScanKindScreenshot), string(result.Source))
		return result, nil
	}
	if !backend.IsFallbackEligible(err) {
		return nil, err
	}

	result := s.classifyHint(s.screenshot, up, lang)
	result.ExtractedText = strings.TrimSpace(up.Hint)
	s.markFallback(result, err, lang)
	return result, nil
}

// ScanAudio uploads a call recording. Offline, the caller-supplied
// transcript hint is classified instead.
func (s *ScanService) ScanAudio(ctx context.Context, up models.Upload, lang i18n.Lang) (*models.ScanResult, error) {
	if err := ValidateAudio(up); err != nil {
		return nil, err
	}

	resp, err := s.backend.ScanAudio(ctx, up)
	if err == nil {
		result := s.fromRemote(resp, models.ScanKindAudio, up.Filename, lang)
		s.metrics.ObserveScan(string(models.ScanKindAudio), string(result.Source))
		return result, nil
	}
	if !backend.IsFallbackEligible(err) {
		return nil, err
	}

	result := s.classifyHint(s.call, up, lang)
	result.Transcript = strings.TrimSpace(up.Hint)
	s.markFallback(result, err, lang)
	return result, nil
}

// ScanLocal runs only the local analyzer for kind. Uploads without a hint
// produce the unreadable verdict.
func (s *ScanService) ScanLocal(kind models.ScanKind, input string, lang i18n.Lang) *models.ScanResult {
	var result *models.ScanResult
	switch kind {
	case models.ScanKindURL:
		result = s.urls.AnalyzeLocalized(input, lang)
	case models.ScanKindScreenshot:
		result = s.classifyHint(s.screenshot, models.Upload{Hint: input}, lang)
		result.ExtractedText = strings.TrimSpace(input)
	case models.ScanKindAudio:
		result = s.classifyHint(s.call, models.Upload{Hint: input}, lang)
		result.Transcript = strings.TrimSpace(input)
	default:
		result = s.message.ClassifyLocalized(input, lang)
	}
	s.metrics.ObserveScan(string(result.InputType), string(result.Source))
	return result
}

func (s *ScanService) classifyHint(c *KeywordClassifier, up models.Upload, lang i18n.Lang) *models.ScanResult {
	hint := strings.TrimSpace(up.Hint)
	if hint != "" {
		result := c.ClassifyLocalized(hint, lang)
		if up.Filename != "" {
			result.RawInput = up.Filename
		}
		return result
	}

	profile := c.Profile()
	result := &models.ScanResult{
		MatchedCategory: profile.FallbackLabel,
		MatchedSignals:  []string{i18n.T(lang, "signal_unreadable_offline")},
		Suggestions:     append([]string(nil), profile.DefaultTips...),
		RawInput:        up.Filename,
		InputType:       profile.Kind,
		Source:          models.ScanSourceLocal,
		ScannedAt:       time.Now().UTC(),
	}
	result.ApplyScore(0)
	result.SuggestedAction = SuggestedAction(lang, result.Tier)
	return result
}

// fromRemote maps a backend response onto a ScanResult. The tier is always
// derived from the score here, whatever label the backend chose.
func (s *ScanService) fromRemote(resp *models.RemoteScanResponse, kind models.ScanKind, raw string, lang i18n.Lang) *models.ScanResult {
	result := &models.ScanResult{
		MatchedCategory: resp.Label,
		MatchedSignals:  resp.Reasons,
		Suggestions:     resp.Suggestions,
		RawInput:        raw,
		InputType:       kind,
		Source:          models.ScanSourceRemote,
		AttackPatterns:  resp.AttackPatterns,
		Explanation:     resp.Explanation,
		SafetyTip:       resp.SafetyTip,
		ExtractedText:   resp.ExtractedText,
		Transcript:      resp.Transcript,
		ScanID:          resp.ScanID,
		ModelVersion:    resp.ModelVersion,
		ScannedAt:       time.Now().UTC(),
	}
	result.ApplyScore(resp.RiskScore)
	if result.MatchedCategory == "" {
		result.MatchedCategory = models.CategoryUnknown
	}
	if len(result.MatchedSignals) == 0 {
		result.MatchedSignals = []string{i18n.T(lang, "signal_no_patterns")}
	}
	result.SuggestedAction = SuggestedAction(lang, result.Tier)
	return result
}

// enrichURL adds the local breakdown and any explanation fields the
// backend left out
func (s *ScanService) enrichURL(result *models.ScanResult, input string, lang i18n.Lang) {
	report := s.urls.Inspect(input)
	result.Breakdown = report.Components
	if len(result.AttackPatterns) == 0 {
		result.AttackPatterns = report.PatternNames(lang)
	}
	if result.Explanation == "" {
		result.Explanation = report.Explanation(lang, result.Tier)
	}
	if result.SafetyTip == "" {
		result.SafetyTip = report.SafetyTip(lang)
	}
}

func (s *ScanService) markFallback(result *models.ScanResult, cause error, lang i18n.Lang) {
	result.Source = models.ScanSourceLocal
	result.Fallback = true
	result.Notice = i18n.T(lang, "notice_local_analysis")

	reason := string(backend.KindUnknown)
	if apiErr, ok := backend.AsAPIError(cause); ok {
		reason = string(apiErr.Kind)
	}
	s.metrics.ObserveFallback(string(result.InputType), reason)
	s.metrics.ObserveScan(string(result.InputType), string(result.Source))
	s.logger.Warn().
		Err(cause).
		Str("kind", string(result.InputType)).
		Str("reason", reason).
		Msg("backend unavailable, using local analysis")
}
