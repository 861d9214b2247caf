package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"scamshield/internal/domain/models"
	"scamshield/internal/domain/services"
	"scamshield/internal/i18n"
	"scamshield/internal/infrastructure/backend"
)

// printer renders results as text or, with --json, as indented JSON
type printer struct {
	w    io.Writer
	json bool
	lang i18n.Lang
}

func newPrinter(w io.Writer, asJSON bool, lang i18n.Lang) printer {
	return printer{w: w, json: asJSON, lang: lang}
}

func (p printer) writeJSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p printer) scan(r *models.ScanResult) error {
	if p.json {
		return p.writeJSON(r)
	}

	fmt.Fprintf(p.w, "%s  %d/100  %s\n", tierMarker(r.Tier), r.RiskScore, r.Tier)
	if r.MatchedCategory != "" {
		fmt.Fprintf(p.w, "Category: %s\n", r.MatchedCategory)
	}
	if r.Breakdown != nil {
		b := r.Breakdown
		fmt.Fprintf(p.w, "Host: %s (domain %s, tld %s", b.FullHost, b.RegisteredDomain, b.TLD)
		if b.Subdomain != "" {
			fmt.Fprintf(p.w, ", subdomain %s", b.Subdomain)
		}
		if b.IsIPLiteral {
			fmt.Fprint(p.w, ", IP address")
		}
		fmt.Fprintln(p.w, ")")
	}
	if r.ExtractedText != "" {
		fmt.Fprintf(p.w, "Text: %s\n", r.ExtractedText)
	}
	if r.Transcript != "" {
		fmt.Fprintf(p.w, "Transcript: %s\n", r.Transcript)
	}
	p.list("Signals", r.MatchedSignals)
	if r.SuggestedAction != "" {
		fmt.Fprintf(p.w, "Action: %s\n", r.SuggestedAction)
	}
	p.list("Tips", r.Suggestions)
	if r.Notice != "" {
		fmt.Fprintf(p.w, "Note: %s\n", r.Notice)
	}
	return nil
}

func (p printer) batch(resp *models.BatchURLScanResponse) error {
	if p.json {
		return p.writeJSON(resp)
	}
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCORE\tTIER\tSOURCE\tURL")
	for _, r := range resp.Results {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.RiskScore, r.Tier, r.Source, r.RawInput)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(p.w, "%d scanned: %d high risk, %d suspicious, %d safe\n", resp.Total, resp.HighRisk, resp.Suspicious, resp.Safe)
	return nil
}

func (p printer) chat(resp *models.ChatResponse) error {
	if p.json {
		return p.writeJSON(resp)
	}
	fmt.Fprintln(p.w, resp.Response)
	if resp.Notice != "" {
		fmt.Fprintf(p.w, "(%s)\n", resp.Notice)
	}
	return nil
}

func (p printer) tips(resp *models.TipsResponse) error {
	if p.json {
		return p.writeJSON(resp)
	}
	for i, tip := range resp.Tips {
		fmt.Fprintf(p.w, "%d. %s\n   %s\n", i+1, tip.Title, tip.Description)
	}
	return nil
}

func (p printer) communityReport(r *models.CommunityReport) error {
	if p.json {
		return p.writeJSON(r)
	}
	fmt.Fprintf(p.w, "[%s] %s  %s\n", r.ThreatCategory, r.MaskedURL, r.ID)
	if r.Explanation != "" {
		fmt.Fprintf(p.w, "  %s\n", r.Explanation)
	}
	if len(r.AttackPatterns) > 0 {
		fmt.Fprintf(p.w, "  Patterns: %s\n", strings.Join(r.AttackPatterns, ", "))
	}
	if r.SafetyTip != "" {
		fmt.Fprintf(p.w, "  Tip: %s\n", r.SafetyTip)
	}
	if r.Notice != "" {
		fmt.Fprintf(p.w, "  Note: %s\n", r.Notice)
	}
	return nil
}

func (p printer) communityFeed(reports []models.CommunityReport, warning models.CommunityWarning) error {
	if p.json {
		return p.writeJSON(reports)
	}
	fmt.Fprintln(p.w, warning.Warning)
	if len(reports) == 0 {
		fmt.Fprintln(p.w, "No reports yet.")
		return nil
	}
	for i := range reports {
		if err := p.communityReport(&reports[i]); err != nil {
			return err
		}
	}
	return nil
}

func (p printer) report(r *models.Report) error {
	if p.json {
		return p.writeJSON(r)
	}
	if r.Queued {
		fmt.Fprintf(p.w, "Report queued: %s\n", r.Notice)
		return nil
	}
	fmt.Fprintf(p.w, "Report #%d %s (%s)\n", r.ID, r.Status, r.InputType)
	return nil
}

func (p printer) reports(list []models.Report) error {
	if p.json {
		return p.writeJSON(list)
	}
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tTYPE\tINPUT")
	for _, r := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.ID, r.Status, r.InputType, r.InputText)
	}
	return tw.Flush()
}

func (p printer) feedback(fb *models.Feedback) error {
	if p.json {
		return p.writeJSON(fb)
	}
	if fb.Queued {
		fmt.Fprintf(p.w, "Feedback queued (%s): %s\n", fb.FeedbackType, fb.Notice)
		return nil
	}
	fmt.Fprintf(p.w, "Feedback #%d recorded as %s\n", fb.ID, fb.FeedbackType)
	return nil
}

func (p printer) feedbackStats(s *models.FeedbackStats) error {
	if p.json {
		return p.writeJSON(s)
	}
	fmt.Fprintf(p.w, "total %d  false positives %d  false negatives %d  correct %d  pending review %d\n",
		s.TotalFeedback, s.FalsePositives, s.FalseNegatives, s.Correct, s.PendingReview)
	return nil
}

func (p printer) user(u *models.User) error {
	if p.json {
		return p.writeJSON(u)
	}
	fmt.Fprintf(p.w, "%s <%s> (id %d)\n", u.Name, u.Email, u.ID)
	return nil
}

func (p printer) token(t *models.Token) error {
	if p.json {
		return p.writeJSON(t)
	}
	fmt.Fprintln(p.w, t.AccessToken)
	return nil
}

func (p printer) health(h *models.BackendHealth, baseURL string) error {
	if p.json {
		return p.writeJSON(h)
	}
	fmt.Fprintf(p.w, "%s: %s (%dms)\n", baseURL, h.Status, h.LatencyMS)
	for name, status := range h.Services {
		fmt.Fprintf(p.w, "  %s: %s\n", name, status)
	}
	return nil
}

func (p printer) list(title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(p.w, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(p.w, "  • %s\n", item)
	}
}

func tierMarker(t models.RiskTier) string {
	switch t {
	case models.RiskTierSafe:
		return "[OK]"
	case models.RiskTierSuspicious:
		return "[!]"
	default:
		return "[!!]"
	}
}

// describeError turns an error into the line shown to the user
func describeError(err error) string {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	if apiErr, ok := backend.AsAPIError(err); ok {
		return apiErr.UserMessage()
	}
	return err.Error()
}
