package main

import (
	"strings"

	"github.com/spf13/cobra"

	"scamshield/internal/domain/models"
)

func newCommunityCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "community",
		Short: "Share and browse threats reported by other users",
	}
	cmd.AddCommand(newCommunityReportCmd(a), newCommunityListCmd(a))
	return cmd
}

func newCommunityReportCmd(a *app) *cobra.Command {
	var category, description string

	cmd := &cobra.Command{
		Use:   "report URL",
		Short: "Report a suspicious link to the community feed",
		Args:  exactArgs(1, "a URL"),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.community.Submit(cmd.Context(), models.CommunityReportRequest{
				URLText:             args[0],
				ThreatCategory:      category,
				OptionalDescription: description,
				Language:            a.lang.String(),
			})
			if err != nil {
				return err
			}
			return a.out.communityReport(report)
		},
	}
	cmd.Flags().StringVar(&category, "category", string(models.ThreatCategoryPhishing), "phishing, scam, fake_login or unknown")
	cmd.Flags().StringVar(&description, "description", "", "what happened")
	return cmd
}

func newCommunityListCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show recent community reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reports, err := a.community.Feed(cmd.Context(), a.lang, limit)
			if err != nil {
				return err
			}
			return a.out.communityFeed(reports, a.community.Warning(a.lang))
		},
	}
	cmd.Flags().IntVar(&limit, "limit", models.CommunityDefaultLimit, "number of reports (1-50)")
	return cmd
}

func newReportCmd(a *app) *cobra.Command {
	var inputType, comment, status string
	var list bool
	var limit int

	cmd := &cobra.Command{
		Use:   "report [INPUT]",
		Short: "Report a scam the scanner missed, or list your reports with --list",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				reports, err := a.relay.Reports(cmd.Context(), status, limit, a.lang)
				if err != nil {
					return err
				}
				return a.out.reports(reports)
			}
			if len(args) != 1 {
				return exactArgs(1, "the reported input")(cmd, args)
			}

			report, err := a.relay.SubmitReport(cmd.Context(), models.ReportRequest{
				InputType: models.ScanKind(strings.ToLower(inputType)),
				InputText: args[0],
				Comment:   comment,
			}, a.lang)
			if err != nil {
				return err
			}
			return a.out.report(report)
		},
	}
	cmd.Flags().StringVar(&inputType, "type", string(models.ScanKindText), "url, text, screenshot or audio")
	cmd.Flags().StringVar(&comment, "comment", "", "extra details")
	cmd.Flags().BoolVar(&list, "list", false, "list your submitted reports (needs --token)")
	cmd.Flags().StringVar(&status, "status", "", "with --list: pending, reviewed or resolved")
	cmd.Flags().IntVar(&limit, "limit", 50, "with --list: number of reports (1-100)")
	return cmd
}

func newFeedbackCmd(a *app) *cobra.Command {
	var inputType, original, user, comment string
	var scanID int64
	var stats bool

	cmd := &cobra.Command{
		Use:   "feedback [INPUT]",
		Short: "Correct a scan verdict, or show totals with --stats",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if stats {
				s, err := a.relay.FeedbackStats(cmd.Context())
				if err != nil {
					return err
				}
				return a.out.feedbackStats(s)
			}
			if len(args) != 1 {
				return exactArgs(1, "the scanned input")(cmd, args)
			}

			req := models.FeedbackRequest{
				InputType:       models.ScanKind(strings.ToLower(inputType)),
				InputText:       args[0],
				OriginalVerdict: models.Verdict(strings.ToLower(original)),
				UserVerdict:     models.Verdict(strings.ToLower(user)),
				Comment:         comment,
			}
			if scanID > 0 {
				req.ScanID = &scanID
			}
			fb, err := a.relay.SubmitFeedback(cmd.Context(), req, a.lang)
			if err != nil {
				return err
			}
			return a.out.feedback(fb)
		},
	}
	cmd.Flags().StringVar(&inputType, "type", string(models.ScanKindURL), "url, text, screenshot or audio")
	cmd.Flags().StringVar(&original, "was", "", "verdict the scanner gave: safe, suspicious or malicious")
	cmd.Flags().StringVar(&user, "is", "", "verdict you believe is right")
	cmd.Flags().StringVar(&comment, "comment", "", "extra details")
	cmd.Flags().Int64Var(&scanID, "scan-id", 0, "id of the scan being corrected")
	cmd.Flags().BoolVar(&stats, "stats", false, "show feedback totals (needs --token)")
	return cmd
}
