package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"scamshield/internal/domain/models"
)

func newScanCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a URL, message, screenshot or call recording",
	}
	cmd.AddCommand(
		newScanURLCmd(a),
		newScanTextCmd(a),
		newScanUploadCmd(a, models.ScanKindScreenshot),
		newScanUploadCmd(a, models.ScanKindAudio),
	)
	return cmd
}

func newScanURLCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "url URL [URL...]",
		Short: "Check one or more links",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			if len(args) > 1 {
				resp, err := a.scans.ScanURLBatch(ctx, args, a.lang)
				if err != nil {
					return err
				}
				return a.out.batch(resp)
			}

			result, err := a.scans.ScanURL(ctx, args[0], a.lang)
			if err != nil {
				return err
			}
			return a.out.scan(result)
		},
	}
}

func newScanTextCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "text MESSAGE",
		Short: "Check an SMS, e-mail or chat message (use - to read stdin)",
		Args:  exactArgs(1, "a message"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			text := args[0]
			if text == "-" {
				data, err := readAllLimited(cmd.InOrStdin())
				if err != nil {
					return err
				}
				text = string(data)
			}

			result, err := a.scans.ScanText(ctx, text, a.lang)
			if err != nil {
				return err
			}
			return a.out.scan(result)
		},
	}
}

func newScanUploadCmd(a *app, kind models.ScanKind) *cobra.Command {
	var hint string

	short := "Check a screenshot of a message or web page"
	hintUsage := "text visible in the screenshot, used when the backend is unreachable"
	if kind == models.ScanKindAudio {
		short = "Check a recorded phone call"
		hintUsage = "transcript of the call, used when the backend is unreachable"
	}

	cmd := &cobra.Command{
		Use:   string(kind) + " FILE",
		Short: short,
		Args:  exactArgs(1, "a file"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			up, err := readUpload(args[0], hint)
			if err != nil {
				return err
			}

			var result *models.ScanResult
			if kind == models.ScanKindAudio {
				result, err = a.scans.ScanAudio(ctx, up, a.lang)
			} else {
				result, err = a.scans.ScanScreenshot(ctx, up, a.lang)
			}
			if err != nil {
				return err
			}
			return a.out.scan(result)
		},
	}
	cmd.Flags().StringVar(&hint, "hint", "", hintUsage)
	return cmd
}

func readUpload(path, hint string) (models.Upload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Upload{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	name := filepath.Base(path)
	ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if ct == "" {
		ct = "application/octet-stream"
	}
	return models.Upload{
		Filename:    name,
		ContentType: ct,
		Data:        data,
		Hint:        hint,
	}, nil
}
