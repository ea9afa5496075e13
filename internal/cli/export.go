package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"smart-note-service/internal/config"
	"smart-note-service/internal/export"
	"smart-note-service/internal/platform/logger"
)

// NewExportCmd writes a summary or an attempt review to a file.
func NewExportCmd(configPath *string) *cobra.Command {
	var (
		summaryID string
		attemptID string
		format    string
		dir       string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a summary or a completed attempt review",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (summaryID == "") == (attemptID == "") {
				return fmt.Errorf("exactly one of --summary or --attempt is required")
			}
			if format != "txt" && format != "pdf" {
				return fmt.Errorf("unknown format %q", format)
			}
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.Export.Dir
			}
			path, err := runExport(cmd.Context(), cfg, summaryID, attemptID, format, dir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&summaryID, "summary", "", "summary id")
	cmd.Flags().StringVar(&attemptID, "attempt", "", "completed attempt id")
	cmd.Flags().StringVar(&format, "format", "txt", "txt or pdf")
	cmd.Flags().StringVar(&dir, "dir", "", "output directory (defaults to export.dir)")
	return cmd
}

func runExport(ctx context.Context, cfg config.Config, summaryID, attemptID, format, dir string) (_ string, err error) {
	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return "", err
	}
	defer log.Sync()

	store, err := openStore(ctx, cfg, log)
	if err != nil {
		return "", err
	}
	// Export only reads, so the store is released without a flush.
	defer func() {
		if cerr := store.Release(); cerr != nil && err == nil {
			err = fmt.Errorf("close store: %w", cerr)
		}
	}()

	var content, title string
	if summaryID != "" {
		summary, err := store.Summary(ctx, summaryID)
		if err != nil {
			return "", err
		}
		content, title = export.SummaryContent(summary), summary.Title
	} else {
		review, err := store.ReviewAttempt(ctx, attemptID)
		if err != nil {
			return "", err
		}
		content, title = export.ReviewContent(review), review.QuizTitle+" Results"
	}

	doc := export.Text(content, time.Now())
	if format == "pdf" {
		doc = export.PDF(content, title, time.Now())
	}
	path, err := export.WriteFile(dir, doc)
	if err != nil {
		return "", err
	}
	log.Info("exported", "path", path)
	return path, nil
}
