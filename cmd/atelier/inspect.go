package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/atelierhq/atelier/internal/config"
	"github.com/atelierhq/atelier/internal/storage"
	"github.com/atelierhq/atelier/internal/training"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Replay the archived feedback and print pattern analysis and insights",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(cmd.Context(), cmd.OutOrStdout())
	},
}

// runInspect rebuilds the in-memory training state from the archive and
// prints what the analytics endpoints would serve.
func runInspect(ctx context.Context, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store, err := storage.NewStore(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer store.Close()

	records, err := store.ListTrainingData(ctx)
	if err != nil {
		return err
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	system := training.NewSystem(nil, log)
	for _, rec := range records {
		system.Collect(ctx, rec.Prompt, rec.Response, rec.Rating, rec.Correction, 0)
	}

	report := map[string]any{
		"archived_entries":  len(records),
		"feedback_analysis": system.AnalyzeFeedbackPatterns(),
		"insights":          system.ExportInsights(),
		"learning":          system.ComprehensiveLearningInsights(),
		"intelligence":      system.Intelligence(),
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
