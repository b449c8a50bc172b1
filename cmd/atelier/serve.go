package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/atelierhq/atelier/internal/account"
	"github.com/atelierhq/atelier/internal/api"
	"github.com/atelierhq/atelier/internal/collab"
	"github.com/atelierhq/atelier/internal/config"
	"github.com/atelierhq/atelier/internal/llm"
	"github.com/atelierhq/atelier/internal/storage"
	"github.com/atelierhq/atelier/internal/training"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the backend server (foreground)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func runServer() error {
	fmt.Fprintf(os.Stderr, "atelier version %s\n", version)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logLevel := slog.LevelInfo
	if strings.EqualFold(cfg.Log.Level, "debug") {
		logLevel = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.NewStore(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("closing storage", "error", err)
		}
	}()

	usage := llm.NewUsageTracker()
	model := llm.New(cfg.Model.BaseURL, cfg.Model.APIKey, cfg.Model.Name, usage)
	if key := model.CheckKey(); !key.Valid {
		log.Warn("model key not usable, learned and template responses only",
			"status", key.Status, "action", key.ActionRequired)
	}

	handler := api.NewHandler(api.Deps{
		Training: training.NewSystem(store, log),
		Accounts: account.NewManager(store),
		Store:    store,
		Hub:      collab.NewHub(log),
		Model:    model,
		Usage:    usage,
		Config:   cfg,
		Log:      log,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
