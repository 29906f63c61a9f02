package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ewintr.nl/ytwatch/config"
	"ewintr.nl/ytwatch/fetcher"
	"ewintr.nl/ytwatch/handler"
	"ewintr.nl/ytwatch/notify"
	"ewintr.nl/ytwatch/scheduler"
	"ewintr.nl/ytwatch/storage"
	"ewintr.nl/ytwatch/watcher"
	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	envErr := godotenv.Load()
	cfg, err := config.Load(os.LookupEnv)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	if envErr != nil {
		logger.Debug("no .env file loaded", slog.String("error", envErr.Error()))
	}
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	kv, err := storage.Open(cfg.StoreDriver, cfg.StoreDSN)
	if err != nil {
		logger.Error("unable to open store", slog.String("driver", cfg.StoreDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer kv.Close()

	ytClient, err := youtube.NewService(ctx, option.WithAPIKey(cfg.YoutubeAPIKey))
	if err != nil {
		logger.Error("unable to create youtube service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slack := notify.NewSlack(notify.SlackInfo{
		WebhookURL: cfg.WebhookURL,
		Label:      cfg.NotifyLabel,
		Timeout:    cfg.NotifyTimeout,
	}, logger)
	if cfg.WebhookURL == "" {
		logger.Warn("SLACK_WEBHOOK_URL not set, notifications are disabled")
	}

	w := watcher.New(cfg.Search, fetcher.NewYoutube(ytClient), storage.NewSeenStore(kv), slack, logger)

	sched := scheduler.New(logger)
	if err := sched.AddJob(cfg.Schedule, func() { scheduledRun(ctx, w, logger) }); err != nil {
		logger.Error("unable to schedule search", slog.String("error", err.Error()))
		os.Exit(1)
	}
	sched.Start()
	logger.Info("scheduler started", slog.String("schedule", cfg.Schedule))
	if cfg.RunOnStart {
		go scheduledRun(ctx, w, logger)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.APIPort),
		Handler:           handler.NewServer(w, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", slog.String("error", err.Error()))
			stop()
		}
	}()
	logger.Info("http server started", slog.Int("port", cfg.APIPort))

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", slog.String("error", err.Error()))
	}
	sched.Stop()

	logger.Info("service stopped")
}

// scheduledRun has nobody to report to, so errors end in the log.
func scheduledRun(ctx context.Context, w *watcher.Watcher, logger *slog.Logger) {
	summary, err := w.Run(ctx)
	if err != nil {
		logger.Error("scheduled search failed", slog.String("error", err.Error()))
		return
	}
	logger.Info("scheduled search done", slog.Int("found", summary.VideosFound), slog.Int("brandnew", summary.NewVideos), slog.Int("popular", summary.PopularVideos))
}
