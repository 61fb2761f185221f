package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"prep-checkin-go/internal/config"
	"prep-checkin-go/internal/db"
	"prep-checkin-go/internal/fetcher"
	"prep-checkin-go/internal/handlers"
	"prep-checkin-go/internal/metrics"
	"prep-checkin-go/internal/notify"
	"prep-checkin-go/internal/pipeline"
	"prep-checkin-go/internal/repository"
	"prep-checkin-go/internal/scheduler"
	"prep-checkin-go/internal/server"
	"prep-checkin-go/internal/sheet"
)

// Run initializes and starts the application
func Run() error {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel)

	logrus.Info("Starting Prep Check-in Service")

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	dbConn, err := db.Init(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	m := metrics.NewMetrics()

	var f fetcher.EmailFetcher
	if cfg.Gmail.UseIMAP {
		f, err = fetcher.NewIMAPFetcher(&cfg.Gmail, &cfg.Checkin, cfg.Scheduler.MaxMessages)
		if err != nil {
			return fmt.Errorf("failed to create IMAP fetcher: %w", err)
		}
		logrus.Info("Using IMAP for email fetching")
	} else {
		f, err = fetcher.NewGmailAPIFetcher(&cfg.Gmail, &cfg.Checkin, cfg.Scheduler.MaxMessages)
		if err != nil {
			return fmt.Errorf("failed to create Gmail API fetcher: %w", err)
		}
		logrus.Info("Using Gmail API for email fetching")
	}

	store, err := sheet.NewSheetsStore(&cfg.Gmail, &cfg.Sheets)
	if err != nil {
		return fmt.Errorf("failed to create sheet store: %w", err)
	}
	if err := store.EnsureHeader(context.Background()); err != nil {
		return fmt.Errorf("failed to prepare sheet header: %w", err)
	}

	var notifier notify.Notifier = notify.LogNotifier{}
	if cfg.Checkin.AlertEmail != "" && !cfg.Gmail.UseIMAP {
		notifier, err = notify.NewGmailNotifier(&cfg.Gmail, cfg.Checkin.AlertEmail)
		if err != nil {
			return fmt.Errorf("failed to create failure notifier: %w", err)
		}
	}

	repo := repository.New(dbConn)
	pipe := pipeline.New(&cfg.Checkin, store, m)
	sched := scheduler.NewScheduler(&cfg.Scheduler, f, pipe, repo, notifier, m)

	h := handlers.NewHandlers(dbConn, repo, sched, m)
	router := server.SetupRouter(h)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	go func() {
		logrus.Infof("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := sched.Stop(); err != nil {
		logrus.Errorf("Failed to stop scheduler: %v", err)
	}
	sched.Wait()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("HTTP server shutdown error: %v", err)
	}

	if err := f.Close(); err != nil {
		logrus.Errorf("Failed to close fetcher: %v", err)
	}

	logrus.Info("Server stopped gracefully")
	return nil
}
