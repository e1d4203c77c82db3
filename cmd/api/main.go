// Package main is the entry point for the plann.er API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gustavopolonio/nlw-journey/internal/config"
	"github.com/gustavopolonio/nlw-journey/internal/handler"
	"github.com/gustavopolonio/nlw-journey/internal/mail"
	"github.com/gustavopolonio/nlw-journey/internal/middleware"
	"github.com/gustavopolonio/nlw-journey/internal/repo"
	"github.com/gustavopolonio/nlw-journey/internal/service"
	"github.com/gustavopolonio/nlw-journey/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Default slog handler writes to stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// New() does not open connections immediately; the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	if cfg.MigrateOnStart {
		// goose works on database/sql; share the pool through pgx's stdlib bridge.
		applied, err := migrations.UpPool(context.Background(), pool)
		if err != nil {
			slog.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("migrations applied", "count", applied)
	}

	// --- Mail -------------------------------------------------------------
	var mailer mail.Mailer
	if cfg.Mail.SMTPEnabled() {
		mailer, err = mail.NewSMTPMailer(mail.SMTPSettings{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			From:     cfg.Mail.From,
			UseTLS:   cfg.Mail.UseTLS,
		})
		if err != nil {
			slog.Error("invalid smtp configuration", "error", err)
			os.Exit(1)
		}
		slog.Info("smtp mailer configured", "host", cfg.Mail.Host, "port", cfg.Mail.Port)
	} else {
		mailer = mail.NewLogMailer(logger)
		slog.Warn("SMTP_HOST not set; emails will be written to the log")
	}

	// --- Services ---------------------------------------------------------
	tripRepo := repo.NewTripRepo(pool)
	participantRepo := repo.NewParticipantRepo(pool)
	activityRepo := repo.NewActivityRepo(pool)
	linkRepo := repo.NewLinkRepo(pool)

	notifier := service.NewNotifier(mailer, logger, cfg.APIBaseURL, cfg.Mail.Concurrency)

	srv := handler.NewServer(handler.Services{
		Trips:        service.NewTripService(tripRepo, participantRepo, activityRepo, notifier),
		Participants: service.NewParticipantService(tripRepo, participantRepo, notifier),
		Activities:   service.NewActivityService(tripRepo, activityRepo),
		Links:        service.NewLinkService(tripRepo, linkRepo),
		Export:       service.NewExportService(tripRepo, activityRepo),
	}, cfg.WebBaseURL, logger)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Metrics →
	// Recoverer → CORS → MaxBodySize.
	// Recoverer sits inside the logger and metrics so panics are recorded as 500s.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(middleware.NewMetrics())
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	r.Handle("/metrics", promhttp.Handler())
	r.Mount("/", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Invitation fan-out runs inside the request, so the write timeout leaves
	// room for a few SMTP round trips.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
