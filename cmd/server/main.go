package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/anarkulova/maktab-monitor/internal/api"
	"github.com/anarkulova/maktab-monitor/internal/config"
	"github.com/anarkulova/maktab-monitor/internal/db"
	"github.com/anarkulova/maktab-monitor/internal/gemini"
	"github.com/anarkulova/maktab-monitor/internal/logger"
)

func main() {
	cfg := config.Load()
	log := logger.New()
	log.WithField("service", "maktab-monitor").Info("starting service")

	if cfg.AdminPassword == "" {
		log.Fatal("ADMIN_PASSWORD is required")
	}
	passHash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Fatal("hash admin password")
	}

	store, err := openStore(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("open store")
	}
	defer store.Close()
	log.WithField("driver", cfg.StoreDriver).Info("store ready")

	if cfg.GeminiAPIKey == "" {
		log.Warn("GEMINI_API_KEY not set; AI report requests will fail")
	}
	gen := gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel)

	router := api.NewRouter(store, gen, passHash, cfg.AllowedOrigins, log)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      2 * time.Minute, // report generation is slow
		IdleTimeout:       120 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Addr).Info("listening")
		errChan <- srv.ListenAndServe()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server terminated")
		}
	case sig := <-sigChan:
		log.WithField("signal", sig.String()).Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.WithError(err).Error("shutdown")
		}
	}
}

func openStore(cfg config.Config, log *logger.Logger) (db.Store, error) {
	switch cfg.StoreDriver {
	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, errors.New("DATABASE_URL is required for the postgres driver")
		}
		ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
		defer cancel()
		return db.NewPostgresStore(ctx, cfg.PostgresDSN, log)
	case "sqlite":
		return db.NewSQLiteStore(cfg.SQLitePath, log)
	default:
		return nil, errors.New("unknown store driver: " + cfg.StoreDriver)
	}
}
