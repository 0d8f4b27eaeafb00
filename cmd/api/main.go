package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/starwars-blog/api/internal/api"
	"github.com/starwars-blog/api/pkg/config"
	"github.com/starwars-blog/api/pkg/database"
	"github.com/starwars-blog/api/pkg/logger"
)

// @title        Star Wars Blog API
// @version      1.0
// @description  Users, planets, people and favorites over a relational store.

// @host      localhost:3000
// @BasePath  /

func main() {
	cfg := config.MustLoad()

	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("Starting Star Wars Blog API",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
	)

	ctx := context.Background()
	db, err := database.Open(ctx, cfg.DatabaseURL, database.Options{Debug: cfg.AppEnv == "development"})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()
	log.Info("Database connected successfully", zap.String("driver", string(database.DriverOf(db))))

	// SQLite files are created on demand, so bring their schema up here;
	// PostgreSQL is migrated out of band with cmd/migrate.
	if database.DriverOf(db) == database.DriverSQLite {
		if err := database.MigrateUp(ctx, db); err != nil {
			log.Fatal("Failed to migrate sqlite database", zap.Error(err))
		}
	}

	dep := api.Wire(db)
	dep.AllowedOrigins = cfg.AllowedOrigins()
	dep.RateLimitRPS = cfg.RateLimitRPS
	dep.RateLimitBurst = cfg.RateLimitBurst
	dep.TrustedProxies = cfg.TrustedProxyList()
	dep.MetricsEnabled = cfg.MetricsEnabled

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewRouter(dep),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}
}
