// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/signalhouse/event-monitor/internal/config"
	"github.com/signalhouse/event-monitor/internal/logging"
	"github.com/signalhouse/event-monitor/internal/persistence/postgres"
	"github.com/signalhouse/event-monitor/internal/provision"
	"github.com/signalhouse/event-monitor/internal/repository"
	"github.com/signalhouse/event-monitor/internal/sampledata"
	httptransport "github.com/signalhouse/event-monitor/internal/transport/http"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	logger := logging.NewLogger(cfg.Env)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.AutoMigrate {
		if err := postgres.EnsureSchema(ctx, pool, logger); err != nil {
			log.Fatalf("schema bootstrap failed: %v", err)
		}
	}

	projectRepo := repository.NewProjectRepository(pool, logger)
	eventRepo := repository.NewEventRepository(pool, logger)

	factory, err := sampledata.NewFactory(sampledata.Deps{
		Events: eventRepo,
		Logger: logger,
	})
	if err != nil {
		log.Fatalf("load sample fixtures failed: %v", err)
	}
	logger.Info("sample fixtures loaded", "types", factory.SampleTypes())

	provisioner := provision.New(provision.Deps{
		Directory: projectRepo,
		Factory:   factory,
		Logger:    logger,
	})

	handler := httptransport.NewRouter(httptransport.Deps{
		Projects:    projectRepo,
		Events:      eventRepo,
		Provisioner: provisioner,
		Health:      postgres.NewSchemaHealthChecker(pool),
		Logger:      logger,
		AdminToken:  cfg.AdminToken,
		Version:     Version,
		Commit:      Commit,
		BuildDate:   BuildDate,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("api listening",
			"addr", cfg.HTTPAddr,
			"version", Version,
			"commit", Commit,
			"build_date", BuildDate,
		)

		if err := srv.ListenAndServe(); err != nil &&
			err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
}
