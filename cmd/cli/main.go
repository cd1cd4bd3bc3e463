// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/signalhouse/event-monitor/internal/config"
	"github.com/signalhouse/event-monitor/internal/domain"
	"github.com/signalhouse/event-monitor/internal/logging"
	"github.com/signalhouse/event-monitor/internal/persistence/postgres"
	"github.com/signalhouse/event-monitor/internal/provision"
	"github.com/signalhouse/event-monitor/internal/repository"
	"github.com/signalhouse/event-monitor/internal/sampledata"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := logging.NewCLILogger(cfg.Env)

	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(2)
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "create-sample-event":
		if len(os.Args) != 4 {
			printUsage(os.Stderr)
			os.Exit(2)
		}
		runCreateSampleEvent(ctx, cfg, logger, os.Args[2], os.Args[3])
	case "migrate":
		if err := runMigrate(ctx, cfg, logger); err != nil {
			logger.Error("migrate failed", "error", err)
			os.Exit(1)
		}
		logger.Info("migrations applied")
	default:
		printUsage(os.Stderr)
		os.Exit(2)
	}
}

func runCreateSampleEvent(ctx context.Context, cfg config.Config, logger *slog.Logger, projectRef, sampleType string) {
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("db connect failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	projectRepo := repository.NewProjectRepository(pool, logger)
	eventRepo := repository.NewEventRepository(pool, logger)

	factory, err := sampledata.NewFactory(sampledata.Deps{
		Events: eventRepo,
		Logger: logger,
	})
	if err != nil {
		logger.Error("load sample fixtures failed", "error", err)
		os.Exit(1)
	}
	logger.Debug("sample fixtures loaded", "types", factory.SampleTypes())

	provisioner := provision.New(provision.Deps{
		Directory: projectRepo,
		Factory:   factory,
		Logger:    logger,
	})

	eventID, err := provisioner.ProvisionSampleEvent(ctx, projectRef, sampleType)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownSampleType) {
			fmt.Fprintln(os.Stderr, "ERR: No event created. Was the sample type valid?")
			os.Exit(1)
		}
		logger.Error("create sample event failed",
			"project", projectRef,
			"sample_type", sampleType,
			"error", err,
		)
		os.Exit(1)
	}

	fmt.Printf("> Created event %s\n", eventID)
}

func runMigrate(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	defer pool.Close()

	return postgres.EnsureSchema(ctx, pool, logger)
}

func printUsage(w *os.File) {
	_, _ = fmt.Fprintln(w, "usage:")
	_, _ = fmt.Fprintln(w, "  go run ./cmd/cli create-sample-event <org-slug/project-slug> <sample-type>")
	_, _ = fmt.Fprintln(w, "  go run ./cmd/cli migrate")
}
