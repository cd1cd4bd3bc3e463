// SPDX-License-Identifier: Apache-2.0

package repository

import (
	"io"
	"log/slog"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestNewProjectRepository(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var pool *pgxpool.Pool

	repo := NewProjectRepository(pool, logger)
	if repo == nil {
		t.Fatal("expected project repository instance")
	}
	if repo.pool != pool {
		t.Fatal("expected pool reference to be preserved")
	}
	if repo.logger != logger {
		t.Fatal("expected logger reference to be preserved")
	}
}

func TestNewProjectRepositoryDefaultLogger(t *testing.T) {
	repo := NewProjectRepository(nil, nil)
	if repo.logger == nil {
		t.Fatal("expected default logger to be set")
	}
}

func TestNewEventRepository(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var pool *pgxpool.Pool

	repo := NewEventRepository(pool, logger)
	if repo == nil {
		t.Fatal("expected event repository instance")
	}
	if repo.pool != pool {
		t.Fatal("expected pool reference to be preserved")
	}
	if repo.logger != logger {
		t.Fatal("expected logger reference to be preserved")
	}
}

func TestSlugPattern(t *testing.T) {
	valid := []string{"acme", "acme-web", "a1", "web2"}
	for _, slug := range valid {
		if !slugPattern.MatchString(slug) {
			t.Fatalf("expected slug %q to be valid", slug)
		}
	}

	invalid := []string{"", "-acme", "Acme", "acme web", "acme/web", "acme_web"}
	for _, slug := range invalid {
		if slugPattern.MatchString(slug) {
			t.Fatalf("expected slug %q to be invalid", slug)
		}
	}
}
