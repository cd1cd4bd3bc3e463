// SPDX-License-Identifier: Apache-2.0

package repository

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/signalhouse/event-monitor/internal/domain"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

const pgUniqueViolation = "23505"

type ProjectRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewProjectRepository(pool *pgxpool.Pool, logger *slog.Logger) *ProjectRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &ProjectRepository{
		pool:   pool,
		logger: logger,
	}
}

func (r *ProjectRepository) CreateOrganization(ctx context.Context, params domain.CreateOrganizationParams) (domain.Organization, error) {
	slug := strings.TrimSpace(params.Slug)
	if !slugPattern.MatchString(slug) {
		return domain.Organization{}, domain.ErrInvalidSlug
	}

	name := strings.TrimSpace(params.Name)
	if name == "" {
		name = slug
	}

	org := domain.Organization{
		ID:   uuid.New(),
		Slug: slug,
		Name: name,
	}

	if err := r.pool.QueryRow(ctx, `
		INSERT INTO organizations (id, slug, name)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`,
		org.ID,
		org.Slug,
		org.Name,
	).Scan(&org.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.Organization{}, domain.ErrSlugTaken
		}
		r.logger.Error("create organization failed", "slug", slug, "error", err)
		return domain.Organization{}, err
	}

	r.logger.Info("organization created", "organization_id", org.ID, "slug", slug)
	return org, nil
}

func (r *ProjectRepository) CreateProject(ctx context.Context, params domain.CreateProjectParams) (domain.Project, error) {
	slug := strings.TrimSpace(params.Slug)
	if !slugPattern.MatchString(slug) {
		return domain.Project{}, domain.ErrInvalidSlug
	}

	orgSlug := strings.TrimSpace(params.OrganizationSlug)

	var orgID uuid.UUID
	if err := r.pool.QueryRow(ctx,
		`SELECT id FROM organizations WHERE slug=$1`,
		orgSlug,
	).Scan(&orgID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Project{}, domain.ErrOrganizationNotFound
		}
		r.logger.Error("resolve organization failed", "organization_slug", orgSlug, "error", err)
		return domain.Project{}, err
	}

	name := strings.TrimSpace(params.Name)
	if name == "" {
		name = slug
	}

	project := domain.Project{
		ID:               uuid.New(),
		OrganizationID:   orgID,
		OrganizationSlug: orgSlug,
		Slug:             slug,
		Name:             name,
	}

	if err := r.pool.QueryRow(ctx, `
		INSERT INTO projects (id, organization_id, slug, name)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`,
		project.ID,
		project.OrganizationID,
		project.Slug,
		project.Name,
	).Scan(&project.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.Project{}, domain.ErrSlugTaken
		}
		r.logger.Error("create project failed",
			"organization_slug", orgSlug,
			"slug", slug,
			"error", err,
		)
		return domain.Project{}, err
	}

	r.logger.Info("project created",
		"project_id", project.ID,
		"organization_slug", orgSlug,
		"slug", slug,
	)
	return project, nil
}

// FindProject resolves the unique project addressed by the slug pair.
// A missing row surfaces as domain.ErrProjectNotFound rather than a
// driver error, so callers can match it with errors.Is.
func (r *ProjectRepository) FindProject(ctx context.Context, orgSlug, projectSlug string) (domain.Project, error) {
	var project domain.Project
	if err := r.pool.QueryRow(ctx, `
		SELECT p.id, p.organization_id, o.slug, p.slug, p.name, p.first_event_at, p.created_at
		FROM projects p
		JOIN organizations o ON p.organization_id = o.id
		WHERE o.slug=$1 AND p.slug=$2
	`,
		orgSlug,
		projectSlug,
	).Scan(
		&project.ID,
		&project.OrganizationID,
		&project.OrganizationSlug,
		&project.Slug,
		&project.Name,
		&project.FirstEventAt,
		&project.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Project{}, domain.ErrProjectNotFound
		}
		r.logger.Error("find project failed",
			"organization_slug", orgSlug,
			"project_slug", projectSlug,
			"error", err,
		)
		return domain.Project{}, err
	}

	return project, nil
}

// RecordFirstEvent sets the project's first-event timestamp if it is
// still unset. The guard lives in the WHERE clause, so an already-set
// timestamp is never overwritten and the call stays a no-op.
func (r *ProjectRepository) RecordFirstEvent(ctx context.Context, projectID uuid.UUID, at time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE projects
		SET first_event_at=$2
		WHERE id=$1 AND first_event_at IS NULL
	`, projectID, at)
	if err != nil {
		r.logger.Error("record first event failed", "project_id", projectID, "error", err)
		return err
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug("first event already recorded", "project_id", projectID)
		return nil
	}

	r.logger.Info("first event recorded", "project_id", projectID, "at", at)
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
