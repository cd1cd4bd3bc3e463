// SPDX-License-Identifier: Apache-2.0

// Package provision implements the sample event workflow: resolve a
// project by its "org/project" reference, create one synthetic event
// for it, and record the project's first-event timestamp if unset.
package provision

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/signalhouse/event-monitor/internal/domain"
	"github.com/signalhouse/event-monitor/internal/metrics"
)

type ProjectDirectory interface {
	FindProject(ctx context.Context, orgSlug, projectSlug string) (domain.Project, error)
	RecordFirstEvent(ctx context.Context, projectID uuid.UUID, at time.Time) error
}

type SampleFactory interface {
	CreateSampleEvent(ctx context.Context, project domain.Project, sampleType string) (domain.EventRecord, error)
}

type Provisioner struct {
	directory ProjectDirectory
	factory   SampleFactory
	now       func() time.Time
	logger    *slog.Logger
}

type Deps struct {
	Directory ProjectDirectory
	Factory   SampleFactory
	Now       func() time.Time
	Logger    *slog.Logger
}

func New(deps Deps) *Provisioner {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	return &Provisioner{
		directory: deps.Directory,
		factory:   deps.Factory,
		now:       now,
		logger:    logger,
	}
}

// ProvisionSampleEvent creates one sample event for the project named
// by projectRef ("org-slug/project-slug") and returns its ID. The call
// is single-pass with no retries: invoking it twice creates two events.
//
// The reference is validated before any external call. The first-event
// timestamp update is best-effort; its failure is logged and does not
// undo the already-created event.
func (p *Provisioner) ProvisionSampleEvent(ctx context.Context, projectRef, sampleType string) (uuid.UUID, error) {
	started := time.Now()

	orgSlug, projectSlug, err := domain.ParseProjectRef(projectRef)
	if err != nil {
		metrics.IncSampleEventFailed("invalid_reference")
		return uuid.Nil, err
	}

	project, err := p.directory.FindProject(ctx, orgSlug, projectSlug)
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			metrics.IncSampleEventFailed("project_not_found")
		} else {
			metrics.IncSampleEventFailed("internal")
		}
		return uuid.Nil, err
	}

	event, err := p.factory.CreateSampleEvent(ctx, project, sampleType)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownSampleType) {
			metrics.IncSampleEventFailed("unknown_sample_type")
			p.logger.Warn("no sample event created",
				"project", projectRef,
				"sample_type", sampleType,
			)
		} else {
			metrics.IncSampleEventFailed("internal")
		}
		return uuid.Nil, err
	}

	if project.FirstEventAt == nil {
		if err := p.directory.RecordFirstEvent(ctx, project.ID, p.now().UTC()); err != nil {
			// The event already exists; losing the marker update is
			// preferable to reporting a phantom failure.
			p.logger.Warn("record first event failed",
				"project_id", project.ID,
				"event_id", event.ID,
				"error", err,
			)
		} else {
			metrics.IncFirstEventRecorded()
		}
	}

	metrics.IncSampleEventCreated(event.Platform)
	metrics.ObserveProvisionDuration(time.Since(started))

	p.logger.Info("sample event provisioned",
		"event_id", event.ID,
		"project", projectRef,
		"sample_type", sampleType,
		"duration_ms", time.Since(started).Milliseconds(),
	)

	return event.ID, nil
}
