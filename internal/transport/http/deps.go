// SPDX-License-Identifier: Apache-2.0

package httptransport

import (
	"context"

	"github.com/google/uuid"
	"github.com/signalhouse/event-monitor/internal/domain"
)

type ProjectDirectory interface {
	CreateOrganization(ctx context.Context, params domain.CreateOrganizationParams) (domain.Organization, error)
	CreateProject(ctx context.Context, params domain.CreateProjectParams) (domain.Project, error)
	FindProject(ctx context.Context, orgSlug, projectSlug string) (domain.Project, error)
}

type EventLister interface {
	ListRecentEvents(ctx context.Context, projectID uuid.UUID, limit int) ([]domain.EventRecord, error)
}

type SampleEventProvisioner interface {
	ProvisionSampleEvent(ctx context.Context, projectRef, sampleType string) (uuid.UUID, error)
}

type HealthChecker interface {
	Check(ctx context.Context) error
}
