// SPDX-License-Identifier: Apache-2.0

package domain

import (
	"time"

	"github.com/google/uuid"
)

type Organization struct {
	ID        uuid.UUID `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Project is addressed externally by its (org slug, project slug) pair.
// FirstEventAt stays nil until the project receives its first event and
// is never cleared afterwards.
type Project struct {
	ID               uuid.UUID  `json:"id"`
	OrganizationID   uuid.UUID  `json:"organization_id"`
	OrganizationSlug string     `json:"organization_slug"`
	Slug             string     `json:"slug"`
	Name             string     `json:"name"`
	FirstEventAt     *time.Time `json:"first_event_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

type CreateOrganizationParams struct {
	Slug string
	Name string
}

type CreateProjectParams struct {
	OrganizationSlug string
	Slug             string
	Name             string
}
