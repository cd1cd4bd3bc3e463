// SPDX-License-Identifier: Apache-2.0

package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventRecord is immutable once stored. Sample marks events produced by
// the sample data factory rather than real traffic.
type EventRecord struct {
	ID        uuid.UUID       `json:"id"`
	ProjectID uuid.UUID       `json:"project_id"`
	Platform  string          `json:"platform"`
	Message   string          `json:"message"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Sample    bool            `json:"sample"`
	CreatedAt time.Time       `json:"created_at"`
}
