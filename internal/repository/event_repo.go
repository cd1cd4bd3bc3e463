// SPDX-License-Identifier: Apache-2.0

package repository

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/signalhouse/event-monitor/internal/domain"
)

type EventRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewEventRepository(pool *pgxpool.Pool, logger *slog.Logger) *EventRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &EventRepository{
		pool:   pool,
		logger: logger,
	}
}

func (r *EventRepository) InsertEvent(ctx context.Context, event domain.EventRecord) error {
	if _, err := r.pool.Exec(ctx, `
		INSERT INTO events (id, project_id, platform, message, payload, sample, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		event.ID,
		event.ProjectID,
		event.Platform,
		event.Message,
		event.Payload,
		event.Sample,
		event.CreatedAt,
	); err != nil {
		r.logger.Error("insert event failed",
			"event_id", event.ID,
			"project_id", event.ProjectID,
			"error", err,
		)
		return err
	}

	return nil
}

func (r *EventRepository) ListRecentEvents(ctx context.Context, projectID uuid.UUID, limit int) ([]domain.EventRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, project_id, platform, message, payload, sample, created_at
		FROM events
		WHERE project_id=$1
		ORDER BY created_at DESC
		LIMIT $2
	`,
		projectID,
		limit,
	)
	if err != nil {
		r.logger.Error("list events query failed",
			"project_id", projectID,
			"error", err,
		)
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.EventRecord, 0, 8)
	for rows.Next() {
		var ev domain.EventRecord
		if err := rows.Scan(
			&ev.ID,
			&ev.ProjectID,
			&ev.Platform,
			&ev.Message,
			&ev.Payload,
			&ev.Sample,
			&ev.CreatedAt,
		); err != nil {
			r.logger.Error("scan event row failed",
				"project_id", projectID,
				"error", err,
			)
			return nil, err
		}
		out = append(out, ev)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("events rows iteration failed",
			"project_id", projectID,
			"error", err,
		)
		return nil, err
	}

	return out, nil
}
