// SPDX-License-Identifier: Apache-2.0

package httptransport

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/signalhouse/event-monitor/internal/domain"
	"github.com/signalhouse/event-monitor/internal/metrics"
	"github.com/signalhouse/event-monitor/internal/transport/middleware"
)

type createOrganizationRequest struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type createProjectRequest struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type createSampleEventRequest struct {
	SampleType string `json:"sample_type"`
}

type Deps struct {
	Projects    ProjectDirectory
	Events      EventLister
	Provisioner SampleEventProvisioner
	Health      HealthChecker
	Logger      *slog.Logger
	AdminToken  string
	Version     string
	Commit      string
	BuildDate   string
}

func NewRouter(deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	metrics.Init()
	version := valueOrDefault(deps.Version, "dev")
	commit := valueOrDefault(deps.Commit, "none")
	buildDate := valueOrDefault(deps.BuildDate, "unknown")

	r := chi.NewRouter()
	r.Use(requestIDMiddleware())
	r.Use(requestLoggingMiddleware(logger))

	// ---------------- HEALTH ----------------

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if deps.Health != nil {
			if err := deps.Health.Check(r.Context()); err != nil {
				logger.Error("health check failed", "error", err)
				http.Error(w, "unhealthy", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// ---------------- METRICS ----------------

	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// ---------------- VERSION ----------------

	r.Get("/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version":    version,
			"commit":     commit,
			"build_date": buildDate,
		})
	})

	// ---------------- ORGANIZATIONS (ADMIN) ----------------

	if deps.Projects != nil {
		r.Route("/organizations", func(admin chi.Router) {
			admin.Use(middleware.AdminTokenAuth(deps.AdminToken, logger))

			admin.Post("/", func(w http.ResponseWriter, r *http.Request) {
				var reqBody createOrganizationRequest
				if err := decodeJSONBody(r, &reqBody); err != nil {
					http.Error(w, "invalid request body", http.StatusBadRequest)
					return
				}

				org, err := deps.Projects.CreateOrganization(r.Context(), domain.CreateOrganizationParams{
					Slug: reqBody.Slug,
					Name: reqBody.Name,
				})
				if err != nil {
					if errors.Is(err, domain.ErrInvalidSlug) {
						http.Error(w, "invalid organization slug", http.StatusBadRequest)
						return
					}
					if errors.Is(err, domain.ErrSlugTaken) {
						http.Error(w, "organization slug already taken", http.StatusConflict)
						return
					}
					logger.Error("create organization failed", "error", err)
					http.Error(w, "failed to create organization", http.StatusInternalServerError)
					return
				}

				writeJSON(w, http.StatusCreated, org)
			})

			admin.Post("/{org}/projects", func(w http.ResponseWriter, r *http.Request) {
				var reqBody createProjectRequest
				if err := decodeJSONBody(r, &reqBody); err != nil {
					http.Error(w, "invalid request body", http.StatusBadRequest)
					return
				}

				project, err := deps.Projects.CreateProject(r.Context(), domain.CreateProjectParams{
					OrganizationSlug: chi.URLParam(r, "org"),
					Slug:             reqBody.Slug,
					Name:             reqBody.Name,
				})
				if err != nil {
					if errors.Is(err, domain.ErrInvalidSlug) {
						http.Error(w, "invalid project slug", http.StatusBadRequest)
						return
					}
					if errors.Is(err, domain.ErrOrganizationNotFound) {
						http.Error(w, "organization not found", http.StatusNotFound)
						return
					}
					if errors.Is(err, domain.ErrSlugTaken) {
						http.Error(w, "project slug already taken", http.StatusConflict)
						return
					}
					logger.Error("create project failed", "error", err)
					http.Error(w, "failed to create project", http.StatusInternalServerError)
					return
				}

				writeJSON(w, http.StatusCreated, project)
			})
		})
	}

	// ---------------- PROJECTS ----------------

	if deps.Projects != nil {
		r.Get("/projects/{org}/{project}", func(w http.ResponseWriter, r *http.Request) {
			project, err := deps.Projects.FindProject(r.Context(), chi.URLParam(r, "org"), chi.URLParam(r, "project"))
			if err != nil {
				if errors.Is(err, domain.ErrProjectNotFound) {
					http.Error(w, "project not found", http.StatusNotFound)
					return
				}
				logger.Error("get project failed", "error", err)
				http.Error(w, "failed to get project", http.StatusInternalServerError)
				return
			}

			writeJSON(w, http.StatusOK, project)
		})
	}

	// ---------------- EVENTS ----------------

	if deps.Projects != nil && deps.Events != nil {
		r.Get("/projects/{org}/{project}/events", func(w http.ResponseWriter, r *http.Request) {
			project, err := deps.Projects.FindProject(r.Context(), chi.URLParam(r, "org"), chi.URLParam(r, "project"))
			if err != nil {
				if errors.Is(err, domain.ErrProjectNotFound) {
					http.Error(w, "project not found", http.StatusNotFound)
					return
				}
				logger.Error("get project failed", "error", err)
				http.Error(w, "failed to list events", http.StatusInternalServerError)
				return
			}

			limit, err := parseLimit(r.URL.Query().Get("limit"))
			if err != nil {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}

			events, err := deps.Events.ListRecentEvents(r.Context(), project.ID, limit)
			if err != nil {
				logger.Error("list events failed", "project_id", project.ID, "error", err)
				http.Error(w, "failed to list events", http.StatusInternalServerError)
				return
			}

			writeJSON(w, http.StatusOK, struct {
				ProjectID string               `json:"project_id"`
				Events    []domain.EventRecord `json:"events"`
			}{
				ProjectID: project.ID.String(),
				Events:    events,
			})
		})
	}

	// ---------------- SAMPLE EVENTS ----------------

	if deps.Provisioner != nil {
		r.Post("/projects/{org}/{project}/sample-events", func(w http.ResponseWriter, r *http.Request) {
			var reqBody createSampleEventRequest
			if err := decodeJSONBody(r, &reqBody); err != nil {
				http.Error(w, "invalid request body", http.StatusBadRequest)
				return
			}

			projectRef := chi.URLParam(r, "org") + "/" + chi.URLParam(r, "project")
			eventID, err := deps.Provisioner.ProvisionSampleEvent(r.Context(), projectRef, reqBody.SampleType)
			if err != nil {
				if errors.Is(err, domain.ErrUnknownSampleType) {
					http.Error(w, "no event created: unknown sample type", http.StatusBadRequest)
					return
				}
				if errors.Is(err, domain.ErrInvalidProjectRef) {
					http.Error(w, "invalid project reference", http.StatusBadRequest)
					return
				}
				if errors.Is(err, domain.ErrProjectNotFound) {
					http.Error(w, "project not found", http.StatusNotFound)
					return
				}
				logger.Error("provision sample event failed", "project", projectRef, "error", err)
				http.Error(w, "failed to create sample event", http.StatusInternalServerError)
				return
			}

			logger.Info("sample event created via API", "project", projectRef, "event_id", eventID)

			writeJSON(w, http.StatusCreated, map[string]string{
				"event_id": eventID.String(),
			})
		})
	}

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSONBody(r *http.Request, dst any) error {
	if r == nil || r.Body == nil || r.Body == http.NoBody {
		return errors.New("missing request body")
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}

	// Ensure there is only one JSON object.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must contain exactly one JSON object")
	}

	return nil
}

func parseLimit(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, errors.New("invalid limit")
	}
	return limit, nil
}

func valueOrDefault(value, defaultValue string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return defaultValue
	}
	return trimmed
}
