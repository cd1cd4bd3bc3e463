// SPDX-License-Identifier: Apache-2.0

// Package sampledata creates synthetic demo events from an embedded
// fixture pack. Each supported sample type maps to a canned payload;
// validity of a sample type is decided entirely by the manifest.
package sampledata

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/signalhouse/event-monitor/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed manifest.yaml fixtures/*.json
var embeddedFixtures embed.FS

type EventWriter interface {
	InsertEvent(ctx context.Context, event domain.EventRecord) error
}

type manifest struct {
	SampleTypes map[string]manifestEntry `yaml:"sample_types"`
}

type manifestEntry struct {
	Fixture string `yaml:"fixture"`
	Message string `yaml:"message"`
}

type template struct {
	message string
	payload json.RawMessage
}

type Factory struct {
	events    EventWriter
	templates map[string]template
	now       func() time.Time
	logger    *slog.Logger
}

type Deps struct {
	Events EventWriter
	Now    func() time.Time
	Logger *slog.Logger
}

// NewFactory loads and validates the embedded fixture pack. A broken
// manifest or fixture is a build defect, so construction fails hard.
func NewFactory(deps Deps) (*Factory, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}

	return &Factory{
		events:    deps.Events,
		templates: templates,
		now:       now,
		logger:    logger,
	}, nil
}

// SampleTypes lists the recognized template names in sorted order.
func (f *Factory) SampleTypes() []string {
	types := make([]string, 0, len(f.templates))
	for name := range f.templates {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}

// CreateSampleEvent builds and persists one sample event for the
// project. An unrecognized sampleType is domain.ErrUnknownSampleType
// and nothing is written.
func (f *Factory) CreateSampleEvent(ctx context.Context, project domain.Project, sampleType string) (domain.EventRecord, error) {
	tmpl, ok := f.templates[sampleType]
	if !ok {
		return domain.EventRecord{}, domain.ErrUnknownSampleType
	}

	event := domain.EventRecord{
		ID:        uuid.New(),
		ProjectID: project.ID,
		Platform:  sampleType,
		Message:   tmpl.message,
		Payload:   tmpl.payload,
		Sample:    true,
		CreatedAt: f.now().UTC(),
	}

	if err := f.events.InsertEvent(ctx, event); err != nil {
		f.logger.Error("persist sample event failed",
			"project_id", project.ID,
			"platform", sampleType,
			"error", err,
		)
		return domain.EventRecord{}, err
	}

	f.logger.Info("sample event created",
		"event_id", event.ID,
		"project_id", project.ID,
		"platform", sampleType,
	)
	return event, nil
}

func loadTemplates() (map[string]template, error) {
	raw, err := embeddedFixtures.ReadFile("manifest.yaml")
	if err != nil {
		return nil, fmt.Errorf("read fixture manifest: %w", err)
	}

	var m manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse fixture manifest: %w", err)
	}
	if len(m.SampleTypes) == 0 {
		return nil, fmt.Errorf("fixture manifest declares no sample types")
	}

	templates := make(map[string]template, len(m.SampleTypes))
	for name, entry := range m.SampleTypes {
		if entry.Fixture == "" {
			return nil, fmt.Errorf("sample type %q: missing fixture path", name)
		}

		payload, err := embeddedFixtures.ReadFile(entry.Fixture)
		if err != nil {
			return nil, fmt.Errorf("sample type %q: read fixture: %w", name, err)
		}
		if !json.Valid(payload) {
			return nil, fmt.Errorf("sample type %q: fixture %s is not valid JSON", name, entry.Fixture)
		}

		templates[name] = template{
			message: entry.Message,
			payload: json.RawMessage(payload),
		}
	}

	return templates, nil
}
