// SPDX-License-Identifier: Apache-2.0

package sampledata

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/signalhouse/event-monitor/internal/domain"
)

type recordingWriter struct {
	events []domain.EventRecord
	err    error
}

func (w *recordingWriter) InsertEvent(ctx context.Context, event domain.EventRecord) error {
	if w.err != nil {
		return w.err
	}
	w.events = append(w.events, event)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testProject() domain.Project {
	return domain.Project{
		ID:               uuid.New(),
		OrganizationSlug: "acme",
		Slug:             "web",
		Name:             "web",
	}
}

func TestNewFactoryLoadsEmbeddedFixtures(t *testing.T) {
	factory, err := NewFactory(Deps{Events: &recordingWriter{}, Logger: discardLogger()})
	if err != nil {
		t.Fatalf("new factory: %v", err)
	}

	types := factory.SampleTypes()
	if len(types) == 0 {
		t.Fatal("expected at least one sample type")
	}

	for _, want := range []string{"go", "java", "javascript", "python", "ruby"} {
		if _, ok := factory.templates[want]; !ok {
			t.Fatalf("expected sample type %q to be registered (have %v)", want, types)
		}
	}

	for name, tmpl := range factory.templates {
		if tmpl.message == "" {
			t.Fatalf("sample type %q: expected a headline message", name)
		}
		if !json.Valid(tmpl.payload) {
			t.Fatalf("sample type %q: fixture payload is not valid JSON", name)
		}
	}
}

func TestCreateSampleEventPersistsOneEvent(t *testing.T) {
	writer := &recordingWriter{}
	fixed := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	factory, err := NewFactory(Deps{
		Events: writer,
		Now:    func() time.Time { return fixed },
		Logger: discardLogger(),
	})
	if err != nil {
		t.Fatalf("new factory: %v", err)
	}

	project := testProject()
	event, err := factory.CreateSampleEvent(context.Background(), project, "python")
	if err != nil {
		t.Fatalf("create sample event: %v", err)
	}

	if event.ID == uuid.Nil {
		t.Fatal("expected a generated event ID")
	}
	if event.ProjectID != project.ID {
		t.Fatalf("expected project ID %s got %s", project.ID, event.ProjectID)
	}
	if event.Platform != "python" {
		t.Fatalf("expected platform python got %s", event.Platform)
	}
	if !event.Sample {
		t.Fatal("expected event to be marked as sample")
	}
	if !event.CreatedAt.Equal(fixed) {
		t.Fatalf("expected created_at %s got %s", fixed, event.CreatedAt)
	}

	if len(writer.events) != 1 {
		t.Fatalf("expected exactly one persisted event, got %d", len(writer.events))
	}
	if writer.events[0].ID != event.ID {
		t.Fatal("expected persisted event to match returned event")
	}
}

func TestCreateSampleEventUnknownType(t *testing.T) {
	writer := &recordingWriter{}
	factory, err := NewFactory(Deps{Events: writer, Logger: discardLogger()})
	if err != nil {
		t.Fatalf("new factory: %v", err)
	}

	for _, sampleType := range []string{"not-a-real-platform", "", "Python"} {
		_, err := factory.CreateSampleEvent(context.Background(), testProject(), sampleType)
		if !errors.Is(err, domain.ErrUnknownSampleType) {
			t.Fatalf("sample type %q: expected ErrUnknownSampleType got %v", sampleType, err)
		}
	}

	if len(writer.events) != 0 {
		t.Fatalf("expected no persisted events, got %d", len(writer.events))
	}
}

func TestCreateSampleEventWriterFailure(t *testing.T) {
	writeErr := errors.New("insert failed")
	factory, err := NewFactory(Deps{Events: &recordingWriter{err: writeErr}, Logger: discardLogger()})
	if err != nil {
		t.Fatalf("new factory: %v", err)
	}

	if _, err := factory.CreateSampleEvent(context.Background(), testProject(), "go"); !errors.Is(err, writeErr) {
		t.Fatalf("expected writer error to propagate, got %v", err)
	}
}

func TestCreateSampleEventDistinctIDs(t *testing.T) {
	writer := &recordingWriter{}
	factory, err := NewFactory(Deps{Events: writer, Logger: discardLogger()})
	if err != nil {
		t.Fatalf("new factory: %v", err)
	}

	project := testProject()
	first, err := factory.CreateSampleEvent(context.Background(), project, "ruby")
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	second, err := factory.CreateSampleEvent(context.Background(), project, "ruby")
	if err != nil {
		t.Fatalf("second create: %v", err)
	}

	if first.ID == second.ID {
		t.Fatal("expected two calls to create two distinct events")
	}
	if len(writer.events) != 2 {
		t.Fatalf("expected two persisted events, got %d", len(writer.events))
	}
}
