// SPDX-License-Identifier: Apache-2.0

package provision

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/signalhouse/event-monitor/internal/domain"
)

// slugGen produces non-empty slug-shaped strings with no separator.
func slugGen() gopter.Gen {
	return gen.RegexMatch(`[a-z0-9][a-z0-9-]{0,19}`)
}

func TestProperty_WellFormedRefsRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("org/project references parse back into their slugs", prop.ForAll(
		func(orgSlug, projectSlug string) bool {
			org, project, err := domain.ParseProjectRef(orgSlug + "/" + projectSlug)
			return err == nil && org == orgSlug && project == projectSlug
		},
		slugGen(),
		slugGen(),
	))

	properties.TestingRun(t)
}

func TestProperty_RefsWithoutSeparatorNeverReachCollaborators(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("references without a separator fail before any external call", prop.ForAll(
		func(ref string) bool {
			if strings.Contains(ref, "/") {
				return true // out of scope for this property
			}

			directory := &fakeDirectory{project: freshProject()}
			factory := &fakeFactory{}
			p := New(Deps{Directory: directory, Factory: factory, Logger: discardLogger()})

			_, err := p.ProvisionSampleEvent(context.Background(), ref, "python")
			return errors.Is(err, domain.ErrInvalidProjectRef) &&
				directory.findCalls == 0 &&
				factory.calls == 0
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
