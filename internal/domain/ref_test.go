// SPDX-License-Identifier: Apache-2.0

package domain

import (
	"errors"
	"testing"
)

func TestParseProjectRef(t *testing.T) {
	cases := []struct {
		ref     string
		org     string
		project string
		err     error
	}{
		{ref: "acme/web", org: "acme", project: "web"},
		{ref: "acme/internal-tools", org: "acme", project: "internal-tools"},
		{ref: "acmeweb", err: ErrInvalidProjectRef},
		{ref: "", err: ErrInvalidProjectRef},
		{ref: "/web", err: ErrInvalidProjectRef},
		{ref: "acme/", err: ErrInvalidProjectRef},
		{ref: "/", err: ErrInvalidProjectRef},
		{ref: "acme/web/extra", err: ErrInvalidProjectRef},
		{ref: "a//b", err: ErrInvalidProjectRef},
	}

	for _, tc := range cases {
		org, project, err := ParseProjectRef(tc.ref)
		if tc.err != nil {
			if !errors.Is(err, tc.err) {
				t.Fatalf("ParseProjectRef(%q): expected error %v got %v", tc.ref, tc.err, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseProjectRef(%q): unexpected error %v", tc.ref, err)
		}
		if org != tc.org || project != tc.project {
			t.Fatalf("ParseProjectRef(%q): expected (%q, %q) got (%q, %q)",
				tc.ref, tc.org, tc.project, org, project)
		}
	}
}
