// SPDX-License-Identifier: Apache-2.0

package domain

import "strings"

const projectRefSeparator = "/"

// ParseProjectRef splits an "org-slug/project-slug" reference into its
// two slugs. The reference must contain exactly one separator and both
// halves must be non-empty; anything else is ErrInvalidProjectRef.
func ParseProjectRef(ref string) (orgSlug, projectSlug string, err error) {
	if strings.Count(ref, projectRefSeparator) != 1 {
		return "", "", ErrInvalidProjectRef
	}

	orgSlug, projectSlug, _ = strings.Cut(ref, projectRefSeparator)
	if orgSlug == "" || projectSlug == "" {
		return "", "", ErrInvalidProjectRef
	}

	return orgSlug, projectSlug, nil
}
