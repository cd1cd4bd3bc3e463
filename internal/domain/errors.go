// SPDX-License-Identifier: Apache-2.0

package domain

import "errors"

var ErrInvalidProjectRef = errors.New("invalid project reference")
var ErrProjectNotFound = errors.New("project not found")
var ErrOrganizationNotFound = errors.New("organization not found")
var ErrUnknownSampleType = errors.New("unknown sample type")
var ErrInvalidSlug = errors.New("invalid slug")
var ErrSlugTaken = errors.New("slug already taken")
