// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators holds the input validation rules enforced by the
// service layer before any lookup or write.
//
// Each validator implements the generic Validator interface and dispatches
// on the concrete type it is handed. Validation can optionally be scoped to
// specific named fields, which lets callers re-check a single field without
// rerunning the whole rule set.
package validators

import "context"

// Validator validates arbitrary input values. Implementations may perform
// structural validation, semantic checks, cross-field rules.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
