// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks the inputs that reach the collection pipeline
// from outer surfaces before they are used: collection names from URLs and
// commands, filter criteria from query strings, and login credentials.
//
// Handlers, the CLI and the terminal UI share one [Validator] so a value
// rejected by one surface is rejected by all of them.
package validators

import "context"

// Validator validates a model value. Field names restrict validation to a
// subset of the value's fields; without them every field is checked.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
