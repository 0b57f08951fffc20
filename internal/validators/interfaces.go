// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides abstractions for input validation and
// enforcement of business rules across the application.
//
// Core concepts:
//   - Validator: generic interface to validate arbitrary values or structures.
//     Supports optional field-level scoping for targeted validation.
//
// Every check is static: validators never touch storage. Rules that need
// I/O (admin cardinality, duplicate Aadhar Card Numbers) belong to the
// service layer.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
// Implementations check structure and field formats.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
