// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced by the transport layer itself. Their messages are
// written to clients verbatim.
var (
	// ErrTokenNotFound is returned by the auth middleware when the request
	// carries no "Authorization" header.
	ErrTokenNotFound = errors.New("Token Not Found")

	// ErrInvalidToken is returned when the "Authorization" header is not of
	// the form "Bearer <token>" or the token fails verification.
	ErrInvalidToken = errors.New("Invalid token")

	// ErrInvalidJSON is returned when a request body cannot be decoded.
	ErrInvalidJSON = errors.New("Invalid JSON was passed")

	errInternal         = errors.New("Internal Server Error")
	errNotFound         = errors.New("Not Found")
	errMethodNotAllowed = errors.New("Method Not Allowed")
)
