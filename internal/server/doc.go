// Package server runs the voting HTTP API.
//
// It owns the http.Server lifecycle: startup, signal handling, and graceful
// shutdown bounded by the configured timeout.
package server
