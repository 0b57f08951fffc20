// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-voting-server application. It aggregates all sub-configurations and is
// populated by merging built-in defaults, an optional .env file, environment
// variables, command-line flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token and password hashing settings.
	App App `envPrefix:"APP_"`

	// Storage holds the database connection settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Log holds logger settings.
	Log Log `envPrefix:"LOG_"`

	// Port is the listen port used when Server.HTTPAddress is empty.
	// Env: PORT
	Port int `env:"PORT"`

	// JWTSecret is an alias for App.TokenSignKey kept for deployments that
	// still export JWT_SECRET.
	// Env: JWT_SECRET
	JWTSecret string `env:"JWT_SECRET"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the configuration for the storage backend.
type Storage struct {
	// DB holds the database connection settings.
	DB DB `envPrefix:"DB_"`
}

// App holds application-level configuration values that control token
// lifecycle and password hashing.
type App struct {
	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Must be kept confidential.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT token remains valid after
	// issuance (e.g. "1h", "30000s").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// BcryptCost is the bcrypt work factor for password hashing.
	// Env: APP_BCRYPT_COST
	BcryptCost int `env:"BCRYPT_COST"`
}

// Server holds network and timeout settings for the HTTP server.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:3000").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// Env: SERVER_READ_TIMEOUT
	ReadTimeout time.Duration `env:"READ_TIMEOUT"`

	// Env: SERVER_WRITE_TIMEOUT
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown after SIGINT/SIGTERM.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// DB holds connection settings for the database backend.
type DB struct {
	// DSN selects the backend by its scheme:
	// "postgres://…", "sqlite://path" / "file:…", or "mongodb://…".
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`

	// Name is the MongoDB database name. Ignored by SQL backends.
	// Env: STORAGE_DB_NAME
	Name string `env:"NAME"`
}

// Log holds logger settings.
type Log struct {
	// Level is a zerolog level name ("debug", "info", ...).
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Built-in defaults
//  2. .env file in the working directory (does not override the process env)
//  3. Environment variables
//  4. Command-line flags (args, without the program name)
//  5. JSON file (path resolved from sources 3 and 4)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withDotEnv().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
