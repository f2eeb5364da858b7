// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-login-server application. It aggregates all sub-configurations and is
// populated by merging values from a .env file, environment variables,
// command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token, password hashing and bootstrap settings.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the relational database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`

	// DotEnvPath is the optional path to a .env file loaded before the
	// environment is parsed. Variables already present in the process
	// environment are never overwritten by the file.
	// Populated via the DOTENV environment variable.
	DotEnvPath string `env:"DOTENV"`
}

// App holds application-level configuration values that control security,
// token lifecycle, and versioning.
type App struct {
	// TokenSignKey is the HMAC secret used to sign and verify access tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// RefreshTokenSignKey is the HMAC secret for refresh tokens. When empty,
	// TokenSignKey is used for both kinds.
	// Env: APP_REFRESH_TOKEN_SIGN_KEY
	RefreshTokenSignKey string `env:"REFRESH_TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// AccessTokenDuration specifies how long an access token remains valid
	// (e.g. "30m").
	// Env: APP_ACCESS_TOKEN_DURATION
	AccessTokenDuration time.Duration `env:"ACCESS_TOKEN_DURATION"`

	// RefreshTokenDuration specifies how long a refresh token remains valid
	// (e.g. "168h").
	// Env: APP_REFRESH_TOKEN_DURATION
	RefreshTokenDuration time.Duration `env:"REFRESH_TOKEN_DURATION"`

	// RotateRefreshTokens makes every successful refresh issue and store a
	// new refresh token, invalidating the presented one.
	// Env: APP_ROTATE_REFRESH_TOKENS
	RotateRefreshTokens bool `env:"ROTATE_REFRESH_TOKENS"`

	// PasswordHashAlgorithm selects the hash for new passwords: "bcrypt"
	// or "argon2id". Stored hashes of either kind keep verifying.
	// Env: APP_PASSWORD_HASH_ALGORITHM
	PasswordHashAlgorithm string `env:"PASSWORD_HASH_ALGORITHM"`

	// PasswordHashCost is the bcrypt cost used for new password hashes.
	// Env: APP_PASSWORD_HASH_COST
	PasswordHashCost int `env:"PASSWORD_HASH_COST"`

	// AdminLoginID is the login ID of the admin account created at startup
	// when it does not exist yet. Empty disables bootstrapping.
	// Env: APP_ADMIN_LOGIN_ID
	AdminLoginID string `env:"ADMIN_LOGIN_ID"`

	// AdminPassword is the password of the bootstrapped admin. When empty,
	// a random password is generated and printed once to stderr.
	// Env: APP_ADMIN_PASSWORD
	AdminPassword string `env:"ADMIN_PASSWORD"`

	// Version is the semantic version string of the running application.
	// Exposed via the GET / endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is the minimal zerolog level ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Storage groups the configuration for all storage backends used by the
// application.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is the database connection string. A postgres:// or postgresql://
	// URL selects PostgreSQL; anything else is opened with SQLite
	// (e.g. "file:login.db?_foreign_keys=on" or "sqlite://login.db").
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`

	// MaxOpenConns limits the number of open connections in the pool.
	// Env: STORAGE_DB_MAX_OPEN_CONNS
	MaxOpenConns int `env:"MAX_OPEN_CONNS"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown of the HTTP server.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// RefreshTokenCleanupInterval is how often expired refresh tokens are
	// cleared from user records. Zero or negative disables the worker.
	// Env: WORKERS_REFRESH_TOKEN_CLEANUP_INTERVAL
	RefreshTokenCleanupInterval time.Duration `env:"REFRESH_TOKEN_CLEANUP_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (later sources override earlier non-zero fields):
//  1. .env file (only fills variables missing from the environment)
//  2. Environment variables
//  3. Command-line flags
//  4. JSON file (path resolved from sources 2 and 3)
//
// Defaults are applied to every field still empty after merging.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
