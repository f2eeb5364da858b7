package config

import "time"

const (
	DefaultTokenIssuer                 = "go-login-server"
	DefaultAccessTokenDuration         = 30 * time.Minute
	DefaultRefreshTokenDuration        = 7 * 24 * time.Hour
	DefaultPasswordHashAlgorithm       = "bcrypt"
	DefaultPasswordHashCost            = 10
	DefaultHTTPAddress                 = "localhost:8080"
	DefaultRequestTimeout              = 30 * time.Second
	DefaultShutdownTimeout             = 10 * time.Second
	DefaultMaxOpenConns                = 10
	DefaultRefreshTokenCleanupInterval = time.Hour
	DefaultVersion                     = "0.1.0"
)

// applyDefaults fills every zero-valued field that has a sensible default.
// Secrets and the DSN have none and are checked by validate.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = DefaultTokenIssuer
	}
	if cfg.App.AccessTokenDuration == 0 {
		cfg.App.AccessTokenDuration = DefaultAccessTokenDuration
	}
	if cfg.App.RefreshTokenDuration == 0 {
		cfg.App.RefreshTokenDuration = DefaultRefreshTokenDuration
	}
	if cfg.App.PasswordHashAlgorithm == "" {
		cfg.App.PasswordHashAlgorithm = DefaultPasswordHashAlgorithm
	}
	if cfg.App.PasswordHashCost == 0 {
		cfg.App.PasswordHashCost = DefaultPasswordHashCost
	}
	if cfg.App.Version == "" {
		cfg.App.Version = DefaultVersion
	}
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Storage.DB.MaxOpenConns == 0 {
		cfg.Storage.DB.MaxOpenConns = DefaultMaxOpenConns
	}
	if cfg.Workers.RefreshTokenCleanupInterval == 0 {
		cfg.Workers.RefreshTokenCleanupInterval = DefaultRefreshTokenCleanupInterval
	}
}
