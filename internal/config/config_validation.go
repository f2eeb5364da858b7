// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup. It runs after
// defaults have been applied.
func (cfg *StructuredConfig) validate() error {
	app := cfg.App
	if app.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}
	if app.AccessTokenDuration <= 0 || app.RefreshTokenDuration <= 0 {
		return fmt.Errorf("%w: token durations must be positive", ErrInvalidAppConfigs)
	}
	if app.AccessTokenDuration >= app.RefreshTokenDuration {
		return fmt.Errorf("%w: access token must expire before refresh token", ErrInvalidAppConfigs)
	}
	if app.PasswordHashCost < bcrypt.MinCost || app.PasswordHashCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: password hash cost must be in [%d, %d]", ErrInvalidAppConfigs, bcrypt.MinCost, bcrypt.MaxCost)
	}

	switch app.PasswordHashAlgorithm {
	case "bcrypt", "argon2id":
	default:
		return fmt.Errorf("%w: unknown password hash algorithm %q", ErrInvalidAppConfigs, app.PasswordHashAlgorithm)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout < 0 || cfg.Server.ShutdownTimeout < 0 {
		return ErrInvalidServerConfigs
	}

	return nil
}
