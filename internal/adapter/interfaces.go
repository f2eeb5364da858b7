// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is a Go client for the login server's REST API.
//
// [ServerAdapter] keeps the access and refresh tokens of the last login so
// that authenticated calls and token refreshes need no bookkeeping by the
// caller. Non-2xx responses are mapped to the sentinel errors in errors.go,
// so callers can use [errors.Is] (e.g. [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-login-server/models"
)

// ServerAdapter talks to a running login server. Implementations are safe
// for concurrent use.
type ServerAdapter interface {
	// Tokens returns the access and refresh tokens currently held.
	Tokens() (accessToken, refreshToken string)

	// SetTokens replaces the held tokens, e.g. when restoring a session.
	SetTokens(accessToken, refreshToken string)

	// Register creates an account. It does not log in.
	Register(ctx context.Context, req models.RegisterRequest) (models.RegisterResponse, error)

	// IsLoginIDAvailable reports whether loginID is still free.
	IsLoginIDAvailable(ctx context.Context, loginID string) (bool, error)

	// Login authenticates and stores the returned token pair.
	Login(ctx context.Context, loginID, password string) error

	// Refresh exchanges the held refresh token for a new access token. A
	// rotated refresh token, when the server issues one, replaces the held
	// one.
	Refresh(ctx context.Context, loginID string) error

	// Logout revokes the refresh token on the server and forgets both
	// tokens locally.
	Logout(ctx context.Context) error

	// Me returns the account of the logged-in user.
	Me(ctx context.Context) (models.UserResponse, error)

	// GetUser looks up any account; the logged-in user must be an admin.
	GetUser(ctx context.Context, loginID string) (models.UserResponse, error)

	// AppInfo returns the server name and version.
	AppInfo(ctx context.Context) (models.AppInfoResponse, error)
}
