// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"crypto/subtle"
	"time"
)

// Role is the authorization role assigned to a user account.
type Role string

const (
	// RoleUser is the default role given to every self-registered account.
	RoleUser Role = "USER"

	// RoleAdmin grants access to administrative routes. An admin also
	// satisfies every route that requires [RoleUser].
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Satisfies reports whether a caller holding r may access a route that
// requires the role required. Roles are hierarchical: ADMIN ⊇ USER.
func (r Role) Satisfies(required Role) bool {
	if r == required {
		return true
	}

	return r == RoleAdmin && required == RoleUser
}

// User represents an account entity used for authentication and authorization.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the internal unique identifier of the user, assigned by the database.
	ID int64 `json:"id"`

	// LoginID is the unique login identifier chosen at registration.
	// It is immutable after creation and is used as the JWT subject.
	LoginID string `json:"loginId"`

	// PasswordHash is the bcrypt hash of the user's password.
	// It is never exposed via JSON.
	PasswordHash string `json:"-"`

	// Nickname is the unique display name of the user.
	Nickname string `json:"nickname"`

	// Role is the authorization role of the user.
	Role Role `json:"role"`

	// RefreshToken is the HMAC digest of the latest refresh token issued to
	// the user, if any. Only a token matching it is accepted on refresh; an
	// older token is rejected even when its signature and expiry are valid.
	RefreshToken *string `json:"-"`

	// RefreshTokenExpiresAt is the expiry of RefreshToken.
	RefreshTokenExpiresAt *time.Time `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// HasActiveRefreshToken reports whether digest equals the stored refresh
// token digest and the stored expiry is still in the future relative to now.
func (u User) HasActiveRefreshToken(digest string, now time.Time) bool {
	if u.RefreshToken == nil || digest == "" {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(*u.RefreshToken), []byte(digest)) != 1 {
		return false
	}

	return u.RefreshTokenExpiresAt != nil && u.RefreshTokenExpiresAt.After(now)
}
