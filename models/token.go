// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenType distinguishes access tokens from refresh tokens. It is embedded
// into every issued JWT as the "typ" claim so that one kind can never be
// presented in place of the other.
type TokenType string

const (
	// AccessTokenType marks short-lived bearer tokens.
	AccessTokenType TokenType = "access"

	// RefreshTokenType marks long-lived tokens used only to obtain new
	// access tokens.
	RefreshTokenType TokenType = "refresh"
)

// Claims is the claim set carried by tokens issued by the service.
//
// It embeds [jwt.RegisteredClaims] for the standard claims (sub, iss, iat,
// exp, jti). Subject is always the user's login ID. Nickname and Role are
// present on access tokens only.
type Claims struct {
	jwt.RegisteredClaims

	// Nickname is the display name of the subject at issuance time.
	Nickname string `json:"nickname,omitempty"`

	// Role is the authorization role of the subject at issuance time.
	Role Role `json:"role,omitempty"`

	// Type is either [AccessTokenType] or [RefreshTokenType].
	Type TokenType `json:"typ"`
}

// LoginID returns the token subject.
func (c Claims) LoginID() string {
	return c.Subject
}

// Token is a signed JWT together with the values the caller usually needs
// after issuing it.
type Token struct {
	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string

	// ExpiresAt is the moment the token stops being valid.
	ExpiresAt time.Time

	// Claims is the claim set that was signed.
	Claims Claims
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t Token) String() string {
	return t.SignedString
}

// TokenPair is the result of a successful login or refresh.
// RefreshToken is empty when a refresh did not rotate the refresh token.
type TokenPair struct {
	AccessToken  Token
	RefreshToken Token
}
