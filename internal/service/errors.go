package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials covers both an unknown login ID and a wrong
	// password so callers cannot tell the two apart.
	ErrInvalidCredentials = errors.New("invalid login id or password")

	// ErrInvalidToken covers malformed, expired, mis-signed, wrong-subject
	// and revoked tokens alike.
	ErrInvalidToken = errors.New("invalid token")

	ErrUserNotFound = errors.New("user not found")

	ErrTokenCreationFailed      = errors.New("token creation failed")
	ErrNicknameGenerationFailed = errors.New("could not generate an unused nickname")
	ErrVersionIsNotSpecified    = errors.New("app version is not specified")
)
