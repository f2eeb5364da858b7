package service

import (
	"context"

	"github.com/MKhiriev/go-login-server/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// TokenService issues and verifies signed access and refresh tokens.
// Implementations never touch storage; refresh-token revocation is the
// job of [UserService].
type TokenService interface {
	// CreateAccessToken issues a short-lived token carrying the subject,
	// nickname and role.
	CreateAccessToken(loginID, nickname string, role models.Role) (models.Token, error)

	// CreateRefreshToken issues a long-lived token carrying only the subject.
	CreateRefreshToken(loginID string) (models.Token, error)

	// ValidateToken reports whether tokenString is a well-formed, correctly
	// signed, unexpired access token issued for expectedSubject. It fails
	// closed.
	ValidateToken(tokenString, expectedSubject string) bool

	// ValidateRefreshToken is ValidateToken for refresh tokens.
	ValidateRefreshToken(tokenString, expectedSubject string) bool

	// ParseClaims returns the claims of a valid access token or
	// [ErrInvalidToken].
	ParseClaims(tokenString string) (models.Claims, error)

	// ParseRefreshClaims returns the claims of a valid refresh token or
	// [ErrInvalidToken].
	ParseRefreshClaims(tokenString string) (models.Claims, error)

	// Digest returns the keyed digest under which a refresh token is stored.
	Digest(tokenString string) string
}

// UserService is the user directory: registration, credential checks and
// the single active refresh token of each user.
type UserService interface {
	RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error)
	IsLoginIDAvailable(ctx context.Context, loginID string) (bool, error)

	// LoginUser verifies credentials and returns a fresh access/refresh pair.
	// The refresh token is persisted before returning. Unknown login ID and
	// wrong password both yield [ErrInvalidCredentials].
	LoginUser(ctx context.Context, loginID, password string) (models.TokenPair, error)

	// SaveRefreshToken replaces the stored refresh token of loginID.
	SaveRefreshToken(ctx context.Context, loginID string, refreshToken models.Token) error

	// Refresh exchanges a presented refresh token for a new access token.
	// The token must be valid, issued for loginID and equal to the stored
	// one. When rotation is on, the pair also holds a new refresh token.
	Refresh(ctx context.Context, loginID, refreshToken string) (models.TokenPair, error)

	// Logout revokes the stored refresh token of loginID.
	Logout(ctx context.Context, loginID string) error

	GetUser(ctx context.Context, loginID string) (models.User, error)

	// BootstrapAdmin creates the configured admin account if it is missing.
	BootstrapAdmin(ctx context.Context) error
}

// NicknameGenerator produces candidate display names for users who did not
// pick one.
type NicknameGenerator interface {
	Generate() string
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetAppInfo(ctx context.Context) models.AppInfoResponse
}
