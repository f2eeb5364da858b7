package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-login-server/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/user_repository_mock.go -package=mock

// UserRepository persists user accounts and their single active refresh
// token.
type UserRepository interface {
	// CreateUser inserts user and returns it with ID and CreatedAt filled.
	// A clash on login_id yields [ErrDuplicateLoginID]; a clash on nickname
	// yields [ErrDuplicateNickname].
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByLoginID returns [ErrNoUserWasFound] when no row matches.
	FindUserByLoginID(ctx context.Context, loginID string) (models.User, error)

	ExistsByLoginID(ctx context.Context, loginID string) (bool, error)
	ExistsByNickname(ctx context.Context, nickname string) (bool, error)

	// SaveRefreshToken overwrites the stored refresh token digest and its
	// expiry. Last writer wins.
	SaveRefreshToken(ctx context.Context, loginID, tokenHash string, expiresAt time.Time) error

	// ClearRefreshToken removes the stored refresh token of loginID.
	ClearRefreshToken(ctx context.Context, loginID string) error

	// ClearExpiredRefreshTokens nulls every refresh token that expired
	// before now and reports how many rows changed.
	ClearExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error)
}

// ErrorClassificator maps driver errors onto the categories the
// repositories act on.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification

	// UniqueViolation reports whether err is a unique-constraint violation
	// and, if so, which constraint (or column description) was hit.
	UniqueViolation(err error) (string, bool)
}
