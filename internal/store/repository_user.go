package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-login-server/internal/logger"
	"github.com/MKhiriev/go-login-server/models"
)

// userRepository is the SQL implementation of [UserRepository] for both
// PostgreSQL and SQLite. Queries are built with squirrel using the
// placeholder format of the underlying [DB].
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns it with the
// database-assigned ID. Rolled-back attempts are retried; a lost connection
// is returned as is, since the insert may already have committed.
//
// Error handling:
//   - unique violation on login_id → [ErrDuplicateLoginID].
//   - unique violation on nickname → [ErrDuplicateNickname].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	query, args, err := buildInsertUserQuery(r.db.builder(), user)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.withInsertRetry(ctx, func() error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(&user.ID)
	})
	if err != nil {
		if constraint, ok := r.db.errorClassificator.UniqueViolation(err); ok {
			log.Debug().Str("func", "*userRepository.CreateUser").Str("constraint", constraint).Msg("unique violation")
			return models.User{}, uniqueViolationError(constraint)
		}

		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// FindUserByLoginID retrieves the user whose login_id equals loginID.
//
// Error handling:
//   - No row → [ErrNoUserWasFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindUserByLoginID(ctx context.Context, loginID string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectUserByLoginIDQuery(r.db.builder(), loginID)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var user models.User
	err = r.db.withRetry(ctx, func() error {
		return scanUser(r.db.QueryRowContext(ctx, query, args...), &user)
	})
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.User{}, ErrNoUserWasFound
	case err != nil:
		log.Err(err).Str("func", "*userRepository.FindUserByLoginID").Msg("error selecting user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// ExistsByLoginID reports whether a user with loginID exists.
func (r *userRepository) ExistsByLoginID(ctx context.Context, loginID string) (bool, error) {
	return r.exists(ctx, "login_id", loginID)
}

// ExistsByNickname reports whether a user with nickname exists.
func (r *userRepository) ExistsByNickname(ctx context.Context, nickname string) (bool, error) {
	return r.exists(ctx, "nickname", nickname)
}

func (r *userRepository) exists(ctx context.Context, column, value string) (bool, error) {
	query, args, err := buildExistsQuery(r.db.builder(), column, value)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var one int
	err = r.db.withRetry(ctx, func() error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(&one)
	})
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.exists").Str("column", column).Msg("error checking existence")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return true, nil
}

// SaveRefreshToken overwrites the refresh token digest and expiry of the
// user. [ErrNoUserWasFound] is returned when no row was updated.
func (r *userRepository) SaveRefreshToken(ctx context.Context, loginID, tokenHash string, expiresAt time.Time) error {
	query, args, err := buildSaveRefreshTokenQuery(r.db.builder(), loginID, tokenHash, expiresAt.UTC())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	affected, err := r.execAffected(ctx, "*userRepository.SaveRefreshToken", query, args)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// ClearRefreshToken removes the refresh token of the user.
// [ErrNoUserWasFound] is returned when no row matched.
func (r *userRepository) ClearRefreshToken(ctx context.Context, loginID string) error {
	query, args, err := buildClearRefreshTokenQuery(r.db.builder(), loginID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	affected, err := r.execAffected(ctx, "*userRepository.ClearRefreshToken", query, args)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// ClearExpiredRefreshTokens nulls refresh tokens whose expiry is before now.
func (r *userRepository) ClearExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	query, args, err := buildClearExpiredRefreshTokensQuery(r.db.builder(), now.UTC())
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execAffected(ctx, "*userRepository.ClearExpiredRefreshTokens", query, args)
}

func (r *userRepository) execAffected(ctx context.Context, funcName, query string, args []any) (int64, error) {
	var result sql.Result
	err := r.db.withRetry(ctx, func() error {
		var execErr error
		result, execErr = r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("error executing statement")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}

func scanUser(row *sql.Row, user *models.User) error {
	var (
		role         string
		refreshToken sql.NullString
		expiresAt    sql.NullTime
	)

	if err := row.Scan(
		&user.ID,
		&user.LoginID,
		&user.PasswordHash,
		&user.Nickname,
		&role,
		&refreshToken,
		&expiresAt,
		&user.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	user.Role = models.Role(role)
	user.RefreshToken = nil
	user.RefreshTokenExpiresAt = nil
	if refreshToken.Valid {
		user.RefreshToken = &refreshToken.String
	}
	if expiresAt.Valid {
		t := expiresAt.Time
		user.RefreshTokenExpiresAt = &t
	}

	return nil
}

// uniqueViolationError maps a violated constraint onto the domain error.
// Unknown constraints default to [ErrDuplicateLoginID], the only other
// unique column of the table.
func uniqueViolationError(constraint string) error {
	if strings.Contains(constraint, "nickname") {
		return ErrDuplicateNickname
	}
	return ErrDuplicateLoginID
}
