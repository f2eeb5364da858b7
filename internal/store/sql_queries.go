package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-login-server/models"
)

const usersTable = "users"

// userColumns is the column order every user SELECT scans in.
var userColumns = []string{
	"id",
	"login_id",
	"password_hash",
	"nickname",
	"role",
	"refresh_token",
	"refresh_token_expires_at",
	"created_at",
}

// buildInsertUserQuery inserts user and returns its generated id.
func buildInsertUserQuery(sb sq.StatementBuilderType, user models.User) (string, []any, error) {
	return sb.Insert(usersTable).
		Columns("login_id", "password_hash", "nickname", "role", "created_at").
		Values(user.LoginID, user.PasswordHash, user.Nickname, string(user.Role), user.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
}

func buildSelectUserByLoginIDQuery(sb sq.StatementBuilderType, loginID string) (string, []any, error) {
	return sb.Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"login_id": loginID}).
		ToSql()
}

// buildExistsQuery selects 1 when a row with column = value exists.
func buildExistsQuery(sb sq.StatementBuilderType, column, value string) (string, []any, error) {
	return sb.Select("1").
		From(usersTable).
		Where(sq.Eq{column: value}).
		Limit(1).
		ToSql()
}

func buildSaveRefreshTokenQuery(sb sq.StatementBuilderType, loginID, tokenHash string, expiresAt time.Time) (string, []any, error) {
	return sb.Update(usersTable).
		Set("refresh_token", tokenHash).
		Set("refresh_token_expires_at", expiresAt).
		Where(sq.Eq{"login_id": loginID}).
		ToSql()
}

func buildClearRefreshTokenQuery(sb sq.StatementBuilderType, loginID string) (string, []any, error) {
	return sb.Update(usersTable).
		Set("refresh_token", nil).
		Set("refresh_token_expires_at", nil).
		Where(sq.Eq{"login_id": loginID}).
		ToSql()
}

func buildClearExpiredRefreshTokensQuery(sb sq.StatementBuilderType, now time.Time) (string, []any, error) {
	return sb.Update(usersTable).
		Set("refresh_token", nil).
		Set("refresh_token_expires_at", nil).
		Where(sq.NotEq{"refresh_token": nil}).
		Where(sq.Lt{"refresh_token_expires_at": now}).
		ToSql()
}
