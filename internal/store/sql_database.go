package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-login-server/internal/config"
	"github.com/MKhiriev/go-login-server/internal/logger"
	"github.com/MKhiriev/go-login-server/migrations"
)

// Dialect names the SQL engine behind a [DB]. The values double as goose
// dialect names.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite3"
)

// ErrUnsupportedDSN is returned by [NewConnect] when the DSN matches no
// supported engine.
var ErrUnsupportedDSN = errors.New("unsupported database DSN")

// retryDelays are the pauses between attempts of a retryable operation.
var retryDelays = []time.Duration{50 * time.Millisecond, 200 * time.Millisecond, 500 * time.Millisecond}

// DB wraps a *sql.DB with the dialect it talks to and the matching error
// classifier.
type DB struct {
	*sql.DB
	dialect            Dialect
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnect opens the database named by cfg.DSN. postgres:// and
// postgresql:// DSNs go to PostgreSQL; file:, sqlite:// and bare paths go
// to SQLite.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch DialectFromDSN(cfg.DSN) {
	case DialectPostgres:
		return NewConnectPostgres(ctx, cfg, log)
	case DialectSQLite:
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDSN, cfg.DSN)
	}
}

// DialectFromDSN guesses the engine from the DSN scheme. An empty DSN
// yields an empty dialect.
func DialectFromDSN(dsn string) Dialect {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	switch {
	case lower == "":
		return ""
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return DialectPostgres
	case strings.Contains(lower, "://") && !strings.HasPrefix(lower, "sqlite://"):
		return ""
	default:
		return DialectSQLite
	}
}

// Dialect returns the engine behind db.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Migrate applies the embedded schema migrations for the db dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, string(db.dialect))
}

// builder returns a squirrel statement builder using the placeholder
// format of the db dialect.
func (db *DB) builder() sq.StatementBuilderType {
	return statementBuilder(db.dialect)
}

func statementBuilder(dialect Dialect) sq.StatementBuilderType {
	if dialect == DialectPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// withRetry runs fn and repeats it while the error is classified as
// [Retryable], up to len(retryDelays) extra attempts.
func (db *DB) withRetry(ctx context.Context, fn func() error) error {
	return db.retry(ctx, fn, db.retryable)
}

// withInsertRetry is withRetry for statements that must not run twice. After
// a lost connection it is unknown whether the statement committed, so only
// errors proving it did not take effect are retried.
func (db *DB) withInsertRetry(ctx context.Context, fn func() error) error {
	return db.retry(ctx, fn, func(err error) bool {
		return db.retryable(err) && !connectionLost(err)
	})
}

func (db *DB) retryable(err error) bool {
	return db.errorClassificator.Classify(err) == Retryable
}

func (db *DB) retry(ctx context.Context, fn func() error, retryable func(error) bool) error {
	err := fn()
	for _, delay := range retryDelays {
		if err == nil || !retryable(err) {
			return err
		}

		logger.FromContext(ctx).Warn().Err(err).Dur("delay", delay).Msg("retrying database operation")

		select {
		case <-ctx.Done():
			return errors.Join(err, ctx.Err())
		case <-time.After(delay):
		}
		err = fn()
	}
	return err
}
