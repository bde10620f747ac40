package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

var tableStatements = []string{
	`CREATE TABLE IF NOT EXISTS sites (
    id                  TEXT PRIMARY KEY,
    name                TEXT    NOT NULL,
    domain              TEXT    NOT NULL,
    created_at          BIGINT  NOT NULL,
    is_active           BOOLEAN NOT NULL DEFAULT TRUE,
    session_timeout_min INTEGER NOT NULL DEFAULT 30
)`,
	`CREATE TABLE IF NOT EXISTS hits (
    id         TEXT PRIMARY KEY,
    site_id    TEXT   NOT NULL,
    type       TEXT   NOT NULL,
    ts         BIGINT NOT NULL,
    visitor_id TEXT   NOT NULL DEFAULT '',
    doc        JSONB  NOT NULL
)`,
}

var indexStatements = []string{
	`CREATE INDEX IF NOT EXISTS hits_site_ts_idx ON hits (site_id, ts)`,
	`CREATE INDEX IF NOT EXISTS hits_site_type_ts_idx ON hits (site_id, type, ts)`,
	`CREATE INDEX IF NOT EXISTS sites_created_at_idx ON sites (created_at DESC)`,
}

// Open connects to Postgres and checks the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the tables, which must succeed, and the indexes, whose
// failures are only logged.
func EnsureSchema(ctx context.Context, db *sql.DB, log *zap.Logger) error {
	for _, stmt := range tableStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}

	for _, stmt := range indexStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			fields := []zap.Field{zap.String("statement", stmt), zap.Error(err)}
			var pqErr *pq.Error
			if errors.As(err, &pqErr) {
				fields = append(fields, zap.String("pg_code", string(pqErr.Code)))
			}
			log.Warn("index creation failed, continuing without it", fields...)
		}
	}
	return nil
}
