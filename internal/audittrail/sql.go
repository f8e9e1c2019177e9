package audittrail

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tarediiran-industries.com/rail-dss/internal/dashboard"
	database "tarediiran-industries.com/rail-dss/internal/db"
)

type sqlStore interface {
	database.DBTX
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
	PingContext(ctx context.Context) error
}

type dialect struct {
	// seedLock, when set, serializes prepare across processes sharing the
	// database. It is released when the transaction ends.
	seedLock   string
	schema     string
	insert     string
	encodeTime func(time.Time) any
}

const (
	countQuery = `SELECT COUNT(*) FROM audit_trail`
	listQuery  = `SELECT recorded_at, user_name, event_type, details FROM audit_trail ORDER BY recorded_at, id`
)

var sqliteDialect = dialect{
	schema: `
		CREATE TABLE IF NOT EXISTS audit_trail (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			recorded_at TEXT NOT NULL,
			user_name   TEXT NOT NULL,
			event_type  TEXT NOT NULL,
			details     TEXT NOT NULL
		)`,
	insert: `INSERT INTO audit_trail (recorded_at, user_name, event_type, details) VALUES (?, ?, ?, ?)`,
	encodeTime: func(ts time.Time) any {
		return ts.UTC().Format(dashboard.AuditTimestampLayout)
	},
}

var postgresDialect = dialect{
	seedLock: `SELECT pg_advisory_xact_lock(hashtext('rail-dss.audit_trail.seed'))`,
	schema: `
		CREATE TABLE IF NOT EXISTS audit_trail (
			id          BIGSERIAL PRIMARY KEY,
			recorded_at TIMESTAMPTZ NOT NULL,
			user_name   TEXT NOT NULL,
			event_type  TEXT NOT NULL,
			details     TEXT NOT NULL
		)`,
	insert: `INSERT INTO audit_trail (recorded_at, user_name, event_type, details) VALUES ($1, $2, $3, $4)`,
	encodeTime: func(ts time.Time) any {
		return ts.UTC()
	},
}

type sqlRepository struct {
	store sqlStore
}

// prepare creates the table and seeds the sample trail when it is empty.
// Concurrent callers on Postgres queue on an advisory lock, so only the first
// sees an empty table.
func prepare(ctx context.Context, store sqlStore, d dialect) error {
	tx, err := store.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	if d.seedLock != "" {
		if _, err := tx.ExecContext(ctx, d.seedLock); err != nil {
			return fmt.Errorf("lock audit_trail seed: %w", err)
		}
	}
	if _, err := tx.ExecContext(ctx, d.schema); err != nil {
		return fmt.Errorf("create audit_trail: %w", err)
	}

	var count int
	if err := tx.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return fmt.Errorf("count audit_trail: %w", err)
	}
	if count > 0 {
		return tx.Commit()
	}

	for _, entry := range dashboard.SampleAuditTrail() {
		if _, err := tx.ExecContext(ctx, d.insert, d.encodeTime(entry.Timestamp), entry.User, entry.EventType, entry.Details); err != nil {
			return fmt.Errorf("seed audit_trail: %w", err)
		}
	}
	return tx.Commit()
}

func (repo *sqlRepository) Entries(ctx context.Context) ([]dashboard.AuditEntry, error) {
	rows, err := repo.store.QueryContext(ctx, listQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit trail: %w", err)
	}
	defer rows.Close()

	var entries []dashboard.AuditEntry
	for rows.Next() {
		var recordedAt any
		var entry dashboard.AuditEntry
		if err := rows.Scan(&recordedAt, &entry.User, &entry.EventType, &entry.Details); err != nil {
			return nil, fmt.Errorf("failed to scan audit row: %w", err)
		}
		if entry.Timestamp, err = decodeTime(recordedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (repo *sqlRepository) Health(ctx context.Context) error {
	return repo.store.PingContext(ctx)
}

func decodeTime(src any) (time.Time, error) {
	switch value := src.(type) {
	case time.Time:
		return value.UTC(), nil
	case string:
		return parseStoredTime(value)
	case []byte:
		return parseStoredTime(string(value))
	}
	return time.Time{}, fmt.Errorf("unsupported recorded_at type %T", src)
}

func parseStoredTime(raw string) (time.Time, error) {
	ts, err := time.ParseInLocation(dashboard.AuditTimestampLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse recorded_at %q: %w", raw, err)
	}
	return ts, nil
}

// SQLiteRepository reads the audit trail from a SQLite file.
type SQLiteRepository struct {
	sqlRepository
}

func NewSQLiteRepository(ctx context.Context, db *sql.DB) (*SQLiteRepository, error) {
	if err := prepare(ctx, db, sqliteDialect); err != nil {
		return nil, err
	}
	return &SQLiteRepository{sqlRepository{store: db}}, nil
}

// PostgresRepository reads the audit trail from Postgres.
type PostgresRepository struct {
	sqlRepository
}

func NewPostgresRepository(ctx context.Context, db *database.Database) (*PostgresRepository, error) {
	if err := prepare(ctx, db, postgresDialect); err != nil {
		return nil, err
	}
	return &PostgresRepository{sqlRepository{store: db}}, nil
}
