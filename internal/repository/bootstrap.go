package repository

import (
	"context"
	"database/sql"
	"fmt"
)

var createStatements = []string{
	`CREATE TABLE IF NOT EXISTS guest_messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		gender TEXT NOT NULL,
		message TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL,
		gender TEXT NOT NULL,
		password_hash TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS direct_messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sender_id INTEGER NOT NULL REFERENCES users(id),
		receiver_id INTEGER NOT NULL REFERENCES users(id),
		content TEXT NOT NULL,
		created_at INTEGER NOT NULL
	)`,
}

// EnsureSchema creates the three tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range createStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// columnDefault pairs a column name with the literal DDL used to add it to a
// pre-existing table that is missing it.
type columnDefault struct {
	name string
	ddl  string
}

var extendColumns = map[string][]columnDefault{
	"guest_messages": {
		{"gender", `ALTER TABLE guest_messages ADD COLUMN gender TEXT NOT NULL DEFAULT 'muž'`},
		{"message", `ALTER TABLE guest_messages ADD COLUMN message TEXT NOT NULL DEFAULT ''`},
	},
	"users": {
		{"email", `ALTER TABLE users ADD COLUMN email TEXT NOT NULL DEFAULT ''`},
		{"gender", `ALTER TABLE users ADD COLUMN gender TEXT NOT NULL DEFAULT 'muž'`},
	},
}

// ExtendSchema backfills columns that older database files lack, using the
// historical literal defaults. It runs in a single transaction; on any
// failure the transaction is rolled back and the error returned so the
// caller can log and continue. A stale column set is degraded, not fatal.
func ExtendSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema extension: %w", err)
	}

	for _, table := range []string{"guest_messages", "users"} {
		existing, err := tableColumns(ctx, tx, table)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("inspect %s: %w", table, err)
		}
		for _, col := range extendColumns[table] {
			if existing[col.name] {
				continue
			}
			if _, err := tx.ExecContext(ctx, col.ddl); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("add %s.%s: %w", table, col.name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema extension: %w", err)
	}
	return nil
}

func tableColumns(ctx context.Context, tx *sql.Tx, table string) (map[string]bool, error) {
	rows, err := tx.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &defaultVal, &pk); err != nil {
			return nil, err
		}
		cols[name] = true
	}
	return cols, rows.Err()
}
