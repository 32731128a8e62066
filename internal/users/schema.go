package users

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

const (
	postgresUsersTable = `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		firstname VARCHAR(255),
		lastname VARCHAR(255)
	)`

	sqliteUsersTable = `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		firstname TEXT,
		lastname TEXT
	)`
)

// CreateTables creates the users table if it does not exist yet
func CreateTables(ctx context.Context, db *bun.DB) error {
	var ddl string
	switch name := db.Dialect().Name(); name {
	case dialect.PG:
		ddl = postgresUsersTable
	case dialect.SQLite:
		ddl = sqliteUsersTable
	default:
		return fmt.Errorf("unsupported dialect for users table: %s", name)
	}

	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}
	return nil
}
