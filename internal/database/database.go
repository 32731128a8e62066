package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	_ "modernc.org/sqlite"
)

// Supported drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Options configures the connection pool
type Options struct {
	Driver         string // DriverPostgres or DriverSQLite
	DatabaseURL    string // postgres DSN or sqlite path
	MaxConnections int
}

// Open creates a bun database for the configured driver and verifies the connection
func Open(opts Options) (*bun.DB, error) {
	if opts.DatabaseURL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	if opts.MaxConnections <= 0 {
		opts.MaxConnections = 10
	}

	var db *bun.DB
	switch opts.Driver {
	case DriverPostgres, "":
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(opts.DatabaseURL)))
		sqldb.SetMaxOpenConns(opts.MaxConnections)
		sqldb.SetMaxIdleConns(opts.MaxConnections / 2)
		sqldb.SetConnMaxLifetime(time.Hour)
		db = bun.NewDB(sqldb, pgdialect.New())
	case DriverSQLite:
		sqldb, err := sql.Open("sqlite", opts.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		// a :memory: database lives and dies with its connection
		sqldb.SetMaxOpenConns(1)
		db = bun.NewDB(sqldb, sqlitedialect.New())
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", opts.Driver)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}
