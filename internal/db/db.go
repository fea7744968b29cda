// Package db opens the SQL database backing durable shop state.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Drivers lists the accepted driver names
var Drivers = []string{"postgres", "pgx", "sqlite"}

// Open connects with the named driver and verifies the connection.
// sqlite is limited to one connection since modernc serializes writers anyway.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	switch driver {
	case "postgres", "pgx", "sqlite":
	default:
		return nil, fmt.Errorf("db.Open: unsupported driver %q", driver)
	}
	if dsn == "" {
		return nil, fmt.Errorf("db.Open: empty dsn for driver %s", driver)
	}

	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db.Open: %w", err)
	}

	if driver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("db.Open ping: %w", err)
	}
	return sqlDB, nil
}
