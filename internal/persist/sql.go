package persist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// Dialect selects placeholder and array syntax for the SQL backend
type Dialect int

const (
	DialectPostgres Dialect = iota
	DialectSQLite
)

// DialectFor maps a database/sql driver name to its dialect
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "postgres", "pgx":
		return DialectPostgres, nil
	case "sqlite":
		return DialectSQLite, nil
	}
	return 0, fmt.Errorf("unsupported driver %q", driver)
}

// SQL stores blobs in a single key/value table
type SQL struct {
	db      *sql.DB
	dialect Dialect
	table   string
}

// NewSQL wraps an open database. The table is created by Migrate.
func NewSQL(db *sql.DB, dialect Dialect, table string) *SQL {
	if table == "" {
		table = "shop_state"
	}
	return &SQL{db: db, dialect: dialect, table: table}
}

// Migrate creates the key/value table when missing
func (s *SQL) Migrate(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`, s.table)
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("Migrate: %w", err)
	}
	return nil
}

func (s *SQL) placeholder(n int) string {
	if s.dialect == DialectPostgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

func (s *SQL) Load(ctx context.Context, key string) ([]byte, bool, error) {
	query := fmt.Sprintf("SELECT value FROM %s WHERE key = %s", s.table, s.placeholder(1))

	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("Load %s: %w", key, err)
	}
	return []byte(value), true, nil
}

func (s *SQL) Save(ctx context.Context, key string, value []byte) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (key, value, updated_at)
		VALUES (%s, %s, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, s.table, s.placeholder(1), s.placeholder(2))

	if _, err := s.db.ExecContext(ctx, query, key, string(value)); err != nil {
		return fmt.Errorf("Save %s: %w", key, err)
	}
	return nil
}

// LoadAll fetches every requested key in one query
func (s *SQL) LoadAll(ctx context.Context, keys []string) (map[string][]byte, error) {
	out := make(map[string][]byte, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	var (
		query string
		args  []interface{}
	)
	if s.dialect == DialectPostgres {
		query = fmt.Sprintf("SELECT key, value FROM %s WHERE key = ANY($1)", s.table)
		args = append(args, pq.Array(keys))
	} else {
		marks := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
		query = fmt.Sprintf("SELECT key, value FROM %s WHERE key IN (%s)", s.table, marks)
		for _, k := range keys {
			args = append(args, k)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("LoadAll query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("LoadAll scan: %w", err)
		}
		out[k] = []byte(v)
	}
	return out, rows.Err()
}

// Ping reports whether the database answers; used by the readiness probe
func (s *SQL) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQL) Close() error {
	return s.db.Close()
}
