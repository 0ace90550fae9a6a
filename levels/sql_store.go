// File: levels/sql_store.go
package levels

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

// Supported database/sql driver names.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

const createTable = `CREATE TABLE IF NOT EXISTS levels (
	name VARCHAR(64) PRIMARY KEY,
	body TEXT NOT NULL
)`

// SQLStore keeps levels in a "levels" table on Postgres or MySQL.
type SQLStore struct {
	db     *sql.DB
	driver string
}

// OpenSQLStore connects, pings and ensures the table exists.
func OpenSQLStore(ctx context.Context, driver, dsn string) (*SQLStore, error) {
	if driver != DriverPostgres && driver != DriverMySQL {
		return nil, fmt.Errorf("unsupported level store driver %q", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", driver, err)
	}
	s := NewSQLStore(db, driver)
	if _, err := db.ExecContext(ctx, createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create levels table: %w", err)
	}
	return s, nil
}

// NewSQLStore wraps an open handle. The table must already exist.
func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

// MySQLDSN builds a DSN for the mysql driver.
func MySQLDSN(user, password, addr, dbName string) string {
	cfg := mysql.NewConfig()
	cfg.User = user
	cfg.Passwd = password
	cfg.Net = "tcp"
	cfg.Addr = addr
	cfg.DBName = dbName
	cfg.AllowNativePasswords = true
	return cfg.FormatDSN()
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM levels ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan level name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *SQLStore) Load(ctx context.Context, name string) (string, error) {
	var body string
	err := s.db.QueryRowContext(ctx, rebind(s.driver, "SELECT body FROM levels WHERE name = ?"), name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("failed to load level %s: %w", name, err)
	}
	return body, nil
}

func (s *SQLStore) Save(ctx context.Context, name, text string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, upsertQuery(s.driver), name, text); err != nil {
		return fmt.Errorf("failed to save level %s: %w", name, err)
	}
	return nil
}

func upsertQuery(driver string) string {
	if driver == DriverMySQL {
		return "INSERT INTO levels (name, body) VALUES (?, ?) ON DUPLICATE KEY UPDATE body = VALUES(body)"
	}
	return rebind(driver, "INSERT INTO levels (name, body) VALUES (?, ?) ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body")
}

// rebind rewrites ? placeholders to $1, $2... for Postgres.
func rebind(driver, query string) string {
	if driver != DriverPostgres {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
