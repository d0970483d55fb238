package database

import (
	"database/sql"
	"embed"
	"fmt"
	"net/url"
	"strings"

	"github.com/pressly/goose/v3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Open opens the store and runs migrations. Remote URLs (libsql://, wss://,
// https://) go through the libsql driver with the given auth token; anything
// else is treated as a local SQLite path.
func Open(storeURL, authToken string) (*sql.DB, error) {
	driver, dsn := resolveDSN(storeURL, authToken)

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}

func resolveDSN(storeURL, authToken string) (driver, dsn string) {
	switch {
	case strings.HasPrefix(storeURL, "libsql://"),
		strings.HasPrefix(storeURL, "wss://"),
		strings.HasPrefix(storeURL, "https://"):
		dsn = storeURL
		if authToken != "" {
			sep := "?"
			if strings.Contains(storeURL, "?") {
				sep = "&"
			}
			dsn += sep + "authToken=" + url.QueryEscape(authToken)
		}
		return "libsql", dsn
	default:
		return "sqlite", storeURL + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"
	}
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}
