package kv

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/rentdesk/internal/dbx"
	"github.com/dmitrijs2005/rentdesk/internal/logging"
	"github.com/dmitrijs2005/rentdesk/internal/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// DB is an open, migrated key-value database.
type DB struct {
	Conn    *sql.DB
	Dialect dbx.Dialect
}

// gooseUpContext is a seam for tests.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Open connects with the given database/sql driver ("sqlite" or "pgx") and
// applies the embedded migrations for its dialect.
//
// SQLite connections are limited to one so that ":memory:" databases are
// shared by every statement and writes are serialised.
func Open(ctx context.Context, driver, dsn string, logger logging.Logger) (*DB, error) {
	dialect, err := dbx.DialectForDriver(driver)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if dialect == dbx.DialectSQLite {
		conn.SetMaxOpenConns(1)
	}

	if err := RunMigrations(ctx, conn, dialect, logger); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &DB{Conn: conn, Dialect: dialect}, nil
}

// RunMigrations applies the embedded goose migrations for dialect.
func RunMigrations(ctx context.Context, conn *sql.DB, dialect dbx.Dialect, logger logging.Logger) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(logging.GooseLogger{L: logger})

	gooseDialect := "sqlite3"
	if dialect == dbx.DialectPostgres {
		gooseDialect = "pgx"
	}
	if err := goose.SetDialect(gooseDialect); err != nil {
		return err
	}
	return gooseUpContext(ctx, conn, string(dialect))
}

// Repo returns a Repository bound to db, which may be the connection or a
// transaction opened on it.
func (d *DB) Repo(db dbx.DBTX) Repository {
	return NewSQLRepository(db, d.Dialect)
}

func (d *DB) Close() error {
	return d.Conn.Close()
}
