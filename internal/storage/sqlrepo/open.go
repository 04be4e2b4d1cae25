package sqlrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// DialectFor maps a database/sql driver name to its placeholder format.
func DialectFor(driver string) (sq.PlaceholderFormat, error) {
	switch driver {
	case "mysql":
		return sq.Question, nil
	case "pgx", "postgres":
		return sq.Dollar, nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (want mysql or pgx)", driver)
	}
}

// Open connects with the named driver ("mysql" or "pgx"), applies pool
// settings and pings once.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, sq.PlaceholderFormat, error) {
	d, err := DialectFor(driver)
	if err != nil {
		return nil, nil, err
	}
	if driver == "postgres" {
		driver = "pgx"
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("sql.Open: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("db ping: %w", err)
	}
	return db, d, nil
}
