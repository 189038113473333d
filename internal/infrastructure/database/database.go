// Package database owns the PostgreSQL connection for the chat service.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/fusbox/chatarbor-alternative/internal/config"
)

// Connect opens the GORM handle described by the service config. When the
// DSN points at a database that does not exist yet, it is created first so a
// fresh checkout boots against a bare PostgreSQL instance.
func Connect(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.DatabaseURL
	if dsn == "" {
		return nil, fmt.Errorf("CHAT_DATABASE_URL is empty")
	}

	if err := createDatabaseIfMissing(ctx, dsn); err != nil {
		return nil, fmt.Errorf("bootstrap database: %w", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt: true,
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
		Logger: gormlogger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pool, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("access connection pool: %w", err)
	}
	if cfg.DBMaxIdleConns > 0 {
		pool.SetMaxIdleConns(cfg.DBMaxIdleConns)
	}
	if cfg.DBMaxOpenConns > 0 {
		pool.SetMaxOpenConns(cfg.DBMaxOpenConns)
	}
	if cfg.DBConnLifetime > 0 {
		pool.SetConnMaxLifetime(cfg.DBConnLifetime)
	}

	return db, nil
}

// gormLogLevel maps the service log level onto GORM's logger: debug surfaces
// every statement, anything else only slow queries and errors.
func gormLogLevel(level string) gormlogger.LogLevel {
	if strings.EqualFold(strings.TrimSpace(level), "debug") {
		return gormlogger.Info
	}
	return gormlogger.Warn
}

// createDatabaseIfMissing connects to the maintenance database and issues
// CREATE DATABASE when the DSN's target does not exist. Non-URL DSNs and
// DSNs already pointing at the maintenance database are left alone.
func createDatabaseIfMissing(ctx context.Context, dsn string) error {
	u, err := url.Parse(dsn)
	if err != nil || (u.Scheme != "postgres" && u.Scheme != "postgresql") {
		return nil
	}
	name := strings.TrimPrefix(u.Path, "/")
	if name == "" || name == "postgres" {
		return nil
	}

	admin := *u
	admin.Path = "/postgres"
	conn, err := sql.Open("postgres", admin.String())
	if err != nil {
		return err
	}
	defer conn.Close()

	var exists bool
	query := "SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)"
	if err := conn.QueryRowContext(ctx, query, name).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return nil
	}

	_, err = conn.ExecContext(ctx, "CREATE DATABASE "+quoteIdent(name))
	return err
}

// quoteIdent double-quotes a PostgreSQL identifier, escaping embedded quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
