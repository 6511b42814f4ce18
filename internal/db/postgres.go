package db

import (
	"context"
	"embed"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// NewPostgres создаёт подключение к PostgreSQL с заданным DSN.
func NewPostgres(ctx context.Context, dsn string) (*sqlx.DB, error) {
	conn, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: не удалось подключиться: %w", err)
	}

	conn.SetMaxOpenConns(50)
	conn.SetMaxIdleConns(10)
	conn.SetConnMaxLifetime(5 * time.Minute)

	return conn, nil
}

// Migrator применяет встроенные в бинарник SQL миграции через goose.
type Migrator struct {
	conn *sqlx.DB
}

func NewMigrator(conn *sqlx.DB, log *logrus.Logger) (*Migrator, error) {
	goose.SetBaseFS(migrationsFS)
	if log != nil {
		goose.SetLogger(log)
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("postgres: диалект goose: %w", err)
	}
	return &Migrator{conn: conn}, nil
}

func (m *Migrator) Up(ctx context.Context) error {
	if err := goose.UpContext(ctx, m.conn.DB, migrationsDir); err != nil {
		return fmt.Errorf("postgres: не удалось применить миграции: %w", err)
	}
	return nil
}

// Down откатывает последнюю применённую миграцию.
func (m *Migrator) Down(ctx context.Context) error {
	if err := goose.DownContext(ctx, m.conn.DB, migrationsDir); err != nil {
		return fmt.Errorf("postgres: не удалось откатить миграцию: %w", err)
	}
	return nil
}

func (m *Migrator) Status(ctx context.Context) error {
	if err := goose.StatusContext(ctx, m.conn.DB, migrationsDir); err != nil {
		return fmt.Errorf("postgres: не удалось получить статус миграций: %w", err)
	}
	return nil
}

func (m *Migrator) Version(ctx context.Context) (int64, error) {
	v, err := goose.GetDBVersionContext(ctx, m.conn.DB)
	if err != nil {
		return 0, fmt.Errorf("postgres: не удалось получить версию схемы: %w", err)
	}
	return v, nil
}
