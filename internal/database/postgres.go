package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	dbdriver "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	src "github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	pingTimeout     = 5 * time.Second
	maxConnIdleTime = 5 * time.Minute
)

// migrator 是 *migrate.Migrate 中用到的方法
type migrator interface {
	Up() error
	Down() error
	Version() (uint, bool, error)
}

var (
	parsePoolConfig   = pgxpool.ParseConfig
	newPoolWithConfig = pgxpool.NewWithConfig
	pingPool          = func(ctx context.Context, p *pgxpool.Pool) error { return p.Ping(ctx) }
	closePool         = func(p *pgxpool.Pool) { p.Close() }

	sqlOpen           = sql.Open
	postgresDriver    = postgres.WithInstance
	migrationSource   = iofs.New
	newMigrateWithDrv = func(sourceName string, sourceDriver src.Driver, databaseName string, databaseDriver dbdriver.Driver) (migrator, error) {
		m, err := migrate.NewWithInstance(sourceName, sourceDriver, databaseName, databaseDriver)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
)

// NewPgxPool 建立連線池並在 pingTimeout 內確認資料庫可用
func NewPgxPool(ctx context.Context, url string) (DB, error) {
	cfg, err := parsePoolConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConnIdleTime = maxConnIdleTime

	pool, err := newPoolWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pingPool(pctx, pool); err != nil {
		closePool(pool)
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

func withMigrator(dbURL string, fn func(m migrator) error) error {
	// migrate 需要 *sql.DB，透過 pgx stdlib driver 開啟
	sqlDB, err := sqlOpen("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer func() { _ = sqlDB.Close() }()

	driver, err := postgresDriver(sqlDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("postgres driver: %w", err)
	}
	source, err := migrationSource(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}
	m, err := newMigrateWithDrv("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	return fn(m)
}

// RunMigrations 套用所有尚未執行的 migration；已是最新版本不算錯誤
func RunMigrations(dbURL string) error {
	return withMigrator(dbURL, func(m migrator) error {
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
		return nil
	})
}

// RollbackAll 退回所有 migration (down to version 0)
func RollbackAll(dbURL string) error {
	return withMigrator(dbURL, func(m migrator) error {
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
		return nil
	})
}

// Version 回傳目前 schema 版本；尚未套用任何 migration 時為 0
func Version(dbURL string) (version uint, dirty bool, err error) {
	err = withMigrator(dbURL, func(m migrator) error {
		v, d, verr := m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			return nil
		}
		if verr != nil {
			return verr
		}
		version, dirty = v, d
		return nil
	})
	return version, dirty, err
}
