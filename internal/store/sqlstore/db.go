package sqlstore

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/nulzo/project-tracker-api/internal/config"
	"go.uber.org/zap"
)

//go:embed migrations
var migrations embed.FS

// Open connects to the configured store and, unless disabled, applies the
// bundled schema.
func Open(cfg config.StoreConfig, logger *zap.Logger) (*Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return openSQLite(cfg, logger)
	case config.DriverPostgres:
		return openPostgres(cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}

func openSQLite(cfg config.StoreConfig, logger *zap.Logger) (*Store, error) {
	// such as: "file:tracker.db?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000"
	db, err := sqlx.Connect("sqlite3", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to sqlite: %w", err)
	}

	// a single connection also keeps ":memory:" databases alive and shared
	db.SetMaxOpenConns(1)

	if cfg.Migrate {
		driver, err := sqlite3.WithInstance(db.DB, &sqlite3.Config{})
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		// the migrate instance is not closed: that would close db as well
		if _, err := runMigrations(driver, "sqlite3", "migrations/sqlite"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		logger.Info("Database migrations applied successfully", zap.String("driver", cfg.Driver))
	}

	return New(db, logger), nil
}

func openPostgres(cfg config.StoreConfig, logger *zap.Logger) (*Store, error) {
	connConfig, err := pgx.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid store url: %w", err)
	}

	// the service key doubles as the database password when the url omits one
	if connConfig.Password == "" {
		connConfig.Password = cfg.Key
	}

	db := sqlx.NewDb(stdlib.OpenDB(*connConfig), "pgx")
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if cfg.Migrate {
		// migrate pins a dedicated connection, so it gets its own pool
		migrationDB := stdlib.OpenDB(*connConfig)
		driver, err := pgxmigrate.WithInstance(migrationDB, &pgxmigrate.Config{})
		if err != nil {
			_ = migrationDB.Close()
			_ = db.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}

		m, err := runMigrations(driver, "pgx5", "migrations/postgres")
		if m != nil {
			_, _ = m.Close()
		} else {
			_ = migrationDB.Close()
		}
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		logger.Info("Database migrations applied successfully", zap.String("driver", cfg.Driver))
	}

	return New(db, logger), nil
}

func runMigrations(driver database.Driver, name, dir string) (*migrate.Migrate, error) {
	d, err := iofs.New(migrations, dir)
	if err != nil {
		return nil, err
	}

	m, err := migrate.NewWithInstance("iofs", d, name, driver)
	if err != nil {
		return nil, err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return m, err
	}

	return m, nil
}
