package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/moneymanager/money_manager/internal/config"
	"github.com/moneymanager/money_manager/logging"
)

//go:embed migrations/mysql/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// RunMigrations applies the embedded schema for storageKind. It opens its own
// connection from dsn because closing the migrator closes the handle it was given.
func RunMigrations(storageKind string, dsn string) error {
	var driverName string
	switch storageKind {
	case config.StorageMySQL:
		driverName = "mysql"
	case config.StorageSQLite:
		driverName = "sqlite"
	default:
		return fmt.Errorf("no migrations for storage '%s'", storageKind)
	}

	migrateDB, err := sql.Open(driverName, dsn)
	if err != nil {
		return fmt.Errorf("open migration database: %w", err)
	}
	defer migrateDB.Close()

	var driver database.Driver
	switch storageKind {
	case config.StorageMySQL:
		driver, err = migratemysql.WithInstance(migrateDB, &migratemysql.Config{})
	case config.StorageSQLite:
		driver, err = migratesqlite.WithInstance(migrateDB, &migratesqlite.Config{})
	}
	if err != nil {
		return fmt.Errorf("create %s migration driver: %w", storageKind, err)
	}

	source, err := iofs.New(migrationsFS, "migrations/"+storageKind)
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, storageKind, driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	logging.Logger.Info("Running migrations...")
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logging.Logger.Info("no new migration")
			return nil
		}
		return fmt.Errorf("run migrations: %w", err)
	}

	logging.Logger.Info("all migrations applied successfully")
	return nil
}

func MigrateMySQL(dsnConfig *mysql.Config) error {
	return RunMigrations(config.StorageMySQL, migrationConfig(dsnConfig).FormatDSN())
}

// migrationConfig enables multi statements on a copy, migration files hold several statements each.
func migrationConfig(dsnConfig *mysql.Config) *mysql.Config {
	cfg := dsnConfig.Clone()
	cfg.MultiStatements = true
	return cfg
}

func MigrateSQLite(dbPath string) error {
	if err := ensureDBDir(dbPath); err != nil {
		return err
	}
	return RunMigrations(config.StorageSQLite, sqliteDSN(dbPath))
}
