package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/moneymanager/money_manager/internal/config"
	"github.com/moneymanager/money_manager/logging"
)

const (
	mysqlDuplicateEntry = 1062
	pingAttempts        = 15
	pingInterval        = 3 * time.Second
)

var mysqlDialect = dialect{
	name:         config.StorageMySQL,
	insertIgnore: "INSERT IGNORE",
	isDuplicate: func(err error) bool {
		var mysqlErr *mysql.MySQLError
		return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
	},
}

// MySQLConfig builds the driver config from FULL_DSN or the individual DB_* settings.
func MySQLConfig(cfg *config.Config) (*mysql.Config, error) {
	var dsnConfig *mysql.Config
	if cfg.FullDSN != "" {
		parsed, err := mysql.ParseDSN(cfg.FullDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to parse FULL_DSN: %w", err)
		}
		dsnConfig = parsed
	} else {
		if cfg.DBUser == "" || cfg.DBPass == "" || cfg.DBHost == "" || cfg.DBPort == "" {
			return nil, fmt.Errorf("missing required DB environment variables")
		}
		dsnConfig = mysql.NewConfig()
		dsnConfig.User = cfg.DBUser
		dsnConfig.Passwd = cfg.DBPass
		dsnConfig.Net = "tcp"
		dsnConfig.Addr = net.JoinHostPort(cfg.DBHost, cfg.DBPort)
		dsnConfig.DBName = cfg.DBName
	}

	if dsnConfig.DBName == "" {
		dsnConfig.DBName = "money_manager"
	}
	dsnConfig.ParseTime = true
	dsnConfig.Loc = time.UTC
	// RowsAffected must count matched rows, otherwise an update that changes nothing reads as NOT FOUND.
	dsnConfig.ClientFoundRows = true
	return dsnConfig, nil
}

// OpenMySQL waits for the server, creates the database when missing and returns a handle on it.
func OpenMySQL(ctx context.Context, dsnConfig *mysql.Config) (*sql.DB, error) {
	adminConfig := dsnConfig.Clone()
	adminConfig.DBName = ""

	logging.Logger.Info("Connecting to MySQL server for initialization...")
	adminDb, err := sql.Open("mysql", adminConfig.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open admin mysql handle: %w", err)
	}
	defer adminDb.Close()

	if err := waitForPing(ctx, adminDb); err != nil {
		return nil, err
	}

	createDbSql := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s` CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci;", dsnConfig.DBName)
	if _, err := adminDb.ExecContext(ctx, createDbSql); err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}

	logging.Logger.Info("Connecting to database...")
	db, err := sql.Open("mysql", dsnConfig.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database handle: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logging.Logger.Info("Connected to database successfully")
	return db, nil
}

func waitForPing(ctx context.Context, db *sql.DB) error {
	for i := 0; i < pingAttempts; i++ {
		if err := db.PingContext(ctx); err == nil {
			return nil
		}
		logging.Logger.Warnf("Database not ready, retrying... (%d/%d)", i+1, pingAttempts)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pingInterval):
		}
	}
	return fmt.Errorf("database unreachable after multiple attempts")
}

func NewMySQLStorage(db *sql.DB) *SQLStorage {
	return &SQLStorage{db: db, dialect: mysqlDialect}
}
