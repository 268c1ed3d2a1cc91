package storage

import (
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/moneymanager/money_manager/internal/config"
	"github.com/stretchr/testify/require"
)

func TestMySQLConfig(t *testing.T) {
	tests := []struct {
		name       string
		cfg        config.Config
		wantAddr   string
		wantDBName string
		wantErr    bool
	}{
		{
			name:       "Success - Separate fields",
			cfg:        config.Config{DBUser: "root", DBPass: "secret", DBHost: "db", DBPort: "3306", DBName: "ledger"},
			wantAddr:   "db:3306",
			wantDBName: "ledger",
		},
		{
			name:       "Success - Full DSN without database",
			cfg:        config.Config{FullDSN: "root:secret@tcp(localhost:3307)/"},
			wantAddr:   "localhost:3307",
			wantDBName: "money_manager",
		},
		{
			name:    "Fail - Missing password",
			cfg:     config.Config{DBUser: "root", DBHost: "db", DBPort: "3306"},
			wantErr: true,
		},
		{
			name:    "Fail - Broken DSN",
			cfg:     config.Config{FullDSN: "root:secret@tcp(localhost"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsnConfig, err := MySQLConfig(&tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantAddr, dsnConfig.Addr)
			require.Equal(t, tt.wantDBName, dsnConfig.DBName)
			require.True(t, dsnConfig.ParseTime)
			require.True(t, dsnConfig.ClientFoundRows)
			require.False(t, dsnConfig.MultiStatements)
		})
	}
}

func TestMigrationConfigEnablesMultiStatements(t *testing.T) {
	dsnConfig, err := MySQLConfig(&config.Config{DBUser: "root", DBPass: "secret", DBHost: "db", DBPort: "3306", DBName: "ledger"})
	require.NoError(t, err)

	migrateConfig := migrationConfig(dsnConfig)
	require.True(t, migrateConfig.MultiStatements)
	require.Equal(t, "db:3306", migrateConfig.Addr)
	require.Equal(t, "ledger", migrateConfig.DBName)
	require.True(t, migrateConfig.ClientFoundRows)
	require.False(t, dsnConfig.MultiStatements)
}

func TestMySQLDuplicateDetection(t *testing.T) {
	require.True(t, mysqlDialect.isDuplicate(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}))
	require.False(t, mysqlDialect.isDuplicate(&mysql.MySQLError{Number: 1146, Message: "Table doesn't exist"}))
	require.False(t, mysqlDialect.isDuplicate(errors.New("boom")))
}
