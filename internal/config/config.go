package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

const (
	StorageMySQL  = "mysql"
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

type Config struct {
	AppEnv   string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`
	LogDir   string `mapstructure:"log_dir"`
	Port     string `mapstructure:"app_port"`

	Storage string `mapstructure:"storage"`

	// MySQL
	DBUser  string `mapstructure:"db_user"`
	DBPass  string `mapstructure:"db_pass"`
	DBHost  string `mapstructure:"db_host"`
	DBPort  string `mapstructure:"db_port"`
	DBName  string `mapstructure:"db_name"`
	FullDSN string `mapstructure:"full_dsn"`

	// SQLite
	SQLiteDBPath string `mapstructure:"sqlite_db_path"`

	CORSAllowedOrigin string `mapstructure:"cors_allowed_origin"`
}

// SetDefaults registers every key so viper resolves it from the environment.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "debug")
	v.SetDefault("log_dir", "./logging/logs")
	v.SetDefault("app_port", "8080")
	v.SetDefault("storage", StorageSQLite)
	v.SetDefault("db_user", "")
	v.SetDefault("db_pass", "")
	v.SetDefault("db_host", "")
	v.SetDefault("db_port", "3306")
	v.SetDefault("db_name", "money_manager")
	v.SetDefault("full_dsn", "")
	v.SetDefault("sqlite_db_path", "./data/money_manager.db")
	v.SetDefault("cors_allowed_origin", "http://localhost:3000")
}

// Load reads envFile (if present) into the process environment and resolves the config through v.
func Load(v *viper.Viper, envFile string) (*Config, error) {
	if envFile != "" {
		if err := gotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env variables: %w", err)
		}
	}

	SetDefaults(v)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Storage = strings.ToLower(cfg.Storage)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.Storage {
	case StorageMySQL:
		if c.FullDSN == "" && (c.DBUser == "" || c.DBPass == "" || c.DBHost == "" || c.DBPort == "") {
			problems = append(problems, "missing required DB environment variables (DB_USER, DB_PASS, DB_HOST, DB_PORT or FULL_DSN)")
		}
	case StorageSQLite:
		if c.SQLiteDBPath == "" {
			problems = append(problems, "SQLITE_DB_PATH is required for sqlite storage")
		}
	case StorageMemory:
	default:
		problems = append(problems, fmt.Sprintf("invalid storage '%s': must be one of mysql, sqlite, memory", c.Storage))
	}

	if c.CORSAllowedOrigin == "" {
		problems = append(problems, "CORS_ALLOWED_ORIGIN cannot be empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
