package main

import (
	"fmt"
	"os"

	"github.com/moneymanager/money_manager/internal/config"
	"github.com/moneymanager/money_manager/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envFile = ".env"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "money_manager",
		Short: "Personal finance tracking backend",
		Long: `Money Manager serves a REST API for transactions, budgets, bills,
settings and a dashboard summary computed from the recorded transactions.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("storage", "", "storage backend: mysql, sqlite or memory")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	_ = v.BindPFlag("storage", rootCmd.PersistentFlags().Lookup("storage"))
	_ = v.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(newServeCmd(v), newMigrateCmd(v))
	return rootCmd
}

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run migrations and start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().String("port", "", "port to listen on (APP_PORT)")
	_ = v.BindPFlag("app_port", cmd.Flags().Lookup("port"))
	return cmd
}

func newMigrateCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			return migrate(cmd.Context(), cfg)
		},
	}
}

func loadConfig(v *viper.Viper) (*config.Config, error) {
	cfg, err := config.Load(v, envFile)
	if err != nil {
		return nil, err
	}
	if err := logging.Init(cfg.LogLevel, cfg.AppEnv, cfg.LogDir); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, nil
}
