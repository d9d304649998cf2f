package main

import (
	"fmt"
	"log/slog"
	"os"

	"lastmile/cmd"
	"lastmile/internal/adapters/out/postgres"

	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newRootCommand binds every config key as a persistent flag. cfg must already
// hold the defaults and environment overrides.
func newRootCommand(cfg *cmd.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "lastmile",
		Short:         "Last-mile delivery service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return cfg.Validate()
		},
		RunE: func(c *cobra.Command, _ []string) error {
			return c.Help()
		},
	}
	cmd.BindFlags(root.PersistentFlags(), cfg)

	root.AddCommand(newServeCommand(cfg))
	root.AddCommand(newMigrateCommand(cfg))
	return root
}

func newMigrateCommand(cfg *cmd.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(*cobra.Command, []string) error {
			logger, err := newLogger(*cfg)
			if err != nil {
				return err
			}
			db, err := openDB(*cfg)
			if err != nil {
				return err
			}
			defer closeDB(db, logger)

			if err := postgres.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			logger.Info("schema is up to date")
			return nil
		},
	}
}

func newLogger(cfg cmd.Config) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})), nil
}

func openDB(cfg cmd.Config) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database %s@%s: %w", cfg.DBName, cfg.DBHost, err)
	}
	return db, nil
}

func closeDB(db *gorm.DB, log *slog.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Error("failed to close database", "error", err)
	}
}
