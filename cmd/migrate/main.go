// Command migrate applies or rolls back the embedded schema migrations.
package main

import (
	"context"
	"fmt"
	"os"

	"nird-backend/internal/config"
	"nird-backend/internal/database"
	"nird-backend/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Manage the NIRD database schema",
		SilenceUsage: true,
	}

	cmd.AddCommand(newUpCommand())
	cmd.AddCommand(newDownCommand())
	cmd.AddCommand(newVersionCommand())
	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd.Context(), func(m database.Migrator) error {
				if err := m.Up(); err != nil {
					return fmt.Errorf("failed to apply migrations: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied successfully!")
				return nil
			})
		},
	}
}

func newDownCommand() *cobra.Command {
	var all bool
	var steps int

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations (one step by default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && steps <= 0 {
				return fmt.Errorf("--steps must be positive, got %d", steps)
			}
			return withMigrator(cmd.Context(), func(m database.Migrator) error {
				n := steps
				if all {
					n = 0
				}
				if err := m.Down(n); err != nil {
					return fmt.Errorf("failed to roll back migrations: %w", err)
				}
				if all {
					fmt.Fprintln(cmd.OutOrStdout(), "Successfully rolled back all migrations")
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Successfully rolled back %d migration(s)\n", n)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "roll back every migration")
	cmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd.Context(), func(m database.Migrator) error {
				version, dirty, err := m.Version()
				if err != nil {
					return fmt.Errorf("failed to read schema version: %w", err)
				}
				if dirty {
					fmt.Fprintf(cmd.OutOrStdout(), "%d (dirty)\n", version)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%d\n", version)
				}
				return nil
			})
		},
	}
}

// withMigrator loads the configuration, connects and hands fn a migrator for the configured driver.
func withMigrator(ctx context.Context, fn func(m database.Migrator) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()
	log := logger.Get()
	if cfg.File != "" {
		log.Info("Using config file", zap.String("path", cfg.File))
	}

	db, err := database.NewSQLXDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	m, err := database.NewMigrator(db)
	if err != nil {
		return err
	}
	defer m.Close()

	log.Info("Running migrations", zap.String("driver", cfg.DB.Driver))
	return fn(m)
}
