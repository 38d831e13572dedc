package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/setlistsync/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes the annotated config template to the --config path.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", path)
	r.writePlain("✓ Config written to %s\n", path)
	r.writePlain("  Add your setlist.fm API key and YouTube Music credentials before running sync.\n")
	return nil
}

// SetupDatabase initializes the database and runs migrations.
// With --rollback it reverts the latest applied migration instead.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Database
	r.logger.Info("initializing database", "path", cfg.Path)

	db, err := shared.NewDatabase(cfg.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, cfg.MaxOpenConns, cfg.MaxIdleConns)

	if cmd.Bool("rollback") {
		r.logger.Info("rolling back latest migration")
		if err := shared.RollbackMigration(db); err != nil {
			return fmt.Errorf("failed to roll back migration: %w", err)
		}
		r.writePlain("✓ Rolled back the latest migration in %s\n", cfg.Path)
		return nil
	}

	r.logger.Info("running database migrations")
	applied, err := shared.RunMigrations(db)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	r.logger.Infof("setup complete for database: %v", cfg.Path)
	r.writePlain("✓ Database ready at %s (%d %s applied)\n", cfg.Path, applied, shared.Pluralize(applied, "migration"))
	return nil
}
