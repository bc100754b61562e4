package cmd

import (
	"context"
	"fmt"

	"github.com/frahmantamala/sewa-portal/internal"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "to run db migration files under db/migrations directory (postgres storage only)",
	}
	migrateRollback bool
	migrateDir      string
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "to rollback the latest version of sql migration")
	migrateCmd.PersistentFlags().StringVarP(&migrateDir, "dir", "d", "db/migrations", "sql migrations directory")
}

func runMigration(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if cfg.Storage.Driver != internal.StorageDriverPostgres {
		return fmt.Errorf("migrate: storage driver is %q, migrations only apply to %q", cfg.Storage.Driver, internal.StorageDriverPostgres)
	}

	db, err := goose.OpenDBWithDriver("pgx", cfg.Database.Source)
	if err != nil {
		return fmt.Errorf("goose: failed to open DB: %w", err)
	}
	defer db.Close()
	goose.SetTableName("schema_migrations")

	command := "up"
	if migrateRollback {
		command = "down"
	}

	if err := goose.RunContext(ctx, command, db, migrateDir); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}

	return nil
}
