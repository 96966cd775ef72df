package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"guardrails/internal/config"
	"guardrails/internal/database"
	"guardrails/internal/logger"
	"guardrails/internal/seed"
	"guardrails/internal/services"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := newRootCmd().Execute(); err != nil {
		logger.Get().Fatalf("Migration error: %v", err)
	}
}

func newRootCmd() *cobra.Command {
	var source string

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the guardrails database schema and seed rules",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&source, "source", "", "migration source URL (default $MIGRATIONS_PATH)")

	// withMigrator opens a migrate instance for the configured database.
	withMigrator := func(fn func(m *migrate.Migrate) error) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if source == "" {
			source = cfg.MigrationsPath
		}

		m, err := migrate.New(source, cfg.Database.URL())
		if err != nil {
			return fmt.Errorf("failed to create migrate instance: %w", err)
		}
		defer func() {
			srcErr, dbErr := m.Close()
			if srcErr != nil {
				logger.Get().Warnf("migrate source close error: %v", srcErr)
			}
			if dbErr != nil {
				logger.Get().Warnf("migrate database close error: %v", dbErr)
			}
		}()
		return fn(m)
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(func(m *migrate.Migrate) error {
					if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
						return fmt.Errorf("migration up failed: %w", err)
					}
					logger.Get().Info("Migrations applied successfully")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "down [N]",
			Short: "Roll back N migrations (default 1)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				steps := 1
				if len(args) == 1 {
					n, err := strconv.Atoi(args[0])
					if err != nil || n < 1 {
						return fmt.Errorf("invalid step count %q", args[0])
					}
					steps = n
				}
				return withMigrator(func(m *migrate.Migrate) error {
					if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
						return fmt.Errorf("migration down failed: %w", err)
					}
					logger.Get().Infof("Rolled back %d migration(s)", steps)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(func(m *migrate.Migrate) error {
					version, dirty, err := m.Version()
					if errors.Is(err, migrate.ErrNilVersion) {
						logger.Get().Info("No migrations applied")
						return nil
					}
					if err != nil {
						return fmt.Errorf("failed to get version: %w", err)
					}
					logger.Get().Infof("Version: %d, Dirty: %v", version, dirty)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:     "seed <file>",
			Short:   "Create the guardrail rules defined in a YAML file",
			Example: "  migrate seed rules/default.yaml",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runSeed(cmd.Context(), args[0])
			},
		},
	)

	return root
}

func runSeed(ctx context.Context, path string) error {
	f, err := seed.LoadFile(path)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	dbManager, err := database.NewManager(cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			logger.Get().Warnf("database close error: %v", err)
		}
	}()

	res, err := seed.Apply(ctx, services.NewGuardrailService(dbManager.DB()), f.Rules)
	if err != nil {
		return fmt.Errorf("seeding rules: %w", err)
	}
	logger.Get().Infof("Seeded %d rule(s), skipped %d existing", res.Created, res.Skipped)
	return nil
}
