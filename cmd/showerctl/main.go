package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kendall-kelly/shower-configurator-api/config"
	"github.com/kendall-kelly/shower-configurator-api/controllers"
	"github.com/kendall-kelly/shower-configurator-api/logging"
	"github.com/kendall-kelly/shower-configurator-api/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "showerctl",
		Short:        "Maintenance commands for the shower configurator database",
		SilenceUsage: true,
	}

	root.AddCommand(newMigrateCmd(), newSeedCmd(), newCreateAdminCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := open()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
			return closeDB(db)
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the default catalog, price tables and demo model",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := open()
			if err != nil {
				return err
			}
			defer closeDB(db)

			if err := services.NewSeeder(db).Seed(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Seed data loaded")
			return nil
		},
	}
}

func newCreateAdminCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := open()
			if err != nil {
				return err
			}
			defer closeDB(db)

			admin, err := services.NewAuthService(db, controllers.TokenConfig(cfg)).
				CreateAdmin(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Admin %q created (id %d)\n", admin.Username, admin.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "username for the new admin")
	cmd.Flags().StringVar(&password, "password", "", "password for the new admin")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

// open loads the configuration, connects to the database and migrates it
func open() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.GoEnv)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	zap.ReplaceGlobals(logger)

	if err := config.ConnectDatabase(cfg); err != nil {
		return nil, nil, err
	}
	db := config.GetDB()
	if err := config.Migrate(db); err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
