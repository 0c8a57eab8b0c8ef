package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/core/config"
	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/core/database"
	"github.com/CultivBureau/RwafiWorkHole-sub004/internal/repo"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the membership audit table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.DB.Driver == "" {
				return errors.New("db.driver is empty, audit is disabled")
			}
			db, err := database.NewGorm(database.Opts{
				Driver:   cfg.DB.Driver,
				DSN:      cfg.DB.DSN,
				Username: cfg.DB.Username,
				Password: cfg.DB.Password,
				LogLevel: cfg.DB.LogLevel,
			})
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}
			if err := repo.NewAuditRepo(db).Migrate(); err != nil {
				return fmt.Errorf("migrate audit: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "audit table ready")
			return err
		},
	}
}
