package main

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/ignatzorin/upcycle-backend/internal/db"
	"github.com/ignatzorin/upcycle-backend/internal/logger"
)

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Управление схемой базы данных",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(migrateSubcommand("up", "Применить все новые миграции", (*db.Migrator).Up))
	cmd.AddCommand(migrateSubcommand("down", "Откатить последнюю миграцию", (*db.Migrator).Down))
	cmd.AddCommand(migrateSubcommand("status", "Показать состояние миграций", (*db.Migrator).Status))
	return cmd
}

func migrateSubcommand(use, short string, run func(*db.Migrator, context.Context) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			conn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer safeClose(conn)

			migrator, err := db.NewMigrator(conn, logger.Log)
			if err != nil {
				return err
			}
			if err := run(migrator, ctx); err != nil {
				return err
			}

			version, err := migrator.Version(ctx)
			if err != nil {
				return err
			}
			logger.Log.WithField("version", version).Info("migrate: готово")
			return nil
		},
	}
}

// safeClose закрывает соединение с базой.
func safeClose(conn *sqlx.DB) {
	if err := conn.Close(); err != nil {
		logger.Log.WithError(err).Error("main: ошибка закрытия базы")
	}
}
