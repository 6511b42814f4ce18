package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ignatzorin/upcycle-backend/internal/config"
	"github.com/ignatzorin/upcycle-backend/internal/db"
	"github.com/ignatzorin/upcycle-backend/internal/infrastructure/persistence"
	"github.com/ignatzorin/upcycle-backend/internal/logger"
	"github.com/ignatzorin/upcycle-backend/internal/usecase/identity"
)

// newArtisanCommand - операторские команды: статус мастера не меняется через API.
func newArtisanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "artisan",
		Short: "Управление мастерами",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(artisanToggleCommand("activate", "Разрешить пользователю откликаться на заявки", true))
	cmd.AddCommand(artisanToggleCommand("deactivate", "Запретить пользователю откликаться на заявки", false))
	return cmd
}

func artisanToggleCommand(use, short string, active bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <username>",
		Short: short,
		Args:  cobra.ExactArgs(1),
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

			profile, err := identity.NewSetArtisanActiveUseCase(persistence.NewPostgresStore(conn)).Execute(ctx, args[0], active)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: is_active_artisan=%t\n", args[0], profile.IsActiveArtisan)
			return nil
		},
	}
}

// loadConfig читает конфигурацию и настраивает логгер под окружение.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("main: ошибка загрузки конфигурации: %w", err)
	}

	if cfg.IsProduction() {
		logger.Init(cfg.LogLevel)
	} else {
		logger.Init("debug")
		logger.SetTextFormatter()
	}
	return cfg, nil
}
