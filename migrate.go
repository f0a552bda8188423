package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"agrisphere/config"
	"agrisphere/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the users, refresh token and prediction tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		databaseURL := config.AppConfig.DatabaseURL
		if err := database.Connect(cmd.Context(), databaseURL); err != nil {
			return err
		}
		defer database.Close()

		logger.Info("migrated", zap.String("database", database.Backend(databaseURL)))
		return nil
	},
}
