package cmd

import (
	"fmt"

	"movies-api/pkg/database"
	"movies-api/pkg/utils"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	Long:  `Create any missing tables and indexes. Safe to run repeatedly.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		config, err := utils.LoadConfig(rootCmdPersistentFlags.EnvFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		db, err := database.InitDB(cmd.Context(), config.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.ApplySchema(cmd.Context(), db); err != nil {
			return err
		}
		cmd.Println("schema applied")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
