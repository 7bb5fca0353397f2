package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmdPersistentFlags struct {
	EnvFile string
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootCmdPersistentFlags.EnvFile, "env-file", ".env", "Path to the env file; a missing file is ignored")
}

var rootCmd = &cobra.Command{
	Use:   "movies-api",
	Short: "Movie catalog HTTP API",
	Long:  `movies-api serves a catalog of movies, genres, actors and reviews backed by PostgreSQL.`,
	Example: `movies-api serve
  movies-api serve --env-file /etc/movies-api/.env
  movies-api migrate`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
