package cmd

import (
	"fmt"
	"log"

	"movies-api/internal/data/repository"
	"movies-api/internal/wire"
	"movies-api/pkg/database"
	"movies-api/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the HTTP server. With DB_AUTO_MIGRATE=true the schema is applied before serving.`,
	RunE:  serve,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(cmd *cobra.Command, _ []string) error {
	// Load config
	config, err := utils.LoadConfig(rootCmdPersistentFlags.EnvFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.Name, config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using production logger.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.Bool("admin_token", config.Admin.TokenHash != ""),
	)

	ctx := cmd.Context()

	// Connect to database
	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Error("Failed to connect to database", zap.Error(err))
		return err
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if config.Database.AutoMigrate {
		if err := database.ApplySchema(ctx, db); err != nil {
			logger.Error("Failed to apply schema", zap.Error(err))
			return err
		}
		logger.Info("Schema applied")
	}

	store := repository.NewRepository(db, logger)
	app := wire.Wiring(store, config, logger)

	return APIServer(ctx, app.Router, config.App.Port, config.App.ShutdownTimeout, logger)
}
