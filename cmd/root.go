package cmd

import (
	"context"
	"fmt"
	"log"

	"flight-review/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// configPath is the optional env file read before the environment.
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "flight-review",
	Short: "Flight review intake and back-office service",
	Long: `flight-review accepts customer flight reviews, syncs them to the airline
back office over a message bus and serves the public and company listings.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&configPath, "config", ".env",
		"Path to an env file; process environment overrides it",
	)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

// bootstrap loads the configuration and builds the logger every command
// shares.
func bootstrap() (*utils.Config, *zap.Logger, error) {
	config, err := utils.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using production logger.", err)
		logger, _ = zap.NewProduction()
	}

	return config, logger, nil
}
