package main

import (
	"fmt"
	"os"

	"github.com/AlexTLDR/bringwhat/internal/config"
	"github.com/AlexTLDR/bringwhat/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "bringwhat",
	Short: "BringWhat - shared \"who brings what\" lists for events",
	Long: `BringWhat lets a host create an event and share a link; guests add what
they are bringing to a shared list, and an optional AI provider suggests
what is still missing.

Run without a subcommand to start the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load .env file (ignore error if a file doesn't exist)
		// Use Overload to force to overwrite any existing environment variables
		envErr := godotenv.Overload()

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger, err = logging.New(cfg.Environment, cfg.LogLevel)
		if err != nil {
			return err
		}

		if envErr != nil {
			logger.Debug("No .env file loaded", zap.Error(envErr))
		} else {
			logger.Debug(".env file loaded successfully (with overload)")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, deleteEventCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
