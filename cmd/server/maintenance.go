package main

import (
	"fmt"

	"github.com/AlexTLDR/bringwhat/internal/database"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the tables and indexes if they are missing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.New(cmd.Context(), cfg.Database, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.Migrate(cmd.Context()); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Migrations applied to %s database\n", db.Kind())
		return nil
	},
}

var deleteEventCmd = &cobra.Command{
	Use:   "delete-event <id>",
	Short: "Delete an event together with its items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.New(cmd.Context(), cfg.Database, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		deleted, err := db.DeleteEvent(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("event %q not found", args[0])
		}

		logger.Info("Deleted event", zap.String("id", args[0]))
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted event %s\n", args[0])
		return nil
	},
}
