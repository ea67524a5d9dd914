package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/artvault/artvault/pkg/internal/model"
	"github.com/artvault/artvault/pkg/internal/storage/db"
)

var (
	dbCmd = &cobra.Command{
		Use:   "db",
		Short: "Database related commands",
	}

	dbListCmd = &cobra.Command{
		Use:     "list",
		Short:   "list all registered database types",
		Aliases: []string{"ls", "l"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "Registered database types:")
			for _, dbType := range db.GetRegisteredDBTypes() {
				fmt.Fprintln(cmd.OutOrStdout(), "   - "+string(dbType))
			}
		},
	}

	dbPingCmd = &cobra.Command{
		Use:   "ping",
		Short: "check database connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, mgr, err := storageContext()
			if err != nil {
				return err
			}
			defer mgr.Close()

			sqlDB, err := mgr.GetDBClient().GetDB().DB()
			if err != nil {
				return err
			}

			if err := sqlDB.PingContext(ctx); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "database ok")

			return nil
		},
	}

	dbMigrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "create or update the entity schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, mgr, err := storageContext()
			if err != nil {
				return err
			}
			defer mgr.Close()

			if err := model.Migrate(mgr.GetDBClient().GetDB()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")

			return nil
		},
	}
)

// registerDBCommands registers the database subcommands.
func registerDBCommands() {
	rootCmd.AddCommand(dbCmd)

	dbCmd.AddCommand(dbListCmd)
	dbCmd.AddCommand(dbPingCmd)
	dbCmd.AddCommand(dbMigrateCmd)
}
