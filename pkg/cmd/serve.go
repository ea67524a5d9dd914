package cmd

import (
	"github.com/spf13/cobra"

	"github.com/artvault/artvault/pkg/app"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Short:   "start the vault HTTP server",
	Aliases: []string{"server", "run"},
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.NewApp(configPath)

		return a.Run()
	},
}

// registerServeCommands registers the serve command.
func registerServeCommands() {
	rootCmd.AddCommand(serveCmd)
}
