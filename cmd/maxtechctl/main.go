// Command maxtechctl runs maintenance tasks against the store database.
package main

import (
	"fmt"
	"os"

	"github.com/Kariqs/maxtech-api/initializers"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "maxtechctl",
		Short: "Maintenance commands for the MaxTech API",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initializers.LoadEnv(); err != nil {
				return err
			}
			initializers.SetupLogger(initializers.Cfg.LogLevel, initializers.Cfg.Production())
			return initializers.ConnectToDB()
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedAdminCmd())
	rootCmd.AddCommand(reconcileCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initializers.SyncDatabase()
		},
	}
}
