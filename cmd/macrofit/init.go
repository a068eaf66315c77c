package macrofit

import (
	"fmt"

	"github.com/macrofit/macrofit-cli/internal/app"
	"github.com/macrofit/macrofit-cli/internal/store"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize local macrofit database",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDBPath()
		if err != nil {
			return err
		}
		if err := app.EnsureDBDir(path); err != nil {
			return err
		}

		sqldb, err := store.Open(path)
		if err != nil {
			return err
		}
		defer sqldb.Close()

		if err := store.ApplyMigrations(sqldb); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Initialized macrofit database at %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	return app.DefaultDBPath()
}
