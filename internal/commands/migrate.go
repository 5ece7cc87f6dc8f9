package commands

import (
	"fmt"

	"bukubesar-api/internal/database"

	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create any missing ledger tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := connect()
			if err != nil {
				return err
			}
			defer db.Close()

			applied, err := database.Migrate(db)
			if err != nil {
				return fmt.Errorf("statement %d: %w", applied+1, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied %d schema statements\n", applied)
			return nil
		},
	}
}
