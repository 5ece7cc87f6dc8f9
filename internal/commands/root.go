package commands

import (
	"fmt"

	"bukubesar-api/internal/config"
	"bukubesar-api/internal/database"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the admin CLI with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bukubesarctl",
		Short: "Administration tool for the Buku Besar API",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newSeedCommand())
	rootCmd.AddCommand(newCreateProfilCommand())
	rootCmd.AddCommand(newJurnalTemplateCommand())

	return rootCmd
}

func connect() (*config.Config, *sqlx.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	db, err := database.NewMySQL(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}
