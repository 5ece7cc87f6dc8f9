package commands

import (
	"fmt"
	"os"

	"bukubesar-api/internal/service"

	"github.com/spf13/cobra"
)

func newJurnalTemplateCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "jurnal-template",
		Short: "Write an empty xlsx sheet for POST /api/jurnal/import",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJurnalTemplate(out)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "jurnal_import.xlsx", "output file")

	return cmd
}

func writeJurnalTemplate(path string) error {
	buf, err := service.NewExcelService().JurnalTemplate()
	if err != nil {
		return fmt.Errorf("building template: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
