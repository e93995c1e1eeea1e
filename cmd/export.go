package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ates/study/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export progress to an Excel workbook",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "study-progress.xlsx"
		if len(args) == 1 {
			path = args[0]
		}

		env, cleanup, err := buildEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		st := env.progress.Load()
		if err := export.WriteFile(path, env.catalog, st); err != nil {
			return fmt.Errorf("export progress: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}
