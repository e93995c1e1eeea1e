package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ates/study/internal/app"
)

var drillCmd = &cobra.Command{
	Use:   "drill",
	Short: "Jump straight into a weak-topic drill",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, cleanup, err := buildEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		opts := env.options()
		opts.Start = app.StartDrill
		return app.Run(opts)
	},
}
