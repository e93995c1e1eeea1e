package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ates/study/internal/app"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review due flashcards",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, cleanup, err := buildEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		opts := env.options()
		opts.Start = app.StartReview
		return app.Run(opts)
	},
}
