package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset all learner progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			fmt.Fprint(cmd.OutOrStdout(), "This wipes all progress. Type 'yes' to continue: ")
			reader := bufio.NewReader(cmd.InOrStdin())
			line, _ := reader.ReadString('\n')
			if strings.TrimSpace(line) != "yes" {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
		}

		env, cleanup, err := buildEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		env.progress.Reset()
		fmt.Fprintln(cmd.OutOrStdout(), "Progress reset. All flashcards are due now.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("force", false, "Skip the confirmation prompt")
}
