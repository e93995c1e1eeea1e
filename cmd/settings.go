package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ates/study/internal/progress"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change study settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, cleanup, err := buildEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		var patch progress.SettingsPatch
		if cmd.Flags().Changed("exam-date") {
			v, _ := cmd.Flags().GetString("exam-date")
			patch.ExamDate = &v
		}
		if cmd.Flags().Changed("session-length") {
			v, _ := cmd.Flags().GetInt("session-length")
			patch.SessionLengthMinutes = &v
		}

		var st progress.State
		if patch.ExamDate != nil || patch.SessionLengthMinutes != nil {
			st = env.progress.UpdateSettings(patch)
		} else {
			st = env.progress.Load()
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Exam date:       %s\n", st.Settings.ExamDate)
		fmt.Fprintf(cmd.OutOrStdout(), "Session length:  %d min\n", st.Settings.SessionLengthMinutes)
		return nil
	},
}

func init() {
	settingsCmd.Flags().String("exam-date", "", "Exam date (YYYY-MM-DD)")
	settingsCmd.Flags().Int("session-length", 0, "Target session length in minutes")
}
