package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ates/study/internal/content"
	"github.com/ates/study/internal/progress"
)

// leech thresholds: repeatedly missed despite real exposure.
const (
	leechMinSeen     = 3
	leechMaxAccuracy = 0.5
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, cleanup, err := buildEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		st := env.progress.Load()
		due := env.progress.DueStats(st)
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "Readiness       %d/100\n", st.Readiness)
		fmt.Fprintf(out, "Streak          %d sessions\n", st.Streak)
		fmt.Fprintf(out, "Study time      %d min\n", st.TotalStudyMinutes)
		fmt.Fprintf(out, "Reviews due     %d (%d overdue)\n", due.Due, due.Overdue)
		fmt.Fprintf(out, "Exam date       %s\n\n", st.Settings.ExamDate)

		fmt.Fprintln(out, "Topic accuracy")
		for _, t := range env.catalog.Topics {
			ts := st.TopicStats[t.ID]
			fmt.Fprintf(out, "  %-16s %s %3.0f%%  (%d/%d)\n",
				t.Label, accuracyBar(ts.Accuracy()), ts.Accuracy()*100, ts.Correct, ts.Attempts)
		}

		leeches := findLeeches(env.catalog.Questions, st)
		if len(leeches) > 0 {
			fmt.Fprintln(out, "\nLeeches (seen 3+ times, under 50% correct)")
			for _, id := range leeches {
				h := st.QuestionHistory[id]
				fmt.Fprintf(out, "  %-24s %d/%d correct\n", id, h.Correct, h.Seen)
			}
		}

		if st.LastSession != nil {
			ls := st.LastSession
			fmt.Fprintf(out, "\nLast session: %s, %.0f%% (%d/%d), finished %s\n",
				ls.Mode, ls.Accuracy, ls.CorrectCount, ls.TotalQuestions,
				ls.FinishedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

func accuracyBar(acc float64) string {
	const width = 20
	filled := int(acc * width)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

// findLeeches returns question ids repeatedly answered wrong despite
// multiple exposures, in catalog order.
func findLeeches(questions []content.Question, st progress.State) []string {
	var out []string
	for _, q := range questions {
		h := st.QuestionHistory[q.ID]
		if h.Seen < leechMinSeen {
			continue
		}
		if float64(h.Correct)/float64(h.Seen) < leechMaxAccuracy {
			out = append(out, q.ID)
		}
	}
	return out
}
