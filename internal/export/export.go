// Package export writes a learner progress report as an Excel workbook:
// an overview sheet, per-topic accuracy, and per-question history.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ates/study/internal/content"
	"github.com/ates/study/internal/progress"
)

const (
	sheetSummary   = "Summary"
	sheetTopics    = "Topics"
	sheetQuestions = "Questions"
)

// BuildWorkbook renders the state into a workbook. The caller owns the
// returned file and should Close it.
func BuildWorkbook(catalog *content.Catalog, st progress.State) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := writeSummary(f, st); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeTopics(f, catalog, st); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeQuestions(f, catalog, st); err != nil {
		f.Close()
		return nil, err
	}

	// Drop the default sheet and land on the summary.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}
	idx, err := f.GetSheetIndex(sheetSummary)
	if err != nil {
		f.Close()
		return nil, err
	}
	f.SetActiveSheet(idx)

	return f, nil
}

// WriteFile builds the workbook and saves it at path.
func WriteFile(path string, catalog *content.Catalog, st progress.State) error {
	f, err := BuildWorkbook(catalog, st)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, st progress.State) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("create %s sheet: %w", sheetSummary, err)
	}

	rows := [][]any{
		{"Exported at", time.Now().Format(time.RFC3339)},
		{"Readiness", st.Readiness},
		{"Streak", st.Streak},
		{"Total study minutes", st.TotalStudyMinutes},
		{"Exam date", st.Settings.ExamDate},
	}
	if st.LastSession != nil {
		rows = append(rows,
			[]any{"Last session mode", string(st.LastSession.Mode)},
			[]any{"Last session accuracy", st.LastSession.Accuracy},
			[]any{"Last session finished", st.LastSession.FinishedAt.Format(time.RFC3339)},
		)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetSummary, cell, &row); err != nil {
			return fmt.Errorf("write summary row %d: %w", i+1, err)
		}
	}
	return nil
}

func writeTopics(f *excelize.File, catalog *content.Catalog, st progress.State) error {
	if _, err := f.NewSheet(sheetTopics); err != nil {
		return fmt.Errorf("create %s sheet: %w", sheetTopics, err)
	}

	header := []any{"Topic", "Label", "Attempts", "Correct", "Accuracy %"}
	if err := f.SetSheetRow(sheetTopics, "A1", &header); err != nil {
		return err
	}

	for i, t := range catalog.Topics {
		ts := st.TopicStats[t.ID]
		row := []any{
			string(t.ID),
			t.Label,
			ts.Attempts,
			ts.Correct,
			ts.Accuracy() * 100,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetTopics, cell, &row); err != nil {
			return fmt.Errorf("write topic row %q: %w", t.ID, err)
		}
	}
	return nil
}

func writeQuestions(f *excelize.File, catalog *content.Catalog, st progress.State) error {
	if _, err := f.NewSheet(sheetQuestions); err != nil {
		return fmt.Errorf("create %s sheet: %w", sheetQuestions, err)
	}

	header := []any{"Question", "Topic", "Seen", "Correct", "Avg time ms", "Last result"}
	if err := f.SetSheetRow(sheetQuestions, "A1", &header); err != nil {
		return err
	}

	for i, q := range catalog.Questions {
		h := st.QuestionHistory[q.ID]

		var avgMs int64
		if h.Seen > 0 {
			avgMs = h.TotalTimeMs / int64(h.Seen)
		}
		lastResult := ""
		if h.LastResultCorrect != nil {
			if *h.LastResultCorrect {
				lastResult = "correct"
			} else {
				lastResult = "wrong"
			}
		}

		row := []any{q.ID, string(q.TopicID), h.Seen, h.Correct, avgMs, lastResult}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetQuestions, cell, &row); err != nil {
			return fmt.Errorf("write question row %q: %w", q.ID, err)
		}
	}
	return nil
}
