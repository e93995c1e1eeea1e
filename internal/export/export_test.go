package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ates/study/internal/content"
	"github.com/ates/study/internal/progress"
)

func testCatalog(t *testing.T) *content.Catalog {
	t.Helper()
	c, err := content.New(
		[]content.Topic{
			{ID: "noun", Label: "Nouns"},
			{ID: "verb", Label: "Verbs"},
		},
		[]content.Question{
			{ID: "q1", TopicID: "noun", Prompt: "p", Choices: []string{"a", "b"}, CorrectIndex: 0},
			{ID: "q2", TopicID: "verb", Prompt: "p", Choices: []string{"a", "b"}, CorrectIndex: 0},
		},
		nil,
	)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func testState() progress.State {
	correct := true
	seenAt := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	return progress.State{
		TopicStats: map[content.TopicID]progress.TopicStats{
			"noun": {Attempts: 4, Correct: 3},
		},
		QuestionHistory: map[string]progress.QuestionHistory{
			"q1": {Seen: 4, Correct: 3, TotalTimeMs: 8000, LastSeenAt: &seenAt, LastResultCorrect: &correct},
		},
		Streak:            2,
		TotalStudyMinutes: 15,
		Readiness:         62,
		Settings:          progress.Settings{ExamDate: "2026-04-06", SessionLengthMinutes: 12},
	}
}

func TestBuildWorkbook_Sheets(t *testing.T) {
	f, err := BuildWorkbook(testCatalog(t), testState())
	if err != nil {
		t.Fatalf("BuildWorkbook: %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{sheetSummary, sheetTopics, sheetQuestions} {
		idx, err := f.GetSheetIndex(sheet)
		if err != nil {
			t.Fatal(err)
		}
		if idx < 0 {
			t.Errorf("sheet %q missing", sheet)
		}
	}

	// The default sheet is dropped.
	idx, err := f.GetSheetIndex("Sheet1")
	if err != nil {
		t.Fatal(err)
	}
	if idx >= 0 {
		t.Error("default Sheet1 should be deleted")
	}
}

func TestBuildWorkbook_TopicRows(t *testing.T) {
	catalog := testCatalog(t)
	f, err := BuildWorkbook(catalog, testState())
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetTopics)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != len(catalog.Topics)+1 {
		t.Fatalf("got %d rows, want header + %d topics", len(rows), len(catalog.Topics))
	}
	if rows[1][0] != "noun" || rows[1][1] != "Nouns" {
		t.Errorf("first topic row = %v", rows[1])
	}
	if rows[1][2] != "4" || rows[1][3] != "3" {
		t.Errorf("noun counters = %v, want attempts 4 correct 3", rows[1][2:4])
	}
}

func TestBuildWorkbook_QuestionRows(t *testing.T) {
	catalog := testCatalog(t)
	f, err := BuildWorkbook(catalog, testState())
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetQuestions)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != len(catalog.Questions)+1 {
		t.Fatalf("got %d rows, want header + %d questions", len(rows), len(catalog.Questions))
	}

	// q1: seen 4, avg 8000/4 = 2000ms, last result correct.
	if rows[1][0] != "q1" || rows[1][2] != "4" || rows[1][4] != "2000" {
		t.Errorf("q1 row = %v", rows[1])
	}
	if rows[1][5] != "correct" {
		t.Errorf("q1 last result = %q, want correct", rows[1][5])
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")

	if err := WriteFile(path, testCatalog(t), testState()); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}
