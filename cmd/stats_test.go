package cmd

import (
	"testing"

	"github.com/ates/study/internal/content"
	"github.com/ates/study/internal/progress"
)

func TestFindLeeches(t *testing.T) {
	questions := []content.Question{
		{ID: "q1", TopicID: "a"},
		{ID: "q2", TopicID: "a"},
		{ID: "q3", TopicID: "a"},
		{ID: "q4", TopicID: "a"},
	}
	st := progress.State{
		QuestionHistory: map[string]progress.QuestionHistory{
			"q1": {Seen: 4, Correct: 1}, // 25%, leech
			"q2": {Seen: 2, Correct: 0}, // too few exposures
			"q3": {Seen: 5, Correct: 4}, // 80%, fine
			"q4": {Seen: 3, Correct: 1}, // 33%, leech
		},
	}

	got := findLeeches(questions, st)
	want := []string{"q1", "q4"}
	if len(got) != len(want) {
		t.Fatalf("findLeeches = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("findLeeches[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAccuracyBar(t *testing.T) {
	tests := []struct {
		acc  float64
		want string
	}{
		{0, "[--------------------]"},
		{0.5, "[##########----------]"},
		{1, "[####################]"},
	}
	for _, tt := range tests {
		if got := accuracyBar(tt.acc); got != tt.want {
			t.Errorf("accuracyBar(%v) = %q, want %q", tt.acc, got, tt.want)
		}
	}
}
