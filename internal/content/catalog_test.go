package content

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_EmbeddedCatalogIsValid(t *testing.T) {
	c := Default()

	if len(c.Topics) == 0 {
		t.Fatal("embedded catalog has no topics")
	}
	if len(c.Questions) == 0 {
		t.Fatal("embedded catalog has no questions")
	}
	if len(c.Flashcards) == 0 {
		t.Fatal("embedded catalog has no flashcards")
	}

	// Every item resolvable through the indexes.
	for _, q := range c.Questions {
		if c.Question(q.ID) == nil {
			t.Errorf("question %q not indexed", q.ID)
		}
		if c.TopicLabel(q.TopicID) == string(q.TopicID) {
			t.Errorf("question %q topic %q has no label", q.ID, q.TopicID)
		}
	}
	for _, f := range c.Flashcards {
		if c.Flashcard(f.ID) == nil {
			t.Errorf("flashcard %q not indexed", f.ID)
		}
	}

	// The embedded data must also satisfy the external-file schema.
	if err := validateCatalog(embeddedCatalog); err != nil {
		t.Errorf("embedded catalog fails schema validation: %v", err)
	}
}

func TestNew_RejectsDuplicateQuestionID(t *testing.T) {
	_, err := New(
		[]Topic{{ID: "a", Label: "A"}},
		[]Question{
			{ID: "q1", TopicID: "a", Choices: []string{"x", "y"}, CorrectIndex: 0},
			{ID: "q1", TopicID: "a", Choices: []string{"x", "y"}, CorrectIndex: 1},
		},
		nil,
	)
	if err == nil {
		t.Error("expected error for duplicate question id")
	}
}

func TestNew_RejectsUnknownTopic(t *testing.T) {
	_, err := New(
		[]Topic{{ID: "a", Label: "A"}},
		[]Question{{ID: "q1", TopicID: "missing", Choices: []string{"x", "y"}, CorrectIndex: 0}},
		nil,
	)
	if err == nil {
		t.Error("expected error for unknown topic reference")
	}

	_, err = New(
		[]Topic{{ID: "a", Label: "A"}},
		nil,
		[]Flashcard{{ID: "f1", TopicID: "missing", Front: "x", Back: "y"}},
	)
	if err == nil {
		t.Error("expected error for flashcard with unknown topic")
	}
}

func TestNew_RejectsOutOfRangeCorrectIndex(t *testing.T) {
	for _, idx := range []int{-1, 2} {
		_, err := New(
			[]Topic{{ID: "a", Label: "A"}},
			[]Question{{ID: "q1", TopicID: "a", Choices: []string{"x", "y"}, CorrectIndex: idx}},
			nil,
		)
		if err == nil {
			t.Errorf("expected error for correctIndex %d", idx)
		}
	}
}

func TestTopicLabel_UnknownFallsBackToID(t *testing.T) {
	c := Default()
	if got := c.TopicLabel("no-such-topic"); got != "no-such-topic" {
		t.Errorf("TopicLabel = %q, want raw id", got)
	}
}

func TestQuestionsInTopics(t *testing.T) {
	c, err := New(
		[]Topic{{ID: "a", Label: "A"}, {ID: "b", Label: "B"}},
		[]Question{
			{ID: "q1", TopicID: "a", Choices: []string{"x", "y"}, CorrectIndex: 0},
			{ID: "q2", TopicID: "b", Choices: []string{"x", "y"}, CorrectIndex: 0},
			{ID: "q3", TopicID: "a", Choices: []string{"x", "y"}, CorrectIndex: 0},
		},
		nil,
	)
	if err != nil {
		t.Fatal(err)
	}

	got := c.QuestionsInTopics(map[TopicID]bool{"a": true})
	if len(got) != 2 || got[0].ID != "q1" || got[1].ID != "q3" {
		t.Errorf("QuestionsInTopics = %v, want [q1 q3] in catalog order", got)
	}
}

const validCatalogJSON = `{
	"topics": [{"id": "a", "label": "A"}],
	"questions": [{
		"id": "q1", "topicId": "a", "skill": "recognition", "difficulty": 1,
		"prompt": "pick", "choices": ["x", "y"], "correctIndex": 0
	}],
	"flashcards": [{
		"id": "f1", "topicId": "a", "skill": "recognition", "difficulty": 1,
		"front": "front", "back": "back"
	}]
}`

func TestLoadFile_Valid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(validCatalogJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if c.Question("q1") == nil || c.Flashcard("f1") == nil {
		t.Error("loaded catalog missing items")
	}
}

func TestLoadFile_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{nope`},
		{"missing topics", `{"questions": [], "flashcards": []}`},
		{"empty topics", `{"topics": [], "questions": [], "flashcards": []}`},
		{"single choice", `{
			"topics": [{"id": "a", "label": "A"}],
			"questions": [{
				"id": "q1", "topicId": "a", "skill": "recognition", "difficulty": 1,
				"prompt": "pick", "choices": ["only"], "correctIndex": 0
			}],
			"flashcards": []
		}`},
		{"bad skill", `{
			"topics": [{"id": "a", "label": "A"}],
			"questions": [{
				"id": "q1", "topicId": "a", "skill": "osmosis", "difficulty": 1,
				"prompt": "pick", "choices": ["x", "y"], "correctIndex": 0
			}],
			"flashcards": []
		}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "catalog.json")
			if err := os.WriteFile(path, []byte(tt.raw), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadFile(path); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
