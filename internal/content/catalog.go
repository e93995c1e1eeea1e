package content

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

//go:embed data/catalog.json
var embeddedCatalog []byte

// Catalog is the read-only item catalog supplied at startup. The core
// never mutates it; indexes are built once at construction.
type Catalog struct {
	Topics     []Topic
	Questions  []Question
	Flashcards []Flashcard

	questionsByID  map[string]*Question
	flashcardsByID map[string]*Flashcard
	topicLabels    map[TopicID]string
}

// catalogFile is the on-disk JSON shape of a catalog.
type catalogFile struct {
	Topics     []Topic     `json:"topics"`
	Questions  []Question  `json:"questions"`
	Flashcards []Flashcard `json:"flashcards"`
}

// New builds a Catalog from its parts and indexes items by id.
// Duplicate ids are rejected so a broken catalog fails loudly at startup
// instead of producing first-wins surprises mid-session.
func New(topics []Topic, questions []Question, flashcards []Flashcard) (*Catalog, error) {
	c := &Catalog{
		Topics:         topics,
		Questions:      questions,
		Flashcards:     flashcards,
		questionsByID:  make(map[string]*Question, len(questions)),
		flashcardsByID: make(map[string]*Flashcard, len(flashcards)),
		topicLabels:    make(map[TopicID]string, len(topics)),
	}

	for _, t := range topics {
		if _, ok := c.topicLabels[t.ID]; ok {
			return nil, fmt.Errorf("duplicate topic id %q", t.ID)
		}
		c.topicLabels[t.ID] = t.Label
	}
	for i := range questions {
		q := &questions[i]
		if _, ok := c.questionsByID[q.ID]; ok {
			return nil, fmt.Errorf("duplicate question id %q", q.ID)
		}
		if _, ok := c.topicLabels[q.TopicID]; !ok {
			return nil, fmt.Errorf("question %q references unknown topic %q", q.ID, q.TopicID)
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Choices) {
			return nil, fmt.Errorf("question %q: correctIndex %d out of range", q.ID, q.CorrectIndex)
		}
		c.questionsByID[q.ID] = q
	}
	for i := range flashcards {
		f := &flashcards[i]
		if _, ok := c.flashcardsByID[f.ID]; ok {
			return nil, fmt.Errorf("duplicate flashcard id %q", f.ID)
		}
		if _, ok := c.topicLabels[f.TopicID]; !ok {
			return nil, fmt.Errorf("flashcard %q references unknown topic %q", f.ID, f.TopicID)
		}
		c.flashcardsByID[f.ID] = f
	}

	return c, nil
}

// Default returns the embedded catalog shipped with the binary.
func Default() *Catalog {
	c, err := parse(embeddedCatalog)
	if err != nil {
		// The embedded catalog is validated by tests; reaching this means
		// the binary itself is broken.
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// LoadFile reads and validates an external catalog JSON file.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if err := validateCatalog(raw); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return parse(raw)
}

func parse(raw []byte) (*Catalog, error) {
	var f catalogFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(f.Topics, f.Questions, f.Flashcards)
}

// Question returns the question with the given id, or nil if absent.
func (c *Catalog) Question(id string) *Question {
	return c.questionsByID[id]
}

// Flashcard returns the flashcard with the given id, or nil if absent.
func (c *Catalog) Flashcard(id string) *Flashcard {
	return c.flashcardsByID[id]
}

// HasQuestion reports whether id names a catalog question.
func (c *Catalog) HasQuestion(id string) bool {
	_, ok := c.questionsByID[id]
	return ok
}

// TopicLabel returns the display label for a topic, falling back to the
// raw id for unknown topics so stale state still renders.
func (c *Catalog) TopicLabel(id TopicID) string {
	if l, ok := c.topicLabels[id]; ok {
		return l
	}
	return string(id)
}

// TopicIDs returns topic ids in catalog order.
func (c *Catalog) TopicIDs() []TopicID {
	ids := make([]TopicID, len(c.Topics))
	for i, t := range c.Topics {
		ids[i] = t.ID
	}
	return ids
}

// QuestionsInTopics returns catalog questions whose topic is in the given
// set, preserving catalog order.
func (c *Catalog) QuestionsInTopics(topics map[TopicID]bool) []Question {
	var out []Question
	for _, q := range c.Questions {
		if topics[q.TopicID] {
			out = append(out, q)
		}
	}
	return out
}
