package content

// TopicID identifies a syllabus category. Every question and flashcard
// belongs to exactly one topic.
type TopicID string

// Skill classifies what a practice item exercises.
type Skill string

const (
	SkillRecognition Skill = "recognition"
	SkillProduction  Skill = "production"
)

// Question is a multiple-choice practice item from the static catalog.
type Question struct {
	ID           string   `json:"id"`
	TopicID      TopicID  `json:"topicId"`
	Skill        Skill    `json:"skill"`
	Difficulty   int      `json:"difficulty"`
	Prompt       string   `json:"prompt"`
	Choices      []string `json:"choices"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
	Rule         string   `json:"rule"`
	Trap         string   `json:"trap"`
	MemoryHook   string   `json:"memoryHook"`
}

// Flashcard is a front/back review item from the static catalog.
type Flashcard struct {
	ID         string  `json:"id"`
	TopicID    TopicID `json:"topicId"`
	Skill      Skill   `json:"skill"`
	Difficulty int     `json:"difficulty"`
	Front      string  `json:"front"`
	Back       string  `json:"back"`
}

// Topic pairs a topic id with its display label. Catalog order is
// significant: it is the ambient iteration order used for tie-breaking.
type Topic struct {
	ID    TopicID `json:"id"`
	Label string  `json:"label"`
}
