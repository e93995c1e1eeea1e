package spacedrep

import "fmt"

// Rating is the learner's four-way assessment of a flashcard recall.
type Rating int

const (
	Again Rating = iota + 1 // Failed to recall; card lapses.
	Hard                    // Recalled with serious effort.
	Good                    // Recalled correctly.
	Easy                    // Recalled instantly.
)

var ratingNames = map[Rating]string{
	Again: "again",
	Hard:  "hard",
	Good:  "good",
	Easy:  "easy",
}

var ratingByName = map[string]Rating{
	"again": Again,
	"hard":  Hard,
	"good":  Good,
	"easy":  Easy,
}

// String returns the lowercase wire name of the rating.
func (r Rating) String() string {
	if name, ok := ratingNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Rating(%d)", int(r))
}

// Valid reports whether r is one of the four defined ratings.
func (r Rating) Valid() bool {
	_, ok := ratingNames[r]
	return ok
}

// ParseRating converts a wire name back to a Rating.
func ParseRating(s string) (Rating, error) {
	if r, ok := ratingByName[s]; ok {
		return r, nil
	}
	return 0, fmt.Errorf("unknown rating %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (r Rating) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid rating %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rating) UnmarshalText(text []byte) error {
	parsed, err := ParseRating(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
