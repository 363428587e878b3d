package content

// Level is the difficulty band of a unit or learner.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Valid reports whether l is a known level.
func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// Label returns the learner-facing name of the level.
func (l Level) Label() string {
	switch l {
	case LevelIntermediate:
		return "Getting Conversational"
	case LevelAdvanced:
		return "Fluent Explorer"
	default:
		return "Getting Started"
	}
}

// ItemKind classifies a lesson item by length.
type ItemKind string

const (
	KindWord     ItemKind = "word"
	KindPhrase   ItemKind = "phrase"
	KindSentence ItemKind = "sentence"
)

// LessonItem is a single target phrase to practice.
type LessonItem struct {
	ID          string   `yaml:"id" json:"id"`
	Text        string   `yaml:"text" json:"text"`
	Phonetic    string   `yaml:"phonetic" json:"phonetic"`
	Translation string   `yaml:"translation" json:"translation"`
	Kind        ItemKind `yaml:"kind" json:"kind"`

	// AudioPath optionally points at a pre-recorded clip of the item.
	AudioPath string `yaml:"audio_path,omitempty" json:"audio_path,omitempty"`
}

// Unit is an ordered group of items around a theme.
type Unit struct {
	ID       string       `yaml:"id" json:"id"`
	Title    string       `yaml:"title" json:"title"`
	Outcome  string       `yaml:"outcome" json:"outcome"`
	Level    Level        `yaml:"level" json:"level"`
	Locked   bool         `yaml:"locked" json:"locked"`
	Progress int          `yaml:"progress" json:"progress"`
	Items    []LessonItem `yaml:"items" json:"items"`
}

// Clone returns a deep copy of u.
func (u Unit) Clone() Unit {
	out := u
	out.Items = make([]LessonItem, len(u.Items))
	copy(out.Items, u.Items)
	return out
}
