// Package content loads exercise packs from JSON or YAML into a catalog.
package content

import (
	"github.com/abhisek/bhasha/internal/exercise"
)

// Pack is the on-disk layout of a content pack.
type Pack struct {
	Version string       `json:"version" yaml:"version"`
	Skills  []SkillEntry `json:"skills" yaml:"skills"`
}

// SkillEntry is one skill and its exercises.
type SkillEntry struct {
	ID        string          `json:"id" yaml:"id"`
	Name      string          `json:"name" yaml:"name"`
	Language  string          `json:"language" yaml:"language"`
	Exercises []ExerciseEntry `json:"exercises" yaml:"exercises"`
}

// ExerciseEntry is one exercise. Which fields apply depends on Type.
type ExerciseEntry struct {
	Type       string `json:"type" yaml:"type"`
	ID         string `json:"id" yaml:"id"`
	Prompt     string `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	SkillID    string `json:"skillId,omitempty" yaml:"skillId,omitempty"`
	Difficulty int    `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	AudioFile  string `json:"audioFile,omitempty" yaml:"audioFile,omitempty"`

	// MCQ
	Options      []string `json:"options,omitempty" yaml:"options,omitempty"`
	CorrectIndex int      `json:"correctIndex,omitempty" yaml:"correctIndex,omitempty"`

	// Translate and CharacterSelect
	EnglishPhrase  string   `json:"englishPhrase,omitempty" yaml:"englishPhrase,omitempty"`
	CorrectAnswers []string `json:"correctAnswers,omitempty" yaml:"correctAnswers,omitempty"`
	TargetLanguage string   `json:"targetLanguage,omitempty" yaml:"targetLanguage,omitempty"`
	CharSelection  bool     `json:"charSelection,omitempty" yaml:"charSelection,omitempty"`
	CharacterSet   []string `json:"characterSet,omitempty" yaml:"characterSet,omitempty"`

	// TileOrder
	Tiles        []string `json:"tiles,omitempty" yaml:"tiles,omitempty"`
	CorrectOrder []string `json:"correctOrder,omitempty" yaml:"correctOrder,omitempty"`
}

// Exercise converts the entry into a domain exercise. An empty SkillID
// inherits skillID.
func (s ExerciseEntry) Exercise(skillID string) exercise.Exercise {
	h := exercise.Header{
		ID:         s.ID,
		Prompt:     s.Prompt,
		Difficulty: s.Difficulty,
		SkillID:    s.SkillID,
		AudioRef:   s.AudioFile,
	}
	if h.SkillID == "" {
		h.SkillID = skillID
	}

	tr := exercise.Translation{
		SourcePhrase:   s.EnglishPhrase,
		Accepted:       s.CorrectAnswers,
		TargetLanguage: s.TargetLanguage,
		CharSelection:  s.CharSelection,
		CharacterSet:   s.CharacterSet,
	}

	switch exercise.Kind(s.Type) {
	case exercise.KindMultipleChoice:
		return exercise.NewMultipleChoice(h, s.Options, s.CorrectIndex)
	case exercise.KindTranslate:
		return exercise.NewTranslate(h, tr)
	case exercise.KindCharacterSelect:
		return exercise.NewCharacterSelect(h, tr)
	case exercise.KindTileOrder:
		return exercise.NewTileOrder(h, s.Tiles, s.CorrectOrder)
	}
	return exercise.Exercise{ID: h.ID, Kind: exercise.Kind(s.Type), Prompt: h.Prompt,
		Difficulty: exercise.ClampDifficulty(h.Difficulty), SkillID: h.SkillID, AudioRef: h.AudioRef}
}
