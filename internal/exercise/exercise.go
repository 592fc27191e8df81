package exercise

import (
	"fmt"
	"strings"
)

// Kind identifies the shape of an exercise.
type Kind string

const (
	KindMultipleChoice  Kind = "MCQ"
	KindTranslate       Kind = "Translate"
	KindTileOrder       Kind = "TileOrder"
	KindCharacterSelect Kind = "CharacterSelect"
)

// Difficulty bounds. Every exercise difficulty is clamped into this range.
const (
	MinDifficulty = 1
	MaxDifficulty = 3
)

// Default difficulty per kind, used when content leaves it unset.
const (
	DefaultChoiceDifficulty    = 1
	DefaultTranslateDifficulty = 2
	DefaultTileDifficulty      = 3
)

// ClampDifficulty forces d into [MinDifficulty, MaxDifficulty].
func ClampDifficulty(d int) int {
	if d < MinDifficulty {
		return MinDifficulty
	}
	if d > MaxDifficulty {
		return MaxDifficulty
	}
	return d
}

// Choice is the payload of a multiple-choice exercise.
type Choice struct {
	Options      []string
	CorrectIndex int
}

// CorrectOption returns the text of the correct option, or "" if the
// index is out of range.
func (c *Choice) CorrectOption() string {
	if c.CorrectIndex < 0 || c.CorrectIndex >= len(c.Options) {
		return ""
	}
	return c.Options[c.CorrectIndex]
}

// Translation is the payload shared by Translate and CharacterSelect
// exercises. The first accepted answer is canonical.
type Translation struct {
	SourcePhrase   string
	Accepted       []string
	TargetLanguage string

	// CharSelection switches a Translate exercise to pick-list input.
	CharSelection bool
	CharacterSet  []string
}

// Canonical returns the first accepted answer.
func (t *Translation) Canonical() string {
	if len(t.Accepted) == 0 {
		return ""
	}
	return t.Accepted[0]
}

// Tiles is the payload of a tile-ordering exercise.
type Tiles struct {
	Tiles        []string
	CorrectOrder []string
}

// Exercise is a single immutable question. Exactly one payload is set,
// matching Kind; CharacterSelect uses Translation.
type Exercise struct {
	ID         string
	Kind       Kind
	Prompt     string
	Difficulty int
	SkillID    string
	AudioRef   string

	Choice      *Choice
	Translation *Translation
	Tiles       *Tiles
}

// Header holds the fields common to every kind.
type Header struct {
	ID         string
	Prompt     string
	Difficulty int
	SkillID    string
	AudioRef   string
}

func (h Header) build(kind Kind, defaultDifficulty int) Exercise {
	d := h.Difficulty
	if d == 0 {
		d = defaultDifficulty
	}
	return Exercise{
		ID:         h.ID,
		Kind:       kind,
		Prompt:     h.Prompt,
		Difficulty: ClampDifficulty(d),
		SkillID:    h.SkillID,
		AudioRef:   h.AudioRef,
	}
}

// NewMultipleChoice builds a multiple-choice exercise.
func NewMultipleChoice(h Header, options []string, correctIndex int) Exercise {
	ex := h.build(KindMultipleChoice, DefaultChoiceDifficulty)
	ex.Choice = &Choice{
		Options:      append([]string(nil), options...),
		CorrectIndex: correctIndex,
	}
	return ex
}

// NewTranslate builds a translation exercise. An empty prompt is derived
// from the target language and source phrase.
func NewTranslate(h Header, t Translation) Exercise {
	ex := h.build(KindTranslate, DefaultTranslateDifficulty)
	if ex.Prompt == "" {
		ex.Prompt = fmt.Sprintf("Translate to %s: %s", t.TargetLanguage, t.SourcePhrase)
	}
	ex.Translation = copyTranslation(t)
	return ex
}

// NewCharacterSelect builds a character-selection exercise.
func NewCharacterSelect(h Header, t Translation) Exercise {
	ex := h.build(KindCharacterSelect, DefaultTranslateDifficulty)
	if ex.Prompt == "" {
		ex.Prompt = fmt.Sprintf("Spell in %s: %s", t.TargetLanguage, t.SourcePhrase)
	}
	t.CharSelection = true
	ex.Translation = copyTranslation(t)
	return ex
}

// NewTileOrder builds a tile-ordering exercise.
func NewTileOrder(h Header, tiles, correctOrder []string) Exercise {
	ex := h.build(KindTileOrder, DefaultTileDifficulty)
	ex.Tiles = &Tiles{
		Tiles:        append([]string(nil), tiles...),
		CorrectOrder: append([]string(nil), correctOrder...),
	}
	return ex
}

func copyTranslation(t Translation) *Translation {
	t.Accepted = append([]string(nil), t.Accepted...)
	t.CharacterSet = append([]string(nil), t.CharacterSet...)
	return &t
}

// UsesCharacterSelection reports whether answers arrive as a pick-list of
// characters rather than free text.
func (e Exercise) UsesCharacterSelection() bool {
	switch e.Kind {
	case KindCharacterSelect:
		return true
	case KindTranslate:
		return e.Translation != nil && e.Translation.CharSelection
	}
	return false
}

// CorrectAnswer renders the expected answer for display.
func (e Exercise) CorrectAnswer() string {
	switch e.Kind {
	case KindMultipleChoice:
		if e.Choice != nil {
			return e.Choice.CorrectOption()
		}
	case KindTranslate, KindCharacterSelect:
		if e.Translation != nil {
			return e.Translation.Canonical()
		}
	case KindTileOrder:
		if e.Tiles != nil {
			return strings.Join(e.Tiles.CorrectOrder, " ")
		}
	}
	return ""
}

// Validate checks that the payload matches the kind.
func (e Exercise) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("exercise has empty id")
	}
	switch e.Kind {
	case KindMultipleChoice:
		if e.Choice == nil || len(e.Choice.Options) == 0 {
			return fmt.Errorf("exercise %s: multiple choice needs options", e.ID)
		}
		if e.Choice.CorrectIndex < 0 || e.Choice.CorrectIndex >= len(e.Choice.Options) {
			return fmt.Errorf("exercise %s: correct index %d out of range", e.ID, e.Choice.CorrectIndex)
		}
	case KindTranslate, KindCharacterSelect:
		if e.Translation == nil || len(e.Translation.Accepted) == 0 {
			return fmt.Errorf("exercise %s: needs at least one accepted answer", e.ID)
		}
	case KindTileOrder:
		if e.Tiles == nil || len(e.Tiles.CorrectOrder) == 0 {
			return fmt.Errorf("exercise %s: tile order needs a correct order", e.ID)
		}
	default:
		return fmt.Errorf("exercise %s: %w %q", e.ID, ErrUnknownKind, e.Kind)
	}
	return nil
}
