package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/bhasha/internal/exercise"
	"github.com/abhisek/bhasha/internal/grading"
)

const validJSON = `{
  "version": "v1.2.0",
  "skills": [{
    "id": "basics",
    "name": "Basics",
    "language": "Nepali",
    "exercises": [
      {"type": "MCQ", "id": "m1", "prompt": "Water?", "options": ["khana", "pani"], "correctIndex": 1, "difficulty": 2},
      {"type": "Translate", "id": "t1", "englishPhrase": "water", "correctAnswers": ["pani"], "targetLanguage": "Nepali", "audioFile": "pani.mp3"},
      {"type": "TileOrder", "id": "o1", "tiles": ["b", "a"], "correctOrder": ["a", "b"], "skillId": "other"}
    ]
  }]
}`

func TestParseJSON(t *testing.T) {
	pack, err := Parse([]byte(validJSON), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "v1.2.0", pack.Version)
	require.Len(t, pack.Skills, 1)
	assert.Len(t, pack.Skills[0].Exercises, 3)

	cat, err := pack.Catalog()
	require.NoError(t, err)
	assert.Equal(t, 3, cat.Len())

	ref, ok := cat.Lookup("m1")
	require.True(t, ok)
	m1, _ := cat.Get(ref)
	assert.Equal(t, exercise.KindMultipleChoice, m1.Kind)
	assert.Equal(t, 2, m1.Difficulty)
	assert.Equal(t, "basics", m1.SkillID)

	ref, _ = cat.Lookup("t1")
	t1, _ := cat.Get(ref)
	assert.Equal(t, "pani.mp3", t1.AudioRef)
	assert.Equal(t, "Translate to Nepali: water", t1.Prompt)

	ref, _ = cat.Lookup("o1")
	o1, _ := cat.Get(ref)
	assert.Equal(t, "other", o1.SkillID, "explicit skillId wins")

	skill, ok := cat.Skill("basics")
	require.True(t, ok)
	assert.Equal(t, "Basics", skill.Name)
	assert.Equal(t, "Nepali", skill.Language)
}

func TestParseYAMLMatchesJSON(t *testing.T) {
	src := `
version: v1.0.0
skills:
  - id: basics
    exercises:
      - type: CharacterSelect
        id: c1
        prompt: Spell mother
        correctAnswers: [आमा]
        characterSet: [आ, म, ा, क]
`
	pack, err := Parse([]byte(src), FormatYAML)
	require.NoError(t, err)
	cat, err := pack.Catalog()
	require.NoError(t, err)

	ref, ok := cat.Lookup("c1")
	require.True(t, ok)
	ex, _ := cat.Get(ref)
	assert.True(t, ex.UsesCharacterSelection())

	strategy, err := grading.Select(ex)
	require.NoError(t, err)
	assert.Equal(t, grading.StrategyCharacterSelect, strategy)

	skill, _ := cat.Skill("basics")
	assert.Equal(t, "basics", skill.Name, "name defaults to id")
}

func TestParseRejectsInvalidPacks(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"not json", `{`},
		{"missing version", `{"skills": [{"id": "s", "exercises": []}]}`},
		{"no skills", `{"version": "v1.0.0", "skills": []}`},
		{"unknown type", `{"version": "v1.0.0", "skills": [{"id": "s", "exercises": [{"type": "Audio", "id": "a"}]}]}`},
		{"mcq without options", `{"version": "v1.0.0", "skills": [{"id": "s", "exercises": [{"type": "MCQ", "id": "m", "prompt": "?", "correctIndex": 0}]}]}`},
		{"difficulty too high", `{"version": "v1.0.0", "skills": [{"id": "s", "exercises": [{"type": "Translate", "id": "t", "englishPhrase": "x", "correctAnswers": ["y"], "difficulty": 9}]}]}`},
		{"old version", `{"version": "v0.9.0", "skills": [{"id": "s", "exercises": []}]}`},
		{"next major", `{"version": "v2.0.0", "skills": [{"id": "s", "exercises": []}]}`},
		{"bad semver", `{"version": "v1.x", "skills": [{"id": "s", "exercises": []}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), FormatJSON)
			assert.ErrorIs(t, err, ErrInvalidPack)
		})
	}
}

func TestCatalogRejectsInconsistentExercises(t *testing.T) {
	dup := `{"version": "v1.0.0", "skills": [{"id": "s", "exercises": [
		{"type": "Translate", "id": "t", "englishPhrase": "x", "correctAnswers": ["y"]},
		{"type": "Translate", "id": "t", "englishPhrase": "x", "correctAnswers": ["y"]}]}]}`
	pack, err := Parse([]byte(dup), FormatJSON)
	require.NoError(t, err)
	_, err = pack.Catalog()
	assert.ErrorIs(t, err, ErrInvalidPack)
	assert.ErrorContains(t, err, "duplicate")

	outOfRange := `{"version": "v1.0.0", "skills": [{"id": "s", "exercises": [
		{"type": "MCQ", "id": "m", "prompt": "?", "options": ["a", "b"], "correctIndex": 5}]}]}`
	pack, err = Parse([]byte(outOfRange), FormatJSON)
	require.NoError(t, err)
	_, err = pack.Catalog()
	assert.ErrorIs(t, err, ErrInvalidPack)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pack.json")
	require.NoError(t, os.WriteFile(path, []byte(validJSON), 0o644))

	cat, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cat.Len())

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestSamplePack(t *testing.T) {
	cat, err := Load("", nil)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(cat.Skills()), 3)
	for _, s := range cat.AvailableSkills() {
		for _, ref := range cat.ExercisesForSkill(s) {
			ex, _ := cat.Get(ref)
			_, err := grading.Select(ex)
			assert.NoError(t, err, "exercise %s", ex.ID)
		}
	}
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatOf("a/b.YML"))
	assert.Equal(t, FormatYAML, FormatOf("pack.yaml"))
	assert.Equal(t, FormatJSON, FormatOf("pack.json"))
	assert.Equal(t, FormatJSON, FormatOf("pack"))
}
