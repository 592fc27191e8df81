package exercise

import (
	"errors"
	"fmt"
)

// ErrDuplicateID is returned when an exercise id is added twice.
var ErrDuplicateID = errors.New("duplicate exercise id")

// ErrUnknownKind marks an exercise whose kind no grader understands.
var ErrUnknownKind = errors.New("unknown exercise kind")

// Ref is a stable handle to an exercise owned by a Catalog.
type Ref int

// Skill describes a group of exercises.
type Skill struct {
	ID       string
	Name     string
	Language string
}

// Catalog owns every loaded exercise for the life of the process.
// Exercises are never removed, so a Ref stays valid once issued.
type Catalog struct {
	exercises []Exercise
	byID      map[string]Ref
	bySkill   map[string][]Ref
	skills    []Skill
	skillIdx  map[string]int
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		byID:     make(map[string]Ref),
		bySkill:  make(map[string][]Ref),
		skillIdx: make(map[string]int),
	}
}

// AddSkill registers skill metadata. Re-adding an id updates name and language.
func (c *Catalog) AddSkill(s Skill) {
	if i, ok := c.skillIdx[s.ID]; ok {
		c.skills[i] = s
		return
	}
	c.skillIdx[s.ID] = len(c.skills)
	c.skills = append(c.skills, s)
}

// Add validates ex and stores it, returning its Ref. Exercises of an
// unknown kind are stored as-is; grading reports them when served.
func (c *Catalog) Add(ex Exercise) (Ref, error) {
	if err := ex.Validate(); err != nil && !errors.Is(err, ErrUnknownKind) {
		return -1, err
	}
	if _, ok := c.byID[ex.ID]; ok {
		return -1, fmt.Errorf("%w: %s", ErrDuplicateID, ex.ID)
	}
	if _, ok := c.skillIdx[ex.SkillID]; !ok {
		c.AddSkill(Skill{ID: ex.SkillID, Name: ex.SkillID})
	}

	ref := Ref(len(c.exercises))
	c.exercises = append(c.exercises, ex)
	c.byID[ex.ID] = ref
	c.bySkill[ex.SkillID] = append(c.bySkill[ex.SkillID], ref)
	return ref, nil
}

// Get returns the exercise for ref.
func (c *Catalog) Get(ref Ref) (Exercise, bool) {
	if ref < 0 || int(ref) >= len(c.exercises) {
		return Exercise{}, false
	}
	return c.exercises[ref], true
}

// Lookup returns the Ref for an exercise id.
func (c *Catalog) Lookup(id string) (Ref, bool) {
	ref, ok := c.byID[id]
	return ref, ok
}

// Len returns the number of exercises.
func (c *Catalog) Len() int {
	return len(c.exercises)
}

// ExercisesForSkill returns the refs for a skill in load order.
func (c *Catalog) ExercisesForSkill(skillID string) []Ref {
	refs := c.bySkill[skillID]
	out := make([]Ref, len(refs))
	copy(out, refs)
	return out
}

// AvailableSkills returns skill ids in registration order.
func (c *Catalog) AvailableSkills() []string {
	ids := make([]string, len(c.skills))
	for i, s := range c.skills {
		ids[i] = s.ID
	}
	return ids
}

// Skills returns skill metadata in registration order.
func (c *Catalog) Skills() []Skill {
	out := make([]Skill, len(c.skills))
	copy(out, c.skills)
	return out
}

// Skill returns metadata for one skill.
func (c *Catalog) Skill(id string) (Skill, bool) {
	i, ok := c.skillIdx[id]
	if !ok {
		return Skill{}, false
	}
	return c.skills[i], true
}

// SequenceForSkill returns a fresh sequence over the skill's exercises.
func (c *Catalog) SequenceForSkill(skillID string) *Sequence {
	return NewSequence(c, c.ExercisesForSkill(skillID))
}

// SequenceOf builds a sequence from exercise ids, skipping unknown ids.
func (c *Catalog) SequenceOf(ids []string) *Sequence {
	refs := make([]Ref, 0, len(ids))
	for _, id := range ids {
		if ref, ok := c.byID[id]; ok {
			refs = append(refs, ref)
		}
	}
	return NewSequence(c, refs)
}
