package progress

import (
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
)

// ErrInvalidSnapshot is returned when a snapshot cannot be restored.
var ErrInvalidSnapshot = errors.New("invalid profile snapshot")

// Snapshot is the persisted form of a Profile.
type Snapshot struct {
	Username         string          `json:"username"`
	CurrentXP        int             `json:"currentXP"`
	Streak           int             `json:"streak"`
	SelectedLanguage string          `json:"selectedLanguage"`
	LastActivityDate string          `json:"lastActivityDate"`
	Skills           []SkillSnapshot `json:"skills"`
}

// SkillSnapshot is the persisted form of one SkillProgress.
type SkillSnapshot struct {
	SkillID            string `json:"skillId"`
	MasteryLevel       int    `json:"masteryLevel"`
	ExercisesCompleted int    `json:"exercisesCompleted"`
	TotalExercises     int    `json:"totalExercises"`
	CorrectAnswers     int    `json:"correctAnswers"`
	IncorrectAnswers   int    `json:"incorrectAnswers"`
}

// Snapshot exports the profile. Skills are ordered by id.
func (p *Profile) Snapshot() Snapshot {
	snap := Snapshot{
		Username:         p.Username,
		CurrentXP:        p.CurrentXP,
		Streak:           p.Streak,
		SelectedLanguage: p.SelectedLanguage,
		Skills:           make([]SkillSnapshot, 0, len(p.skills)),
	}
	if p.hasActivity() {
		snap.LastActivityDate = p.LastActivityDate.String()
	}
	for _, id := range p.SkillIDs() {
		sp := p.skills[id]
		snap.Skills = append(snap.Skills, SkillSnapshot{
			SkillID:            id,
			MasteryLevel:       sp.MasteryLevel,
			ExercisesCompleted: sp.ExercisesCompleted,
			TotalExercises:     sp.TotalExercises,
			CorrectAnswers:     sp.CorrectAnswers,
			IncorrectAnswers:   sp.IncorrectAnswers,
		})
	}
	return snap
}

// FromSnapshot rebuilds a profile. Empty name and language fall back to
// defaults; mastery is clamped into range.
func FromSnapshot(snap Snapshot, opts ...Option) (*Profile, error) {
	p := NewProfile(opts...)
	if snap.Username != "" {
		p.Username = snap.Username
	}
	if snap.SelectedLanguage != "" {
		p.SelectedLanguage = snap.SelectedLanguage
	}
	p.CurrentXP = max(snap.CurrentXP, 0)
	p.Streak = max(snap.Streak, 0)

	if snap.LastActivityDate != "" {
		d, err := civil.ParseDate(snap.LastActivityDate)
		if err != nil {
			return nil, fmt.Errorf("%w: last activity date %q: %v", ErrInvalidSnapshot, snap.LastActivityDate, err)
		}
		p.LastActivityDate = d
	}

	for _, s := range snap.Skills {
		if s.SkillID == "" {
			return nil, fmt.Errorf("%w: skill with empty id", ErrInvalidSnapshot)
		}
		p.skills[s.SkillID] = &SkillProgress{
			MasteryLevel:       clampMastery(s.MasteryLevel),
			ExercisesCompleted: s.ExercisesCompleted,
			TotalExercises:     s.TotalExercises,
			CorrectAnswers:     s.CorrectAnswers,
			IncorrectAnswers:   s.IncorrectAnswers,
		}
	}
	return p, nil
}
