package progress

import (
	"sort"
	"time"

	"cloud.google.com/go/civil"
)

// Profile defaults.
const (
	DefaultUsername = "Player"
	DefaultLanguage = "Nepali"
)

// Clock returns the current time. Date logic only looks at the calendar day.
type Clock func() time.Time

// Profile is the durable learner state: XP, day streak and per-skill progress.
type Profile struct {
	Username         string
	SelectedLanguage string
	CurrentXP        int
	Streak           int

	// LastActivityDate is the zero Date until the first recorded activity.
	LastActivityDate civil.Date

	skills map[string]*SkillProgress

	clock     Clock
	dayOffset int
}

// Option configures a Profile.
type Option func(*Profile)

// WithClock overrides the clock used for "today".
func WithClock(c Clock) Option {
	return func(p *Profile) {
		if c != nil {
			p.clock = c
		}
	}
}

// NewProfile creates a profile with default name and language.
func NewProfile(opts ...Option) *Profile {
	p := &Profile{
		Username:         DefaultUsername,
		SelectedLanguage: DefaultLanguage,
		skills:           make(map[string]*SkillProgress),
		clock:            time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Today returns the current calendar date, including any simulated offset.
func (p *Profile) Today() civil.Date {
	return civil.DateOf(p.clock()).AddDays(p.dayOffset)
}

// AdvanceSimulatedDate shifts "today" forward by days. The CLI exposes it as
// --simulate-days.
func (p *Profile) AdvanceSimulatedDate(days int) {
	p.dayOffset += days
}

// ResetSimulatedDate removes any simulated offset.
func (p *Profile) ResetSimulatedDate() {
	p.dayOffset = 0
}

// AddXP adds a positive amount. Zero and negative amounts are ignored.
func (p *Profile) AddXP(amount int) {
	if amount <= 0 {
		return
	}
	p.CurrentXP += amount
}

// hasActivity reports whether any activity has been recorded.
func (p *Profile) hasActivity() bool {
	return p.LastActivityDate.IsValid()
}

// UpdateStreak records activity today. Same day leaves the streak alone,
// the next day extends it, a longer gap or first activity restarts it at 1.
func (p *Profile) UpdateStreak() {
	today := p.Today()
	if !p.hasActivity() {
		p.Streak = 1
	} else {
		switch gap := today.DaysSince(p.LastActivityDate); {
		case gap == 0:
		case gap == 1:
			p.Streak++
		default:
			p.Streak = 1
		}
	}
	p.LastActivityDate = today
}

// CheckStreakValidity zeroes a lapsed streak without recording activity.
func (p *Profile) CheckStreakValidity() {
	if !p.hasActivity() {
		return
	}
	if p.Today().DaysSince(p.LastActivityDate) > 1 {
		p.Streak = 0
	}
}

// Skill returns the progress for id, creating it on first use.
func (p *Profile) Skill(id string) *SkillProgress {
	sp, ok := p.skills[id]
	if !ok {
		sp = &SkillProgress{}
		p.skills[id] = sp
	}
	return sp
}

// HasSkill reports whether progress exists for id.
func (p *Profile) HasSkill(id string) bool {
	_, ok := p.skills[id]
	return ok
}

// SkillIDs returns the ids of all tracked skills, sorted.
func (p *Profile) SkillIDs() []string {
	ids := make([]string, 0, len(p.skills))
	for id := range p.skills {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
