package session

import (
	"math/rand/v2"

	"github.com/abhisek/bhasha/internal/exercise"
	"github.com/abhisek/bhasha/internal/spacedrep"
)

// ReviewSkillID is the pseudo-skill used for cross-skill review lessons.
const ReviewSkillID = "review"

// PlanOptions controls how a lesson sequence is assembled.
type PlanOptions struct {
	// MaxExercises caps the lesson length; 0 keeps every exercise.
	MaxExercises int
	// Shuffle randomizes the order of the skill's exercises.
	Shuffle bool
	// ReviewFirst moves the skill's due reviews to the front.
	ReviewFirst bool
	// Rand drives shuffling. A nil Rand uses a randomly seeded source.
	Rand *rand.Rand
}

// PlanLesson builds the exercise sequence for one skill.
func PlanLesson(catalog *exercise.Catalog, skillID string, srs *spacedrep.Scheduler, opts PlanOptions) *exercise.Sequence {
	seq := catalog.SequenceForSkill(skillID)
	if opts.Shuffle {
		rng := opts.Rand
		if rng == nil {
			rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		}
		seq = seq.Shuffled(rng)
	}
	if opts.ReviewFirst && srs != nil {
		var due []exercise.Ref
		for _, id := range srs.ReviewQueue() {
			ref, ok := catalog.Lookup(id)
			if !ok {
				continue
			}
			if ex, _ := catalog.Get(ref); ex.SkillID == skillID {
				due = append(due, ref)
			}
		}
		seq = seq.Prepend(due)
	}
	return seq.Limit(opts.MaxExercises)
}

// PlanReview builds a sequence of every due exercise across all skills.
// Ids missing from the catalog are skipped.
func PlanReview(catalog *exercise.Catalog, srs *spacedrep.Scheduler, limit int) *exercise.Sequence {
	return catalog.SequenceOf(srs.ReviewQueue()).Limit(limit)
}
