package exercise

import (
	"math/rand/v2"
	"unicode"
)

// DefaultDistractors is how many foreign characters are mixed into a bank.
const DefaultDistractors = 3

// CharacterBank builds the pick-list shown for character-selection input:
// the unique non-space characters of answer plus up to distractors extra
// characters drawn from pool, shuffled.
func CharacterBank(answer string, pool []string, distractors int, rng *rand.Rand) []string {
	seen := make(map[string]bool)
	var bank []string
	for _, r := range answer {
		if unicode.IsSpace(r) {
			continue
		}
		ch := string(r)
		if seen[ch] {
			continue
		}
		seen[ch] = true
		bank = append(bank, ch)
	}

	var candidates []string
	for _, ch := range pool {
		if ch == "" || seen[ch] {
			continue
		}
		seen[ch] = true
		candidates = append(candidates, ch)
	}
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if distractors > len(candidates) {
		distractors = len(candidates)
	}
	bank = append(bank, candidates[:max(distractors, 0)]...)

	rng.Shuffle(len(bank), func(i, j int) { bank[i], bank[j] = bank[j], bank[i] })
	return bank
}
