package exercise

import "math/rand/v2"

// Sequence is an ordered list of exercise refs with a forward-only cursor.
// The cursor never exceeds Len; once exhausted Next always fails.
type Sequence struct {
	catalog *Catalog
	refs    []Ref
	pos     int
}

// NewSequence creates a sequence over refs in catalog.
func NewSequence(catalog *Catalog, refs []Ref) *Sequence {
	return &Sequence{
		catalog: catalog,
		refs:    append([]Ref(nil), refs...),
	}
}

// Len returns the number of exercises in the sequence.
func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.refs)
}

// Position returns how many exercises have been taken from the sequence.
func (s *Sequence) Position() int {
	if s == nil {
		return 0
	}
	return s.pos
}

// HasNext reports whether another exercise can be taken.
func (s *Sequence) HasNext() bool {
	return s != nil && s.pos < len(s.refs)
}

// Next returns the ref at the cursor and advances it.
func (s *Sequence) Next() (Ref, bool) {
	if !s.HasNext() {
		return -1, false
	}
	ref := s.refs[s.pos]
	s.pos++
	return ref, true
}

// Exercise resolves ref against the sequence's catalog.
func (s *Sequence) Exercise(ref Ref) (Exercise, bool) {
	if s == nil || s.catalog == nil {
		return Exercise{}, false
	}
	return s.catalog.Get(ref)
}

// Catalog returns the catalog the sequence's refs point into.
func (s *Sequence) Catalog() *Catalog {
	if s == nil {
		return nil
	}
	return s.catalog
}

// Refs returns a copy of the underlying refs.
func (s *Sequence) Refs() []Ref {
	if s == nil {
		return nil
	}
	return append([]Ref(nil), s.refs...)
}

// Shuffled returns a new, unstarted sequence with refs permuted by rng.
func (s *Sequence) Shuffled(rng *rand.Rand) *Sequence {
	refs := s.Refs()
	rng.Shuffle(len(refs), func(i, j int) { refs[i], refs[j] = refs[j], refs[i] })
	return NewSequence(s.catalog, refs)
}

// Limit returns a new, unstarted sequence with at most n refs. n <= 0 keeps all.
func (s *Sequence) Limit(n int) *Sequence {
	refs := s.Refs()
	if n > 0 && n < len(refs) {
		refs = refs[:n]
	}
	return NewSequence(s.catalog, refs)
}

// Prepend returns a new, unstarted sequence with extra refs first,
// dropping later duplicates.
func (s *Sequence) Prepend(extra []Ref) *Sequence {
	seen := make(map[Ref]bool, len(extra)+s.Len())
	var refs []Ref
	for _, r := range append(append([]Ref(nil), extra...), s.Refs()...) {
		if seen[r] {
			continue
		}
		seen[r] = true
		refs = append(refs, r)
	}
	return NewSequence(s.catalog, refs)
}
