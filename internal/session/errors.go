package session

import "errors"

// Controller misuse and lifecycle errors. None of them change controller state.
var (
	ErrEmptySequence    = errors.New("cannot start lesson with empty exercise sequence")
	ErrNoMoreExercises  = errors.New("no more exercises")
	ErrNoActiveExercise = errors.New("no active exercise")
	ErrUngradable       = errors.New("exercise cannot be graded")
)
