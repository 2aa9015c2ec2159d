package domain

import (
	"strings"

	"github.com/google/uuid"
)

// maxWorkoutExerciseNotes caps the free-form notes on a session entry.
const maxWorkoutExerciseNotes = 500

// WorkoutExercise is one exercise occurrence inside a workout session: a
// non-owning reference to an Exercise plus sets and position. It is an
// immutable value object; sessions replace entries rather than mutate them.
type WorkoutExercise struct {
	exerciseID     uuid.UUID
	sets           int
	orderInSession int
	notes string
}

// NewWorkoutExercise validates and builds a session entry. Sets must be
// 1-10 and the order 1-indexed. Notes are trimmed, capped at 500 chars,
// and blank notes collapse to empty.
func NewWorkoutExercise(exerciseID uuid.UUID, sets, orderInSession int, notes string) (WorkoutExercise, error) {
	if exerciseID == uuid.Nil {
		return WorkoutExercise{}, newValidationError("exercise_id is required")
	}
	if sets < 1 || sets > 10 {
		return WorkoutExercise{}, newValidationError("sets must be between 1 and 10, got %d", sets)
	}
	if orderInSession < 1 {
		return WorkoutExercise{}, newValidationError("order_in_session must be at least 1, got %d", orderInSession)
	}
	notes = strings.TrimSpace(notes)
	if len(notes) > maxWorkoutExerciseNotes {
		return WorkoutExercise{}, newValidationError("notes must not exceed %d characters", maxWorkoutExerciseNotes)
	}
	return WorkoutExercise{
		exerciseID:     exerciseID,
		sets:           sets,
		orderInSession: orderInSession,
		notes:          notes,
	}, nil
}

// ExerciseID returns the referenced exercise's ID. The Exercise itself
// lives in its own aggregate and is never embedded here.
func (w WorkoutExercise) ExerciseID() uuid.UUID {
	return w.exerciseID
}

// Sets returns the number of sets to perform.
func (w WorkoutExercise) Sets() int {
	return w.sets
}

// OrderInSession returns the 1-indexed position within the session.
func (w WorkoutExercise) OrderInSession() int {
	return w.orderInSession
}

// Notes returns the optional notes, empty when none were given.
func (w WorkoutExercise) Notes() string {
	return w.notes
}

// withOrder returns a copy at a new position. Used by session reordering;
// the value itself stays immutable.
func (w WorkoutExercise) withOrder(order int) WorkoutExercise {
	w.orderInSession = order
	return w
}
