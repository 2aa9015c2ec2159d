package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// advisorySessionSets is the soft ceiling on total sets per session. Going
// past it yields an advisory, never an error: advanced programs may exceed it.
const advisorySessionSets = 30

// WorkoutSession is a single training session inside a program: an ordered
// list of WorkoutExercise entries. The session owns its entries; it only
// holds IDs of the exercises themselves, so volume math takes the
// contribution data as an argument instead of reaching into another
// aggregate.
type WorkoutSession struct {
	entity

	programID      uuid.UUID
	name           string
	dayNumber      int
	orderInProgram int
	exercises      []WorkoutExercise
}

// NewWorkoutSession validates and creates a session. Exercises may be empty;
// they are often added later through the program editor.
func NewWorkoutSession(programID uuid.UUID, name string, dayNumber, orderInProgram int, exercises []WorkoutExercise) (*WorkoutSession, error) {
	s := &WorkoutSession{
		entity:         newEntity(),
		programID:      programID,
		name:           strings.TrimSpace(name),
		dayNumber:      dayNumber,
		orderInProgram: orderInProgram,
		exercises:      append([]WorkoutExercise(nil), exercises...),
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// ReconstructWorkoutSession rebuilds a session from persisted state.
func ReconstructWorkoutSession(
	id uuid.UUID,
	programID uuid.UUID,
	name string,
	dayNumber, orderInProgram int,
	exercises []WorkoutExercise,
	createdAt, updatedAt time.Time,
) (*WorkoutSession, error) {
	s := &WorkoutSession{
		entity:         rehydratedEntity(id, createdAt, updatedAt),
		programID:      programID,
		name:           strings.TrimSpace(name),
		dayNumber:      dayNumber,
		orderInProgram: orderInProgram,
		exercises:      append([]WorkoutExercise(nil), exercises...),
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// ProgramID returns the owning program's ID.
func (s *WorkoutSession) ProgramID() uuid.UUID { return s.programID }

// Name returns the session name.
func (s *WorkoutSession) Name() string { return s.name }

// DayNumber returns the session's 1-indexed day in the program sequence.
func (s *WorkoutSession) DayNumber() int { return s.dayNumber }

// OrderInProgram returns the session's execution order within the program.
func (s *WorkoutSession) OrderInProgram() int { return s.orderInProgram }

// Exercises returns a copy of the session's exercise entries.
func (s *WorkoutSession) Exercises() []WorkoutExercise {
	return append([]WorkoutExercise(nil), s.exercises...)
}

// ExerciseCount returns the number of entries in the session.
func (s *WorkoutSession) ExerciseCount() int {
	return len(s.exercises)
}

// CalculateTotalSets sums sets across all entries.
func (s *WorkoutSession) CalculateTotalSets() int {
	total := 0
	for _, ex := range s.exercises {
		total += ex.Sets()
	}
	return total
}

// CalculateMuscleVolume accumulates per-muscle volume across the session.
// The caller supplies each exercise's contribution map, keyed by exercise
// ID; an entry whose exercise is missing from the map contributes nothing.
// That is deliberate: whether an exercise must exist is the repository's
// concern, not the session's.
func (s *WorkoutSession) CalculateMuscleVolume(exerciseContributions map[uuid.UUID]map[MuscleGroup]float64) map[MuscleGroup]float64 {
	volume := make(map[MuscleGroup]float64)
	for _, ex := range s.exercises {
		for muscle, contribution := range exerciseContributions[ex.ExerciseID()] {
			volume[muscle] += float64(ex.Sets()) * contribution
		}
	}
	return volume
}

// ExercisesOrdered returns the entries sorted by order_in_session ascending.
func (s *WorkoutSession) ExercisesOrdered() []WorkoutExercise {
	out := s.Exercises()
	sort.Slice(out, func(i, j int) bool {
		return out[i].OrderInSession() < out[j].OrderInSession()
	})
	return out
}

// HasExercise reports whether the session references the given exercise.
func (s *WorkoutSession) HasExercise(exerciseID uuid.UUID) bool {
	for _, ex := range s.exercises {
		if ex.ExerciseID() == exerciseID {
			return true
		}
	}
	return false
}

// ExerciseByID returns the entry referencing the given exercise, if any.
func (s *WorkoutSession) ExerciseByID(exerciseID uuid.UUID) (WorkoutExercise, bool) {
	for _, ex := range s.exercises {
		if ex.ExerciseID() == exerciseID {
			return ex, true
		}
	}
	return WorkoutExercise{}, false
}

// AddExercise appends an entry and re-validates. An exercise may appear in
// a session only once.
func (s *WorkoutSession) AddExercise(exercise WorkoutExercise) error {
	if s.HasExercise(exercise.ExerciseID()) {
		return newValidationError("exercise %s already exists in session", exercise.ExerciseID())
	}
	candidate := append(s.Exercises(), exercise)
	if err := s.validateExercises(candidate); err != nil {
		return err
	}
	s.exercises = candidate
	s.touch()
	return nil
}

// RemoveExercise drops the entry referencing the given exercise.
func (s *WorkoutSession) RemoveExercise(exerciseID uuid.UUID) error {
	if !s.HasExercise(exerciseID) {
		return newValidationError("exercise %s not found in session", exerciseID)
	}
	kept := make([]WorkoutExercise, 0, len(s.exercises)-1)
	for _, ex := range s.exercises {
		if ex.ExerciseID() != exerciseID {
			kept = append(kept, ex)
		}
	}
	s.exercises = kept
	s.touch()
	return nil
}

// ReorderExercises rebuilds the entries in the supplied ID order with fresh
// sequential order_in_session values. The IDs must match the current
// members exactly.
func (s *WorkoutSession) ReorderExercises(exerciseOrder []uuid.UUID) error {
	if len(exerciseOrder) != len(s.exercises) {
		return newValidationError("exercise order must contain all %d exercises, got %d", len(s.exercises), len(exerciseOrder))
	}
	byID := make(map[uuid.UUID]WorkoutExercise, len(s.exercises))
	for _, ex := range s.exercises {
		byID[ex.ExerciseID()] = ex
	}
	reordered := make([]WorkoutExercise, 0, len(exerciseOrder))
	seen := make(map[uuid.UUID]bool, len(exerciseOrder))
	for i, id := range exerciseOrder {
		ex, ok := byID[id]
		if !ok || seen[id] {
			return newValidationError("exercise order must contain exactly the session's exercises")
		}
		seen[id] = true
		reordered = append(reordered, ex.withOrder(i+1))
	}
	s.exercises = reordered
	s.touch()
	return nil
}

// UpdateExercises replaces the whole entry list, re-validating first.
func (s *WorkoutSession) UpdateExercises(exercises []WorkoutExercise) error {
	candidate := append([]WorkoutExercise(nil), exercises...)
	if err := s.validateExercises(candidate); err != nil {
		return err
	}
	s.exercises = candidate
	s.touch()
	return nil
}

// SessionUpdate carries optional new values for UpdateDetails.
type SessionUpdate struct {
	Name           *string
	DayNumber      *int
	OrderInProgram *int
}

// UpdateDetails applies the non-nil fields, re-validating before committing.
func (s *WorkoutSession) UpdateDetails(update SessionUpdate) error {
	candidate := *s
	if update.Name != nil {
		candidate.name = strings.TrimSpace(*update.Name)
	}
	if update.DayNumber != nil {
		candidate.dayNumber = *update.DayNumber
	}
	if update.OrderInProgram != nil {
		candidate.orderInProgram = *update.OrderInProgram
	}
	if err := candidate.validate(); err != nil {
		return err
	}
	*s = candidate
	s.touch()
	return nil
}

// Advisories returns soft warnings about the session. These never block a
// mutation; callers decide whether to show or log them.
func (s *WorkoutSession) Advisories() []string {
	var out []string
	if total := s.CalculateTotalSets(); total > advisorySessionSets {
		out = append(out, fmt.Sprintf(
			"session %q has %d total sets, which is quite high; consider splitting into multiple sessions",
			s.name, total))
	}
	return out
}

// Validate re-runs the full session validation. Idempotent.
func (s *WorkoutSession) Validate() error {
	return s.validate()
}

func (s *WorkoutSession) validate() error {
	if s.name == "" {
		return newValidationError("session name cannot be empty")
	}
	if s.dayNumber < 1 {
		return newValidationError("day_number must be at least 1, got %d", s.dayNumber)
	}
	if s.orderInProgram < 1 {
		return newValidationError("order_in_program must be at least 1, got %d", s.orderInProgram)
	}
	return s.validateExercises(s.exercises)
}

func (s *WorkoutSession) validateExercises(exercises []WorkoutExercise) error {
	orders := make(map[int]bool, len(exercises))
	ids := make(map[uuid.UUID]bool, len(exercises))
	for _, ex := range exercises {
		if orders[ex.OrderInSession()] {
			return newValidationError("exercise order_in_session values must be unique")
		}
		orders[ex.OrderInSession()] = true
		if ids[ex.ExerciseID()] {
			return newValidationError("session cannot contain duplicate exercises")
		}
		ids[ex.ExerciseID()] = true
	}
	return nil
}
