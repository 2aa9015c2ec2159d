package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Exercise is a resistance-training exercise: one equipment type and a
// mapping of muscle groups to fractional volume contributions.
//
// Exercises are either global (admin-created, available to every
// organization) or owned by a single organization. The contribution map
// must always sum to at least 1.0 and include at least one primary target,
// so every exercise credits a full set somewhere.
type Exercise struct {
	entity

	name                string
	equipment           Equipment
	muscleContributions map[MuscleGroup]VolumeContribution
	contributionOrder   []MuscleGroup // insertion order, kept for deterministic iteration
	description         string
	imageURL            string
	isGlobal            bool
	createdByUserID     *uuid.UUID
	organizationID      *uuid.UUID
}

// NewExercise validates and creates an exercise. The contributions map is
// copied; iteration order follows AllMuscleGroups order.
func NewExercise(
	name string,
	equipment Equipment,
	muscleContributions map[MuscleGroup]VolumeContribution,
	description string,
	imageURL string,
	isGlobal bool,
	createdByUserID, organizationID *uuid.UUID,
) (*Exercise, error) {
	ex := &Exercise{
		entity:          newEntity(),
		name:            strings.TrimSpace(name),
		equipment:       equipment,
		description:     strings.TrimSpace(description),
		imageURL:        imageURL,
		isGlobal:        isGlobal,
		createdByUserID: createdByUserID,
		organizationID:  organizationID,
	}
	ex.setContributions(muscleContributions)
	if err := ex.validate(); err != nil {
		return nil, err
	}
	return ex, nil
}

// ReconstructExercise rebuilds an exercise from persisted state. The same
// invariants are enforced, so a corrupted row cannot become a live entity.
func ReconstructExercise(
	id uuid.UUID,
	name string,
	equipment Equipment,
	muscleContributions map[MuscleGroup]VolumeContribution,
	description string,
	imageURL string,
	isGlobal bool,
	createdByUserID, organizationID *uuid.UUID,
	createdAt, updatedAt time.Time,
) (*Exercise, error) {
	ex := &Exercise{
		entity:          rehydratedEntity(id, createdAt, updatedAt),
		name:            strings.TrimSpace(name),
		equipment:       equipment,
		description:     strings.TrimSpace(description),
		imageURL:        imageURL,
		isGlobal:        isGlobal,
		createdByUserID: createdByUserID,
		organizationID:  organizationID,
	}
	ex.setContributions(muscleContributions)
	if err := ex.validate(); err != nil {
		return nil, err
	}
	return ex, nil
}

func (e *Exercise) setContributions(contributions map[MuscleGroup]VolumeContribution) {
	e.muscleContributions = make(map[MuscleGroup]VolumeContribution, len(contributions))
	e.contributionOrder = nil
	for _, m := range allMuscleGroups {
		if c, ok := contributions[m]; ok {
			e.muscleContributions[m] = c
			e.contributionOrder = append(e.contributionOrder, m)
		}
	}
	// Preserve unknown keys so validation can reject them by name.
	for m, c := range contributions {
		if _, ok := e.muscleContributions[m]; !ok {
			e.muscleContributions[m] = c
			e.contributionOrder = append(e.contributionOrder, m)
		}
	}
}

// Name returns the exercise name.
func (e *Exercise) Name() string { return e.name }

// Equipment returns the equipment type.
func (e *Exercise) Equipment() Equipment { return e.equipment }

// Description returns the free-form description.
func (e *Exercise) Description() string { return e.description }

// ImageURL returns the demonstration image URL, empty if unset.
func (e *Exercise) ImageURL() string { return e.imageURL }

// IsGlobal reports whether the exercise is available to every organization.
func (e *Exercise) IsGlobal() bool { return e.isGlobal }

// CreatedByUserID returns the creating user, nil for global exercises.
func (e *Exercise) CreatedByUserID() *uuid.UUID { return e.createdByUserID }

// OrganizationID returns the owning organization, nil for global exercises.
func (e *Exercise) OrganizationID() *uuid.UUID { return e.organizationID }

// MuscleContributions returns a copy of the contribution map.
func (e *Exercise) MuscleContributions() map[MuscleGroup]VolumeContribution {
	out := make(map[MuscleGroup]VolumeContribution, len(e.muscleContributions))
	for m, c := range e.muscleContributions {
		out[m] = c
	}
	return out
}

// CalculateTotalVolume returns the effective volume each targeted muscle
// receives from the given number of sets.
func (e *Exercise) CalculateTotalVolume(sets int) (map[MuscleGroup]float64, error) {
	if sets < 0 {
		return nil, newValidationError("sets cannot be negative, got %d", sets)
	}
	out := make(map[MuscleGroup]float64, len(e.muscleContributions))
	for m, c := range e.muscleContributions {
		out[m] = c.Volume(sets)
	}
	return out, nil
}

// PrimaryMuscles returns the muscles at full (1.0) contribution, in
// insertion order.
func (e *Exercise) PrimaryMuscles() []MuscleGroup {
	var out []MuscleGroup
	for _, m := range e.contributionOrder {
		if e.muscleContributions[m] == ContributionPrimary {
			out = append(out, m)
		}
	}
	return out
}

// SecondaryMuscles returns the non-primary muscles ordered by contribution
// descending, insertion order breaking ties.
func (e *Exercise) SecondaryMuscles() []MuscleGroup {
	var out []MuscleGroup
	for _, m := range e.contributionOrder {
		if e.muscleContributions[m] != ContributionPrimary {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return e.muscleContributions[out[i]] > e.muscleContributions[out[j]]
	})
	return out
}

// AllTargetedMuscles returns every targeted muscle ordered by contribution
// descending, insertion order breaking ties.
func (e *Exercise) AllTargetedMuscles() []MuscleGroup {
	out := make([]MuscleGroup, len(e.contributionOrder))
	copy(out, e.contributionOrder)
	sort.SliceStable(out, func(i, j int) bool {
		return e.muscleContributions[out[i]] > e.muscleContributions[out[j]]
	})
	return out
}

// TotalContribution returns the sum of all contribution values.
func (e *Exercise) TotalContribution() float64 {
	var total float64
	for _, c := range e.muscleContributions {
		total += c.Value()
	}
	return total
}

// TargetsMuscle reports whether the exercise targets the muscle at or above
// the given threshold. Pass 0 to accept any contribution level.
func (e *Exercise) TargetsMuscle(muscle MuscleGroup, minContribution VolumeContribution) bool {
	c, ok := e.muscleContributions[muscle]
	if !ok {
		return false
	}
	return c >= minContribution
}

// IsCompound reports whether the exercise targets two or more muscles.
func (e *Exercise) IsCompound() bool {
	return len(e.muscleContributions) >= 2
}

// IsIsolation reports whether the exercise targets exactly one muscle.
func (e *Exercise) IsIsolation() bool {
	return len(e.muscleContributions) == 1
}

// ExerciseUpdate carries optional new values for UpdateDetails. Nil fields
// are left unchanged.
type ExerciseUpdate struct {
	Name        *string
	Description *string
	Equipment   *Equipment
	ImageURL    *string
}

// UpdateDetails applies the non-nil fields, re-validating the whole entity
// before committing. On error the exercise is unchanged.
func (e *Exercise) UpdateDetails(update ExerciseUpdate) error {
	candidate := *e
	if update.Name != nil {
		candidate.name = strings.TrimSpace(*update.Name)
	}
	if update.Description != nil {
		candidate.description = strings.TrimSpace(*update.Description)
	}
	if update.Equipment != nil {
		candidate.equipment = *update.Equipment
	}
	if update.ImageURL != nil {
		candidate.imageURL = *update.ImageURL
	}
	if err := candidate.validate(); err != nil {
		return err
	}
	*e = candidate
	e.touch()
	return nil
}

// UpdateMuscleContributions replaces the contribution map, re-validating
// before committing.
func (e *Exercise) UpdateMuscleContributions(contributions map[MuscleGroup]VolumeContribution) error {
	candidate := *e
	candidate.setContributions(contributions)
	if err := candidate.validate(); err != nil {
		return err
	}
	*e = candidate
	e.touch()
	return nil
}

// SetImageURL sets or clears the demonstration image URL.
func (e *Exercise) SetImageURL(url string) {
	e.imageURL = url
	e.touch()
}

// validate enforces every exercise invariant. It is re-run on each mutation.
func (e *Exercise) validate() error {
	if e.name == "" {
		return newValidationError("exercise name cannot be empty")
	}
	if !e.equipment.IsValid() {
		return newValidationError("unknown equipment type %q", string(e.equipment))
	}
	if len(e.muscleContributions) == 0 {
		return newValidationError("exercise must target at least one muscle group")
	}
	var total float64
	hasPrimary := false
	for m, c := range e.muscleContributions {
		if !m.IsValid() {
			return newValidationError("unknown muscle group %q", string(m))
		}
		if !c.IsValid() {
			return newValidationError("invalid contribution value %v for %s", c.Value(), m)
		}
		total += c.Value()
		if c == ContributionPrimary {
			hasPrimary = true
		}
	}
	if total < 1.0 {
		return newValidationError(
			"total muscle contribution (%v) must be >= 1.0; exercise needs at least one primary target", total)
	}
	if !hasPrimary {
		return newValidationError("exercise must have at least one muscle with primary (1.0) contribution")
	}
	if e.isGlobal {
		if e.organizationID != nil {
			return newValidationError("global exercises cannot belong to an organization")
		}
	} else if e.organizationID == nil {
		return newValidationError("non-global exercises must have an organization_id")
	}
	return nil
}
