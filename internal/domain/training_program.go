package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Weekly volume bands for hypertrophy, in effective sets per muscle.
// Outside the band is an advisory, not a validation error.
const (
	minWeeklySetsPerMuscle = 10.0
	maxWeeklySetsPerMuscle = 25.0
)

// ScheduledSession links a workout session to a concrete calendar date.
// DayOfWeek is set for weekly structures, CycleDay for cyclic ones.
type ScheduledSession struct {
	SessionID     uuid.UUID
	SessionName   string
	ScheduledDate time.Time
	DayOfWeek     *WeekDay
	CycleDay      *int
}

// TrainingProgram is the aggregate root of the training-volume model: a
// split type, a schedule structure, and the workout sessions it owns.
//
// Programs are either admin-authored templates (no owner, cloneable by any
// user) or user programs belonging to an organization. The structure config
// variant must always match the declared structure type.
type TrainingProgram struct {
	entity

	name            string
	description     string
	splitType       SplitType
	structureType   StructureType
	weekly          *WeeklyStructure
	cyclic          *CyclicStructure
	sessions        []*WorkoutSession
	isTemplate      bool
	createdByUserID *uuid.UUID
	organizationID  *uuid.UUID
	durationWeeks   *int
}

// ProgramConfig carries the constructor arguments for a training program.
// Exactly one of Weekly/Cyclic must be set, matching StructureType.
type ProgramConfig struct {
	Name            string
	Description     string
	SplitType       SplitType
	StructureType   StructureType
	Weekly          *WeeklyStructure
	Cyclic          *CyclicStructure
	Sessions        []*WorkoutSession
	IsTemplate      bool
	CreatedByUserID *uuid.UUID
	OrganizationID  *uuid.UUID
	DurationWeeks   *int
}

// NewTrainingProgram validates and creates a program.
func NewTrainingProgram(cfg ProgramConfig) (*TrainingProgram, error) {
	p := &TrainingProgram{
		entity:          newEntity(),
		name:            strings.TrimSpace(cfg.Name),
		description:     strings.TrimSpace(cfg.Description),
		splitType:       cfg.SplitType,
		structureType:   cfg.StructureType,
		weekly:          cfg.Weekly,
		cyclic:          cfg.Cyclic,
		sessions:        append([]*WorkoutSession(nil), cfg.Sessions...),
		isTemplate:      cfg.IsTemplate,
		createdByUserID: cfg.CreatedByUserID,
		organizationID:  cfg.OrganizationID,
		durationWeeks:   cfg.DurationWeeks,
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// ReconstructTrainingProgram rebuilds a program from persisted state,
// enforcing the same invariants as construction.
func ReconstructTrainingProgram(id uuid.UUID, cfg ProgramConfig, createdAt, updatedAt time.Time) (*TrainingProgram, error) {
	p, err := NewTrainingProgram(cfg)
	if err != nil {
		return nil, err
	}
	p.entity = rehydratedEntity(id, createdAt, updatedAt)
	return p, nil
}

// Name returns the program name.
func (p *TrainingProgram) Name() string { return p.name }

// Description returns the program description.
func (p *TrainingProgram) Description() string { return p.description }

// SplitType returns how muscles are divided across sessions.
func (p *TrainingProgram) SplitType() SplitType { return p.splitType }

// StructureType reports whether the program schedules weekly or cyclically.
func (p *TrainingProgram) StructureType() StructureType { return p.structureType }

// WeeklyStructure returns the weekly config, nil for cyclic programs.
func (p *TrainingProgram) WeeklyStructure() *WeeklyStructure { return p.weekly }

// CyclicStructure returns the cyclic config, nil for weekly programs.
func (p *TrainingProgram) CyclicStructure() *CyclicStructure { return p.cyclic }

// Sessions returns a copy of the session list.
func (p *TrainingProgram) Sessions() []*WorkoutSession {
	return append([]*WorkoutSession(nil), p.sessions...)
}

// SessionCount returns the number of sessions in the program.
func (p *TrainingProgram) SessionCount() int { return len(p.sessions) }

// IsTemplate reports whether the program is an admin-authored template.
func (p *TrainingProgram) IsTemplate() bool { return p.isTemplate }

// CreatedByUserID returns the creating user, nil for templates.
func (p *TrainingProgram) CreatedByUserID() *uuid.UUID { return p.createdByUserID }

// OrganizationID returns the owning organization, nil for templates.
func (p *TrainingProgram) OrganizationID() *uuid.UUID { return p.organizationID }

// DurationWeeks returns the recommended duration, nil when unset.
func (p *TrainingProgram) DurationWeeks() *int { return p.durationWeeks }

// GenerateSchedule maps calendar slots produced by the structure onto the
// program's sessions, cycling through them in order_in_program order. For
// weekly structures every slot is a training day; for cyclic structures
// rest days are skipped and do not consume a session.
func (p *TrainingProgram) GenerateSchedule(start time.Time, weeks int) []ScheduledSession {
	if weeks <= 0 {
		if p.durationWeeks != nil {
			weeks = *p.durationWeeks
		} else {
			weeks = 4
		}
	}
	cycle := p.SessionsOrdered()
	var out []ScheduledSession

	switch p.structureType {
	case StructureWeekly:
		for i, entry := range p.weekly.GenerateSchedule(start, weeks) {
			session := cycle[i%len(cycle)]
			day := entry.Day
			out = append(out, ScheduledSession{
				SessionID:     session.ID(),
				SessionName:   session.Name(),
				ScheduledDate: entry.Date,
				DayOfWeek:     &day,
			})
		}
	case StructureCyclic:
		trainingIdx := 0
		for _, entry := range p.cyclic.GenerateSchedule(start, weeks) {
			if !entry.IsTraining {
				continue
			}
			session := cycle[trainingIdx%len(cycle)]
			cycleDay := entry.CycleDay
			out = append(out, ScheduledSession{
				SessionID:     session.ID(),
				SessionName:   session.Name(),
				ScheduledDate: entry.Date,
				CycleDay:      &cycleDay,
			})
			trainingIdx++
		}
	}
	return out
}

// CloneForUser produces a user-owned copy of the program: fresh identity,
// fresh session identities, same structure and exercise content. The
// method itself does not require the source to be a template; the service
// layer enforces that before calling.
func (p *TrainingProgram) CloneForUser(userID, organizationID uuid.UUID, newName string) (*TrainingProgram, error) {
	name := strings.TrimSpace(newName)
	if name == "" {
		name = "My " + p.name
	}

	clone := &TrainingProgram{
		entity:          newEntity(),
		name:            name,
		description:     p.description,
		splitType:       p.splitType,
		structureType:   p.structureType,
		weekly:          p.weekly,
		cyclic:          p.cyclic,
		isTemplate:      false,
		createdByUserID: &userID,
		organizationID:  &organizationID,
		durationWeeks:   p.durationWeeks,
	}

	clone.sessions = make([]*WorkoutSession, 0, len(p.sessions))
	for _, session := range p.sessions {
		// Exercises are value objects: reused by value, no re-validation.
		copied, err := NewWorkoutSession(
			clone.ID(),
			session.Name(),
			session.DayNumber(),
			session.OrderInProgram(),
			session.Exercises(),
		)
		if err != nil {
			return nil, err
		}
		clone.sessions = append(clone.sessions, copied)
	}

	if err := clone.validate(); err != nil {
		return nil, err
	}
	return clone, nil
}

// TotalWeeklyVolume sums per-muscle volume across all sessions and
// normalizes cyclic programs to a weekly rate. Weekly programs already
// express one week of training, so their totals pass through unscaled.
func (p *TrainingProgram) TotalWeeklyVolume(exerciseContributions map[uuid.UUID]map[MuscleGroup]float64) map[MuscleGroup]float64 {
	total := make(map[MuscleGroup]float64)
	for _, session := range p.sessions {
		for muscle, volume := range session.CalculateMuscleVolume(exerciseContributions) {
			total[muscle] += volume
		}
	}
	if p.structureType == StructureCyclic && p.cyclic != nil {
		weeksPerCycle := float64(p.cyclic.CycleLength()) / 7.0
		for muscle := range total {
			total[muscle] /= weeksPerCycle
		}
	}
	return total
}

// VolumeWarnings flags muscles whose weekly volume falls outside the
// 10-25 sets/week hypertrophy band. Advisory strings, never errors.
func (p *TrainingProgram) VolumeWarnings(exerciseContributions map[uuid.UUID]map[MuscleGroup]float64) []string {
	weekly := p.TotalWeeklyVolume(exerciseContributions)
	var warnings []string
	for _, muscle := range allMuscleGroups {
		volume, ok := weekly[muscle]
		if !ok {
			continue
		}
		if volume < minWeeklySetsPerMuscle {
			warnings = append(warnings, fmt.Sprintf(
				"%s: %.1f sets/week (minimum 10 recommended for hypertrophy)",
				muscle.DisplayName(), volume))
		} else if volume > maxWeeklySetsPerMuscle {
			warnings = append(warnings, fmt.Sprintf(
				"%s: %.1f sets/week (may exceed recovery capacity, max 25 recommended)",
				muscle.DisplayName(), volume))
		}
	}
	return warnings
}

// SessionByDay returns the session with the given day number, if any.
func (p *TrainingProgram) SessionByDay(dayNumber int) (*WorkoutSession, bool) {
	for _, session := range p.sessions {
		if session.DayNumber() == dayNumber {
			return session, true
		}
	}
	return nil, false
}

// SessionsOrdered returns the sessions sorted by order_in_program ascending.
func (p *TrainingProgram) SessionsOrdered() []*WorkoutSession {
	out := p.Sessions()
	sort.Slice(out, func(i, j int) bool {
		return out[i].OrderInProgram() < out[j].OrderInProgram()
	})
	return out
}

// ProgramUpdate carries optional new values for UpdateDetails.
type ProgramUpdate struct {
	Name          *string
	Description   *string
	DurationWeeks *int
}

// UpdateDetails applies the non-nil fields, re-validating the aggregate
// before committing.
func (p *TrainingProgram) UpdateDetails(update ProgramUpdate) error {
	candidate := *p
	if update.Name != nil {
		candidate.name = strings.TrimSpace(*update.Name)
	}
	if update.Description != nil {
		candidate.description = strings.TrimSpace(*update.Description)
	}
	if update.DurationWeeks != nil {
		candidate.durationWeeks = update.DurationWeeks
	}
	if err := candidate.validate(); err != nil {
		return err
	}
	*p = candidate
	p.touch()
	return nil
}

// UpdateSessions replaces the session list, re-validating the aggregate.
func (p *TrainingProgram) UpdateSessions(sessions []*WorkoutSession) error {
	candidate := *p
	candidate.sessions = append([]*WorkoutSession(nil), sessions...)
	if err := candidate.validate(); err != nil {
		return err
	}
	*p = candidate
	p.touch()
	return nil
}

// AddSession appends a session and re-validates the aggregate, including
// the cross-session day-number and order uniqueness checks.
func (p *TrainingProgram) AddSession(session *WorkoutSession) error {
	candidate := *p
	candidate.sessions = append(p.Sessions(), session)
	if err := candidate.validate(); err != nil {
		return err
	}
	*p = candidate
	p.touch()
	return nil
}

// RemoveSession drops a session by ID. A program must always keep at least
// one session, so removing the last one fails.
func (p *TrainingProgram) RemoveSession(sessionID uuid.UUID) error {
	if len(p.sessions) <= 1 {
		return newValidationError("cannot remove last session from program")
	}
	kept := make([]*WorkoutSession, 0, len(p.sessions)-1)
	found := false
	for _, session := range p.sessions {
		if session.ID() == sessionID {
			found = true
			continue
		}
		kept = append(kept, session)
	}
	if !found {
		return newValidationError("session %s not found in program", sessionID)
	}
	candidate := *p
	candidate.sessions = kept
	if err := candidate.validate(); err != nil {
		return err
	}
	*p = candidate
	p.touch()
	return nil
}

// Advisories returns soft warnings about the program: session-count vs.
// structure mismatches and each session's own advisories.
func (p *TrainingProgram) Advisories() []string {
	var out []string
	switch p.structureType {
	case StructureWeekly:
		if p.weekly != nil && len(p.sessions) > p.weekly.DaysPerWeek()*2 {
			out = append(out, fmt.Sprintf(
				"program has %d sessions but only %d training days per week; sessions will cycle",
				len(p.sessions), p.weekly.DaysPerWeek()))
		}
	case StructureCyclic:
		if p.cyclic != nil && len(p.sessions) > p.cyclic.DaysOn()*2 {
			out = append(out, fmt.Sprintf(
				"program has %d sessions but only %d consecutive training days; sessions will cycle",
				len(p.sessions), p.cyclic.DaysOn()))
		}
	}
	for _, session := range p.sessions {
		out = append(out, session.Advisories()...)
	}
	return out
}

// Validate re-runs the full aggregate validation. Idempotent.
func (p *TrainingProgram) Validate() error {
	return p.validate()
}

func (p *TrainingProgram) validate() error {
	if p.name == "" {
		return newValidationError("program name cannot be empty")
	}
	if !p.splitType.IsValid() {
		return newValidationError("unknown split type %q", string(p.splitType))
	}
	if len(p.sessions) == 0 {
		return newValidationError("program must have at least one session")
	}

	dayNumbers := make(map[int]bool, len(p.sessions))
	orders := make(map[int]bool, len(p.sessions))
	for _, session := range p.sessions {
		if dayNumbers[session.DayNumber()] {
			return newValidationError("session day_numbers must be unique")
		}
		dayNumbers[session.DayNumber()] = true
		if orders[session.OrderInProgram()] {
			return newValidationError("session order_in_program values must be unique")
		}
		orders[session.OrderInProgram()] = true
	}

	switch p.structureType {
	case StructureWeekly:
		if p.weekly == nil || p.cyclic != nil {
			return newValidationError("structure config must be a weekly structure for WEEKLY type")
		}
	case StructureCyclic:
		if p.cyclic == nil || p.weekly != nil {
			return newValidationError("structure config must be a cyclic structure for CYCLIC type")
		}
	default:
		return newValidationError("unknown structure type %q", string(p.structureType))
	}

	if p.isTemplate {
		if p.organizationID != nil {
			return newValidationError("template programs cannot have organization_id")
		}
		if p.createdByUserID != nil {
			return newValidationError("template programs cannot have created_by_user_id")
		}
	} else if p.organizationID == nil {
		return newValidationError("user programs must have organization_id")
	}

	if p.durationWeeks != nil {
		if *p.durationWeeks < 1 {
			return newValidationError("duration_weeks must be at least 1")
		}
		if *p.durationWeeks > 52 {
			return newValidationError("duration_weeks should not exceed 52 weeks")
		}
	}
	return nil
}
