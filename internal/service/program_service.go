package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"liftforge/hypertrophy-app/internal/domain"
	"liftforge/hypertrophy-app/internal/repository"
)

// --- Error Definitions ---
var (
	ErrProgramNotFound     = errors.New("training program not found")
	ErrProgramAccessDenied = errors.New("access denied to modify or delete this program")
	ErrNotTemplate         = errors.New("only template programs can be cloned")
	ErrProgramsRequirePro  = errors.New("creating programs requires a Pro subscription")
)

// WorkoutExerciseInput is one exercise entry inside a session input.
type WorkoutExerciseInput struct {
	ExerciseID     uuid.UUID
	Sets           int
	OrderInSession int
	Notes          string
}

// SessionInput describes one workout session of a program.
type SessionInput struct {
	Name           string
	DayNumber      int
	OrderInProgram int
	Exercises      []WorkoutExerciseInput
}

// WeeklyStructureInput configures a fixed-weekday schedule.
type WeeklyStructureInput struct {
	DaysPerWeek  int
	SelectedDays []domain.WeekDay
}

// CyclicStructureInput configures a rotating on/off schedule.
type CyclicStructureInput struct {
	DaysOn  int
	DaysOff int
}

// ProgramInput carries the fields for creating a training program. Exactly
// one of Weekly/Cyclic must be set, matching StructureType.
type ProgramInput struct {
	Name          string
	Description   string
	SplitType     domain.SplitType
	StructureType domain.StructureType
	Weekly        *WeeklyStructureInput
	Cyclic        *CyclicStructureInput
	Sessions      []SessionInput
	DurationWeeks *int
}

// ProgramUpdateInput carries optional new values for UpdateProgram.
type ProgramUpdateInput struct {
	Name          *string
	Description   *string
	DurationWeeks *int
}

// ProgramVolumeReport is the weekly volume read model: per-muscle
// effective sets plus the advisory warnings derived from them.
type ProgramVolumeReport struct {
	WeeklyVolume map[domain.MuscleGroup]float64
	Warnings     []string
}

// --- Service Interface ---
type ProgramService interface {
	CreateProgram(ctx context.Context, actorID uuid.UUID, input ProgramInput) (*domain.TrainingProgram, []string, error)
	GetProgramByID(ctx context.Context, actorID, programID uuid.UUID) (*domain.TrainingProgram, error)
	ListPrograms(ctx context.Context, actorID uuid.UUID) ([]*domain.TrainingProgram, error)
	ListTemplates(ctx context.Context, splitType *domain.SplitType) ([]*domain.TrainingProgram, error)
	UpdateProgram(ctx context.Context, actorID, programID uuid.UUID, input ProgramUpdateInput) (*domain.TrainingProgram, error)
	UpdateProgramSessions(ctx context.Context, actorID, programID uuid.UUID, sessions []SessionInput) (*domain.TrainingProgram, []string, error)
	DeleteProgram(ctx context.Context, actorID, programID uuid.UUID) error
	CloneTemplate(ctx context.Context, actorID, templateID uuid.UUID, newName string) (*domain.TrainingProgram, error)
	GetSchedule(ctx context.Context, actorID, programID uuid.UUID, start time.Time, weeks int) ([]domain.ScheduledSession, error)
	GetVolumeReport(ctx context.Context, actorID, programID uuid.UUID) (*ProgramVolumeReport, error)
}

// --- Service Implementation ---

// programService implements the ProgramService interface. Admin actors
// author templates; regular members author programs owned by their
// organization, gated on the Pro tier.
type programService struct {
	programRepo  repository.ProgramRepository
	exerciseRepo repository.ExerciseRepository
	userRepo     repository.UserRepository
	orgRepo      repository.OrganizationRepository
}

// NewProgramService creates a new instance of programService.
func NewProgramService(
	programRepo repository.ProgramRepository,
	exerciseRepo repository.ExerciseRepository,
	userRepo repository.UserRepository,
	orgRepo repository.OrganizationRepository,
) ProgramService {
	return &programService{
		programRepo:  programRepo,
		exerciseRepo: exerciseRepo,
		userRepo:     userRepo,
		orgRepo:      orgRepo,
	}
}

func (s *programService) actor(ctx context.Context, actorID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// CreateProgram builds and stores a program. Admins create templates,
// members create organization programs. The returned strings are
// advisories: structure/split frequency mismatches and volume concerns
// that do not block creation.
func (s *programService) CreateProgram(ctx context.Context, actorID uuid.UUID, input ProgramInput) (*domain.TrainingProgram, []string, error) {
	user, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, nil, err
	}

	cfg := domain.ProgramConfig{
		Name:          input.Name,
		Description:   input.Description,
		SplitType:     input.SplitType,
		StructureType: input.StructureType,
		DurationWeeks: input.DurationWeeks,
	}
	if user.IsAdmin() {
		cfg.IsTemplate = true
	} else {
		org, orgErr := s.orgRepo.GetByID(ctx, user.OrganizationID())
		if orgErr != nil {
			if errors.Is(orgErr, repository.ErrNotFound) {
				return nil, nil, ErrOrganizationNotFound
			}
			return nil, nil, orgErr
		}
		if !org.CanCreatePrograms() {
			return nil, nil, ErrProgramsRequirePro
		}
		userID := user.ID()
		orgID := org.ID()
		cfg.CreatedByUserID = &userID
		cfg.OrganizationID = &orgID
	}

	if input.Weekly != nil {
		weekly, werr := domain.NewWeeklyStructure(input.Weekly.DaysPerWeek, input.Weekly.SelectedDays)
		if werr != nil {
			return nil, nil, werr
		}
		cfg.Weekly = &weekly
	}
	if input.Cyclic != nil {
		cyclic, cerr := domain.NewCyclicStructure(input.Cyclic.DaysOn, input.Cyclic.DaysOff)
		if cerr != nil {
			return nil, nil, cerr
		}
		cfg.Cyclic = &cyclic
	}

	// Session identities depend on the program ID, so the program is
	// built first with placeholder-free sessions attached after.
	programID := uuid.New()
	sessions, err := buildSessions(programID, input.Sessions)
	if err != nil {
		return nil, nil, err
	}
	cfg.Sessions = sessions

	program, err := domain.ReconstructTrainingProgram(programID, cfg, time.Now().UTC(), time.Now().UTC())
	if err != nil {
		return nil, nil, err
	}

	if err := s.programRepo.Create(ctx, program); err != nil {
		return nil, nil, err
	}

	advisories := s.creationAdvisories(program)
	return program, advisories, nil
}

func buildSessions(programID uuid.UUID, inputs []SessionInput) ([]*domain.WorkoutSession, error) {
	sessions := make([]*domain.WorkoutSession, 0, len(inputs))
	for _, in := range inputs {
		exercises := make([]domain.WorkoutExercise, 0, len(in.Exercises))
		for _, ein := range in.Exercises {
			we, err := domain.NewWorkoutExercise(ein.ExerciseID, ein.Sets, ein.OrderInSession, ein.Notes)
			if err != nil {
				return nil, err
			}
			exercises = append(exercises, we)
		}
		session, err := domain.NewWorkoutSession(programID, in.Name, in.DayNumber, in.OrderInProgram, exercises)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

func (s *programService) creationAdvisories(program *domain.TrainingProgram) []string {
	var advisories []string
	ok, reason := domain.ValidateStructureForSplit(
		program.StructureType(),
		program.WeeklyStructure(),
		program.CyclicStructure(),
		program.SplitType().TypicalFrequency(),
	)
	if !ok {
		advisories = append(advisories, reason)
	}
	advisories = append(advisories, program.Advisories()...)
	return advisories
}

// GetProgramByID retrieves a program visible to the actor: templates, or
// programs owned by the actor's organization.
func (s *programService) GetProgramByID(ctx context.Context, actorID, programID uuid.UUID) (*domain.TrainingProgram, error) {
	user, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return s.visibleProgram(ctx, user, programID)
}

func (s *programService) visibleProgram(ctx context.Context, user *domain.User, programID uuid.UUID) (*domain.TrainingProgram, error) {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	if !canViewProgram(user, program) {
		return nil, ErrProgramNotFound
	}
	return program, nil
}

func canViewProgram(user *domain.User, program *domain.TrainingProgram) bool {
	if program.IsTemplate() {
		return true
	}
	orgID := program.OrganizationID()
	return orgID != nil && *orgID == user.OrganizationID()
}

func canEditProgram(user *domain.User, program *domain.TrainingProgram) bool {
	if program.IsTemplate() {
		return user.IsAdmin()
	}
	orgID := program.OrganizationID()
	return orgID != nil && *orgID == user.OrganizationID()
}

// ListPrograms retrieves the programs of the actor's organization.
func (s *programService) ListPrograms(ctx context.Context, actorID uuid.UUID) ([]*domain.TrainingProgram, error) {
	user, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	orgID := user.OrganizationID()
	return s.programRepo.List(ctx, repository.ProgramFilter{OrganizationID: &orgID})
}

// ListTemplates retrieves the template library, optionally narrowed to one
// split type. Templates are public; no actor check is needed.
func (s *programService) ListTemplates(ctx context.Context, splitType *domain.SplitType) ([]*domain.TrainingProgram, error) {
	return s.programRepo.List(ctx, repository.ProgramFilter{TemplatesOnly: true, SplitType: splitType})
}

// UpdateProgram modifies a program's details.
func (s *programService) UpdateProgram(ctx context.Context, actorID, programID uuid.UUID, input ProgramUpdateInput) (*domain.TrainingProgram, error) {
	_, program, err := s.editableProgram(ctx, actorID, programID)
	if err != nil {
		return nil, err
	}

	if err := program.UpdateDetails(domain.ProgramUpdate{
		Name:          input.Name,
		Description:   input.Description,
		DurationWeeks: input.DurationWeeks,
	}); err != nil {
		return nil, err
	}

	if err := s.programRepo.Update(ctx, program); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	return program, nil
}

// UpdateProgramSessions replaces a program's session list wholesale,
// returning fresh advisories for the new shape.
func (s *programService) UpdateProgramSessions(ctx context.Context, actorID, programID uuid.UUID, inputs []SessionInput) (*domain.TrainingProgram, []string, error) {
	_, program, err := s.editableProgram(ctx, actorID, programID)
	if err != nil {
		return nil, nil, err
	}

	sessions, err := buildSessions(program.ID(), inputs)
	if err != nil {
		return nil, nil, err
	}
	if err := program.UpdateSessions(sessions); err != nil {
		return nil, nil, err
	}

	if err := s.programRepo.Update(ctx, program); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrProgramNotFound
		}
		return nil, nil, err
	}
	return program, program.Advisories(), nil
}

// DeleteProgram removes a program the actor may edit.
func (s *programService) DeleteProgram(ctx context.Context, actorID, programID uuid.UUID) error {
	_, _, err := s.editableProgram(ctx, actorID, programID)
	if err != nil {
		return err
	}
	if err := s.programRepo.Delete(ctx, programID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProgramNotFound
		}
		return err
	}
	return nil
}

// CloneTemplate copies a template program into the actor's organization.
// Only templates can be cloned; user programs are not shareable.
func (s *programService) CloneTemplate(ctx context.Context, actorID, templateID uuid.UUID, newName string) (*domain.TrainingProgram, error) {
	user, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	template, err := s.visibleProgram(ctx, user, templateID)
	if err != nil {
		return nil, err
	}
	if !template.IsTemplate() {
		return nil, ErrNotTemplate
	}

	org, err := s.orgRepo.GetByID(ctx, user.OrganizationID())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, err
	}
	if !org.CanCreatePrograms() {
		return nil, ErrProgramsRequirePro
	}

	clone, err := template.CloneForUser(user.ID(), org.ID(), newName)
	if err != nil {
		return nil, err
	}
	if err := s.programRepo.Create(ctx, clone); err != nil {
		return nil, err
	}
	return clone, nil
}

// GetSchedule maps a program's sessions onto calendar dates. A zero start
// defaults to today; weeks <= 0 defaults to the program duration.
func (s *programService) GetSchedule(ctx context.Context, actorID, programID uuid.UUID, start time.Time, weeks int) ([]domain.ScheduledSession, error) {
	user, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	program, err := s.visibleProgram(ctx, user, programID)
	if err != nil {
		return nil, err
	}
	if start.IsZero() {
		start = time.Now().UTC().Truncate(24 * time.Hour)
	}
	return program.GenerateSchedule(start, weeks), nil
}

// GetVolumeReport computes the weekly per-muscle volume of a program and
// the warnings for muscles outside the hypertrophy band.
func (s *programService) GetVolumeReport(ctx context.Context, actorID, programID uuid.UUID) (*ProgramVolumeReport, error) {
	user, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	program, err := s.visibleProgram(ctx, user, programID)
	if err != nil {
		return nil, err
	}

	contributions, err := s.contributionsFor(ctx, program)
	if err != nil {
		return nil, err
	}
	return &ProgramVolumeReport{
		WeeklyVolume: program.TotalWeeklyVolume(contributions),
		Warnings:     program.VolumeWarnings(contributions),
	}, nil
}

// contributionsFor resolves each referenced exercise's per-set contribution
// map. Exercises that no longer exist simply contribute nothing.
func (s *programService) contributionsFor(ctx context.Context, program *domain.TrainingProgram) (map[uuid.UUID]map[domain.MuscleGroup]float64, error) {
	idSet := make(map[uuid.UUID]bool)
	for _, session := range program.Sessions() {
		for _, we := range session.Exercises() {
			idSet[we.ExerciseID()] = true
		}
	}
	ids := make([]uuid.UUID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	exercises, err := s.exerciseRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	contributions := make(map[uuid.UUID]map[domain.MuscleGroup]float64, len(exercises))
	for _, ex := range exercises {
		perSet, err := ex.CalculateTotalVolume(1)
		if err != nil {
			return nil, err
		}
		contributions[ex.ID()] = perSet
	}
	return contributions, nil
}

func (s *programService) editableProgram(ctx context.Context, actorID, programID uuid.UUID) (*domain.User, *domain.TrainingProgram, error) {
	user, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, nil, err
	}
	program, err := s.visibleProgram(ctx, user, programID)
	if err != nil {
		return nil, nil, err
	}
	if !canEditProgram(user, program) {
		return nil, nil, ErrProgramAccessDenied
	}
	return user, program, nil
}
