package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"liftforge/hypertrophy-app/internal/domain"
	"liftforge/hypertrophy-app/internal/repository"
	"liftforge/hypertrophy-app/internal/storage"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound     = errors.New("exercise not found")
	ErrExerciseAccessDenied = errors.New("access denied to modify or delete this exercise")
	ErrCustomExercisesPro   = errors.New("custom exercises require a Pro subscription")
	ErrUserNotFound         = errors.New("user not found")
	ErrOrganizationNotFound = errors.New("organization not found")
)

// ExerciseInput carries the fields for creating or updating an exercise.
type ExerciseInput struct {
	Name                string
	Equipment           domain.Equipment
	MuscleContributions map[domain.MuscleGroup]domain.VolumeContribution
	Description         string
}

// ExerciseListOptions narrows exercise listings at the service level.
type ExerciseListOptions struct {
	Equipment *domain.Equipment
	Muscle    *domain.MuscleGroup
}

// --- Service Interface ---
type ExerciseService interface {
	CreateExercise(ctx context.Context, actorID uuid.UUID, input ExerciseInput) (*domain.Exercise, error)
	GetExerciseByID(ctx context.Context, actorID, exerciseID uuid.UUID) (*domain.Exercise, error)
	ListExercises(ctx context.Context, actorID uuid.UUID, opts ExerciseListOptions) ([]*domain.Exercise, error)
	UpdateExercise(ctx context.Context, actorID, exerciseID uuid.UUID, input ExerciseInput) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, actorID, exerciseID uuid.UUID) error
	GenerateImageUploadURL(ctx context.Context, actorID, exerciseID uuid.UUID, contentType string) (uploadURL, objectKey string, err error)
	ConfirmImageUpload(ctx context.Context, actorID, exerciseID uuid.UUID, objectKey string) (*domain.Exercise, error)
}

// --- Service Implementation ---

// exerciseService implements the ExerciseService interface. Admin actors
// author global exercises; regular members author exercises owned by their
// organization, which requires a Pro subscription.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	userRepo     repository.UserRepository
	orgRepo      repository.OrganizationRepository
	fileStorage  storage.FileStorage
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(
	exerciseRepo repository.ExerciseRepository,
	userRepo repository.UserRepository,
	orgRepo repository.OrganizationRepository,
	fileStorage storage.FileStorage,
) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		userRepo:     userRepo,
		orgRepo:      orgRepo,
		fileStorage:  fileStorage,
	}
}

func (s *exerciseService) actor(ctx context.Context, actorID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// CreateExercise creates a global exercise when the actor is an admin, or
// an organization-owned one otherwise. Organization exercises are gated on
// the Pro tier.
func (s *exerciseService) CreateExercise(ctx context.Context, actorID uuid.UUID, input ExerciseInput) (*domain.Exercise, error) {
	user, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	var exercise *domain.Exercise
	if user.IsAdmin() {
		exercise, err = domain.NewExercise(
			input.Name, input.Equipment, input.MuscleContributions,
			input.Description, "", true, nil, nil,
		)
	} else {
		org, orgErr := s.orgRepo.GetByID(ctx, user.OrganizationID())
		if orgErr != nil {
			if errors.Is(orgErr, repository.ErrNotFound) {
				return nil, ErrOrganizationNotFound
			}
			return nil, orgErr
		}
		if !org.CanCreateCustomExercises() {
			return nil, ErrCustomExercisesPro
		}
		userID := user.ID()
		orgID := org.ID()
		exercise, err = domain.NewExercise(
			input.Name, input.Equipment, input.MuscleContributions,
			input.Description, "", false, &userID, &orgID,
		)
	}
	if err != nil {
		return nil, err
	}

	if err := s.exerciseRepo.Create(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

// GetExerciseByID retrieves a single exercise visible to the actor: global
// ones, or ones owned by the actor's organization.
func (s *exerciseService) GetExerciseByID(ctx context.Context, actorID, exerciseID uuid.UUID) (*domain.Exercise, error) {
	user, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if !s.canView(user, exercise) {
		return nil, ErrExerciseNotFound
	}
	return exercise, nil
}

// ListExercises retrieves the exercises visible to the actor: the global
// library plus the actor's organization's own.
func (s *exerciseService) ListExercises(ctx context.Context, actorID uuid.UUID, opts ExerciseListOptions) ([]*domain.Exercise, error) {
	user, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	orgID := user.OrganizationID()
	return s.exerciseRepo.List(ctx, repository.ExerciseFilter{
		OrganizationID: &orgID,
		Equipment:      opts.Equipment,
		Muscle:         opts.Muscle,
	})
}

// UpdateExercise modifies an exercise the actor may edit: admins edit
// global exercises, members edit their organization's.
func (s *exerciseService) UpdateExercise(ctx context.Context, actorID, exerciseID uuid.UUID, input ExerciseInput) (*domain.Exercise, error) {
	_, exercise, err := s.editable(ctx, actorID, exerciseID)
	if err != nil {
		return nil, err
	}

	if err := exercise.UpdateDetails(domain.ExerciseUpdate{
		Name:        &input.Name,
		Description: &input.Description,
		Equipment:   &input.Equipment,
	}); err != nil {
		return nil, err
	}
	if input.MuscleContributions != nil {
		if err := exercise.UpdateMuscleContributions(input.MuscleContributions); err != nil {
			return nil, err
		}
	}

	if err := s.exerciseRepo.Update(ctx, exercise); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

// DeleteExercise removes an exercise the actor may edit, including its
// stored demonstration image if one exists.
func (s *exerciseService) DeleteExercise(ctx context.Context, actorID, exerciseID uuid.UUID) error {
	_, exercise, err := s.editable(ctx, actorID, exerciseID)
	if err != nil {
		return err
	}

	if err := s.exerciseRepo.Delete(ctx, exerciseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}
	if key := exercise.ImageURL(); key != "" && s.fileStorage != nil {
		// Image cleanup is best effort; the exercise row is already gone.
		_ = s.fileStorage.DeleteObject(ctx, key)
	}
	return nil
}

// GenerateImageUploadURL produces a presigned PUT URL for an exercise's
// demonstration image. The object key is returned so the client can
// confirm the upload afterwards.
func (s *exerciseService) GenerateImageUploadURL(ctx context.Context, actorID, exerciseID uuid.UUID, contentType string) (string, string, error) {
	_, exercise, err := s.editable(ctx, actorID, exerciseID)
	if err != nil {
		return "", "", err
	}
	if s.fileStorage == nil {
		return "", "", errors.New("file storage is not configured")
	}

	objectKey := fmt.Sprintf("exercises/%s/image-%d", exercise.ID(), time.Now().Unix())
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", "", err
	}
	return uploadURL, objectKey, nil
}

// ConfirmImageUpload records the uploaded object key on the exercise.
func (s *exerciseService) ConfirmImageUpload(ctx context.Context, actorID, exerciseID uuid.UUID, objectKey string) (*domain.Exercise, error) {
	_, exercise, err := s.editable(ctx, actorID, exerciseID)
	if err != nil {
		return nil, err
	}
	exercise.SetImageURL(objectKey)
	if err := s.exerciseRepo.Update(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

func (s *exerciseService) canView(user *domain.User, exercise *domain.Exercise) bool {
	if exercise.IsGlobal() {
		return true
	}
	orgID := exercise.OrganizationID()
	return orgID != nil && *orgID == user.OrganizationID()
}

func (s *exerciseService) canEdit(user *domain.User, exercise *domain.Exercise) bool {
	if exercise.IsGlobal() {
		return user.IsAdmin()
	}
	orgID := exercise.OrganizationID()
	return orgID != nil && *orgID == user.OrganizationID()
}

func (s *exerciseService) editable(ctx context.Context, actorID, exerciseID uuid.UUID) (*domain.User, *domain.Exercise, error) {
	user, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, nil, err
	}
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrExerciseNotFound
		}
		return nil, nil, err
	}
	if !s.canView(user, exercise) {
		return nil, nil, ErrExerciseNotFound
	}
	if !s.canEdit(user, exercise) {
		return nil, nil, ErrExerciseAccessDenied
	}
	return user, exercise, nil
}
