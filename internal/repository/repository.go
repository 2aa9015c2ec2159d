package repository

import (
	"context"

	"github.com/google/uuid"

	"liftforge/hypertrophy-app/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("already exists")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ExerciseFilter narrows exercise listings. Zero values mean "no filter".
type ExerciseFilter struct {
	OrganizationID *uuid.UUID          // include this org's exercises alongside globals
	GlobalOnly     bool                // restrict to the global library
	Equipment      *domain.Equipment   // restrict to one equipment type
	Muscle         *domain.MuscleGroup // restrict to exercises targeting the muscle
}

// ExerciseRepository defines the interface for interacting with exercise data.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Exercise, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Exercise, error)
	List(ctx context.Context, filter ExerciseFilter) ([]*domain.Exercise, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProgramFilter narrows training-program listings.
type ProgramFilter struct {
	OrganizationID *uuid.UUID
	TemplatesOnly  bool
	SplitType      *domain.SplitType
}

// ProgramRepository defines the interface for interacting with training
// program data. Sessions are stored as part of the program aggregate, so
// there is no separate session repository.
type ProgramRepository interface {
	Create(ctx context.Context, program *domain.TrainingProgram) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TrainingProgram, error)
	List(ctx context.Context, filter ProgramFilter) ([]*domain.TrainingProgram, error)
	Update(ctx context.Context, program *domain.TrainingProgram) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByOrganizationID(ctx context.Context, orgID uuid.UUID) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// OrganizationRepository defines the interface for interacting with
// organization data.
type OrganizationRepository interface {
	Create(ctx context.Context, org *domain.Organization) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error)
	Update(ctx context.Context, org *domain.Organization) error
}
