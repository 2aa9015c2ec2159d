package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"liftforge/hypertrophy-app/internal/domain"
	"liftforge/hypertrophy-app/internal/repository"
)

// In-memory fakes implementing the repository interfaces, shared by the
// service tests in this package.

type fakeUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, existing := range r.users {
		if existing.Email() == user.Email() {
			return repository.ErrDuplicate
		}
	}
	r.users[user.ID()] = user
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, user := range r.users {
		if user.Email() == email {
			return user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByOrganizationID(_ context.Context, orgID uuid.UUID) ([]*domain.User, error) {
	var out []*domain.User
	for _, user := range r.users {
		if user.OrganizationID() == orgID {
			out = append(out, user)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName() < out[j].FullName() })
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID()]; !ok {
		return repository.ErrNotFound
	}
	r.users[user.ID()] = user
	return nil
}

type fakeOrgRepo struct {
	orgs map[uuid.UUID]*domain.Organization
}

func newFakeOrgRepo() *fakeOrgRepo {
	return &fakeOrgRepo{orgs: make(map[uuid.UUID]*domain.Organization)}
}

func (r *fakeOrgRepo) Create(_ context.Context, org *domain.Organization) error {
	r.orgs[org.ID()] = org
	return nil
}

func (r *fakeOrgRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Organization, error) {
	org, ok := r.orgs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return org, nil
}

func (r *fakeOrgRepo) Update(_ context.Context, org *domain.Organization) error {
	if _, ok := r.orgs[org.ID()]; !ok {
		return repository.ErrNotFound
	}
	r.orgs[org.ID()] = org
	return nil
}

type fakeExerciseRepo struct {
	exercises map[uuid.UUID]*domain.Exercise
}

func newFakeExerciseRepo() *fakeExerciseRepo {
	return &fakeExerciseRepo{exercises: make(map[uuid.UUID]*domain.Exercise)}
}

func (r *fakeExerciseRepo) Create(_ context.Context, exercise *domain.Exercise) error {
	r.exercises[exercise.ID()] = exercise
	return nil
}

func (r *fakeExerciseRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Exercise, error) {
	ex, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return ex, nil
}

func (r *fakeExerciseRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]*domain.Exercise, error) {
	var out []*domain.Exercise
	for _, id := range ids {
		if ex, ok := r.exercises[id]; ok {
			out = append(out, ex)
		}
	}
	return out, nil
}

func (r *fakeExerciseRepo) List(_ context.Context, filter repository.ExerciseFilter) ([]*domain.Exercise, error) {
	var out []*domain.Exercise
	for _, ex := range r.exercises {
		if filter.GlobalOnly && !ex.IsGlobal() {
			continue
		}
		if filter.OrganizationID != nil && !ex.IsGlobal() {
			orgID := ex.OrganizationID()
			if orgID == nil || *orgID != *filter.OrganizationID {
				continue
			}
		}
		if filter.Equipment != nil && ex.Equipment() != *filter.Equipment {
			continue
		}
		if filter.Muscle != nil && !ex.TargetsMuscle(*filter.Muscle, domain.ContributionMinimal) {
			continue
		}
		out = append(out, ex)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

func (r *fakeExerciseRepo) Update(_ context.Context, exercise *domain.Exercise) error {
	if _, ok := r.exercises[exercise.ID()]; !ok {
		return repository.ErrNotFound
	}
	r.exercises[exercise.ID()] = exercise
	return nil
}

func (r *fakeExerciseRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.exercises[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.exercises, id)
	return nil
}

type fakeProgramRepo struct {
	programs map[uuid.UUID]*domain.TrainingProgram
}

func newFakeProgramRepo() *fakeProgramRepo {
	return &fakeProgramRepo{programs: make(map[uuid.UUID]*domain.TrainingProgram)}
}

func (r *fakeProgramRepo) Create(_ context.Context, program *domain.TrainingProgram) error {
	r.programs[program.ID()] = program
	return nil
}

func (r *fakeProgramRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.TrainingProgram, error) {
	p, ok := r.programs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (r *fakeProgramRepo) List(_ context.Context, filter repository.ProgramFilter) ([]*domain.TrainingProgram, error) {
	var out []*domain.TrainingProgram
	for _, p := range r.programs {
		if filter.TemplatesOnly && !p.IsTemplate() {
			continue
		}
		if filter.OrganizationID != nil {
			orgID := p.OrganizationID()
			if orgID == nil || *orgID != *filter.OrganizationID {
				continue
			}
		}
		if filter.SplitType != nil && p.SplitType() != *filter.SplitType {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

func (r *fakeProgramRepo) Update(_ context.Context, program *domain.TrainingProgram) error {
	if _, ok := r.programs[program.ID()]; !ok {
		return repository.ErrNotFound
	}
	r.programs[program.ID()] = program
	return nil
}

func (r *fakeProgramRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.programs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.programs, id)
	return nil
}

// fakeFileStorage records calls instead of talking to an object store.
type fakeFileStorage struct {
	deletedKeys []string
}

func (f *fakeFileStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, _ string, _ time.Duration) (string, error) {
	return "https://storage.test/upload/" + objectKey, nil
}

func (f *fakeFileStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://storage.test/download/" + objectKey, nil
}

func (f *fakeFileStorage) DeleteObject(_ context.Context, objectKey string) error {
	f.deletedKeys = append(f.deletedKeys, objectKey)
	return nil
}

// --- Seeding helpers ---

var userSeq int

func seedOrg(t *testing.T, repo *fakeOrgRepo, pro bool) *domain.Organization {
	t.Helper()
	org, err := domain.NewOrganization("Test Gym")
	if err != nil {
		t.Fatalf("NewOrganization: %v", err)
	}
	if pro {
		org.UpgradeToPro()
	}
	if err := repo.Create(context.Background(), org); err != nil {
		t.Fatalf("org Create: %v", err)
	}
	return org
}

func seedUser(t *testing.T, repo *fakeUserRepo, orgID uuid.UUID, role domain.Role) *domain.User {
	t.Helper()
	userSeq++
	email := fmt.Sprintf("user%d@example.com", userSeq)
	user, err := domain.NewUser(email, testPasswordHash(t, "correct-horse-battery"), "Test User", orgID, role)
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("user Create: %v", err)
	}
	return user
}

func testPasswordHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(hash)
}

func seedGlobalExercise(t *testing.T, repo *fakeExerciseRepo, name string, contributions map[domain.MuscleGroup]domain.VolumeContribution) *domain.Exercise {
	t.Helper()
	ex, err := domain.NewExercise(name, domain.EquipmentBarbell, contributions, "", "", true, nil, nil)
	if err != nil {
		t.Fatalf("NewExercise: %v", err)
	}
	if err := repo.Create(context.Background(), ex); err != nil {
		t.Fatalf("exercise Create: %v", err)
	}
	return ex
}
