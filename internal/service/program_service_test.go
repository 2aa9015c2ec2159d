package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"liftforge/hypertrophy-app/internal/domain"
)

type programFixture struct {
	svc          ProgramService
	programRepo  *fakeProgramRepo
	exerciseRepo *fakeExerciseRepo
	userRepo     *fakeUserRepo
	orgRepo      *fakeOrgRepo
}

func newProgramFixture() *programFixture {
	f := &programFixture{
		programRepo:  newFakeProgramRepo(),
		exerciseRepo: newFakeExerciseRepo(),
		userRepo:     newFakeUserRepo(),
		orgRepo:      newFakeOrgRepo(),
	}
	f.svc = NewProgramService(f.programRepo, f.exerciseRepo, f.userRepo, f.orgRepo)
	return f
}

func (f *programFixture) seedBench(t *testing.T) *domain.Exercise {
	t.Helper()
	return seedGlobalExercise(t, f.exerciseRepo, "Bench Press", map[domain.MuscleGroup]domain.VolumeContribution{
		domain.MuscleChest:      domain.ContributionPrimary,
		domain.MuscleFrontDelts: domain.ContributionModerate,
		domain.MuscleTriceps:    domain.ContributionHigh,
	})
}

func fullBodyInput(exerciseID uuid.UUID) ProgramInput {
	return ProgramInput{
		Name:          "Full Body A/B",
		SplitType:     domain.SplitFullBody,
		StructureType: domain.StructureWeekly,
		Weekly: &WeeklyStructureInput{
			DaysPerWeek:  3,
			SelectedDays: []domain.WeekDay{domain.Monday, domain.Wednesday, domain.Friday},
		},
		Sessions: []SessionInput{
			{
				Name: "Full Body A", DayNumber: 1, OrderInProgram: 1,
				Exercises: []WorkoutExerciseInput{{ExerciseID: exerciseID, Sets: 4, OrderInSession: 1}},
			},
			{
				Name: "Full Body B", DayNumber: 2, OrderInProgram: 2,
				Exercises: []WorkoutExerciseInput{{ExerciseID: exerciseID, Sets: 4, OrderInSession: 1}},
			},
		},
	}
}

func TestCreateProgramAdminTemplate(t *testing.T) {
	f := newProgramFixture()
	org := seedOrg(t, f.orgRepo, false)
	admin := seedUser(t, f.userRepo, org.ID(), domain.RoleAdmin)
	bench := f.seedBench(t)

	program, advisories, err := f.svc.CreateProgram(context.Background(), admin.ID(), fullBodyInput(bench.ID()))
	if err != nil {
		t.Fatalf("CreateProgram() error = %v", err)
	}
	if !program.IsTemplate() {
		t.Error("admin-created program should be a template")
	}
	if program.OrganizationID() != nil {
		t.Error("template should not have an organization")
	}
	if len(advisories) != 0 {
		t.Errorf("advisories = %v, want none for a well-formed full-body program", advisories)
	}
	for _, session := range program.Sessions() {
		if session.ProgramID() != program.ID() {
			t.Errorf("session program id = %v, want %v", session.ProgramID(), program.ID())
		}
	}
	if _, err := f.programRepo.GetByID(context.Background(), program.ID()); err != nil {
		t.Errorf("program was not persisted: %v", err)
	}
}

func TestCreateProgramProGating(t *testing.T) {
	f := newProgramFixture()
	freeOrg := seedOrg(t, f.orgRepo, false)
	proOrg := seedOrg(t, f.orgRepo, true)
	freeMember := seedUser(t, f.userRepo, freeOrg.ID(), domain.RoleUser)
	proMember := seedUser(t, f.userRepo, proOrg.ID(), domain.RoleUser)
	bench := f.seedBench(t)

	if _, _, err := f.svc.CreateProgram(context.Background(), freeMember.ID(), fullBodyInput(bench.ID())); !errors.Is(err, ErrProgramsRequirePro) {
		t.Errorf("free member error = %v, want ErrProgramsRequirePro", err)
	}

	program, _, err := f.svc.CreateProgram(context.Background(), proMember.ID(), fullBodyInput(bench.ID()))
	if err != nil {
		t.Fatalf("pro member CreateProgram() error = %v", err)
	}
	if program.IsTemplate() {
		t.Error("member-created program should not be a template")
	}
	if got := program.OrganizationID(); got == nil || *got != proOrg.ID() {
		t.Errorf("organization = %v, want %v", got, proOrg.ID())
	}
}

func TestCreateProgramFrequencyAdvisory(t *testing.T) {
	f := newProgramFixture()
	org := seedOrg(t, f.orgRepo, false)
	admin := seedUser(t, f.userRepo, org.ID(), domain.RoleAdmin)
	bench := f.seedBench(t)

	// Push/pull/legs wants ~6 training days; three weekday slots fall short.
	input := fullBodyInput(bench.ID())
	input.Name = "Compressed PPL"
	input.SplitType = domain.SplitPushPullLegs

	program, advisories, err := f.svc.CreateProgram(context.Background(), admin.ID(), input)
	if err != nil {
		t.Fatalf("CreateProgram() error = %v", err)
	}
	if program == nil {
		t.Fatal("frequency mismatch must not block creation")
	}
	if len(advisories) == 0 {
		t.Error("expected a frequency advisory for PPL on 3 days/week")
	}
}

func TestCloneTemplate(t *testing.T) {
	f := newProgramFixture()
	adminOrg := seedOrg(t, f.orgRepo, false)
	proOrg := seedOrg(t, f.orgRepo, true)
	freeOrg := seedOrg(t, f.orgRepo, false)
	admin := seedUser(t, f.userRepo, adminOrg.ID(), domain.RoleAdmin)
	proMember := seedUser(t, f.userRepo, proOrg.ID(), domain.RoleUser)
	freeMember := seedUser(t, f.userRepo, freeOrg.ID(), domain.RoleUser)
	bench := f.seedBench(t)

	template, _, err := f.svc.CreateProgram(context.Background(), admin.ID(), fullBodyInput(bench.ID()))
	if err != nil {
		t.Fatalf("CreateProgram() error = %v", err)
	}

	clone, err := f.svc.CloneTemplate(context.Background(), proMember.ID(), template.ID(), "")
	if err != nil {
		t.Fatalf("CloneTemplate() error = %v", err)
	}
	if clone.ID() == template.ID() {
		t.Error("clone must get a fresh identity")
	}
	if clone.Name() != "My Full Body A/B" {
		t.Errorf("clone name = %q, want %q", clone.Name(), "My Full Body A/B")
	}
	if clone.IsTemplate() {
		t.Error("clone should not be a template")
	}
	if got := clone.OrganizationID(); got == nil || *got != proOrg.ID() {
		t.Errorf("clone organization = %v, want %v", got, proOrg.ID())
	}
	for _, session := range clone.Sessions() {
		if session.ProgramID() != clone.ID() {
			t.Errorf("clone session references %v, want %v", session.ProgramID(), clone.ID())
		}
	}
	if _, err := f.programRepo.GetByID(context.Background(), clone.ID()); err != nil {
		t.Errorf("clone was not persisted: %v", err)
	}

	// Cloning a user program is not allowed.
	if _, err := f.svc.CloneTemplate(context.Background(), proMember.ID(), clone.ID(), ""); !errors.Is(err, ErrNotTemplate) {
		t.Errorf("clone of non-template error = %v, want ErrNotTemplate", err)
	}
	// Cloning requires the Pro tier.
	if _, err := f.svc.CloneTemplate(context.Background(), freeMember.ID(), template.ID(), ""); !errors.Is(err, ErrProgramsRequirePro) {
		t.Errorf("free member clone error = %v, want ErrProgramsRequirePro", err)
	}
}

func TestTemplateEditRequiresAdmin(t *testing.T) {
	f := newProgramFixture()
	org := seedOrg(t, f.orgRepo, true)
	admin := seedUser(t, f.userRepo, org.ID(), domain.RoleAdmin)
	member := seedUser(t, f.userRepo, org.ID(), domain.RoleUser)
	bench := f.seedBench(t)

	template, _, err := f.svc.CreateProgram(context.Background(), admin.ID(), fullBodyInput(bench.ID()))
	if err != nil {
		t.Fatalf("CreateProgram() error = %v", err)
	}

	name := "Renamed"
	if _, err := f.svc.UpdateProgram(context.Background(), member.ID(), template.ID(), ProgramUpdateInput{Name: &name}); !errors.Is(err, ErrProgramAccessDenied) {
		t.Errorf("member edit error = %v, want ErrProgramAccessDenied", err)
	}
	updated, err := f.svc.UpdateProgram(context.Background(), admin.ID(), template.ID(), ProgramUpdateInput{Name: &name})
	if err != nil {
		t.Fatalf("admin edit error = %v", err)
	}
	if updated.Name() != "Renamed" {
		t.Errorf("name = %q, want %q", updated.Name(), "Renamed")
	}
}

func TestProgramVisibilityAcrossOrganizations(t *testing.T) {
	f := newProgramFixture()
	orgA := seedOrg(t, f.orgRepo, true)
	orgB := seedOrg(t, f.orgRepo, true)
	memberA := seedUser(t, f.userRepo, orgA.ID(), domain.RoleUser)
	memberB := seedUser(t, f.userRepo, orgB.ID(), domain.RoleUser)
	bench := f.seedBench(t)

	program, _, err := f.svc.CreateProgram(context.Background(), memberA.ID(), fullBodyInput(bench.ID()))
	if err != nil {
		t.Fatalf("CreateProgram() error = %v", err)
	}

	if _, err := f.svc.GetProgramByID(context.Background(), memberB.ID(), program.ID()); !errors.Is(err, ErrProgramNotFound) {
		t.Errorf("cross-org get error = %v, want ErrProgramNotFound", err)
	}

	listed, err := f.svc.ListPrograms(context.Background(), memberB.ID())
	if err != nil {
		t.Fatalf("ListPrograms() error = %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("member B sees %d programs, want 0", len(listed))
	}
}

func TestListTemplatesSplitFilter(t *testing.T) {
	f := newProgramFixture()
	org := seedOrg(t, f.orgRepo, false)
	admin := seedUser(t, f.userRepo, org.ID(), domain.RoleAdmin)
	bench := f.seedBench(t)

	if _, _, err := f.svc.CreateProgram(context.Background(), admin.ID(), fullBodyInput(bench.ID())); err != nil {
		t.Fatalf("CreateProgram() error = %v", err)
	}
	ppl := fullBodyInput(bench.ID())
	ppl.Name = "PPL Base"
	ppl.SplitType = domain.SplitPushPullLegs
	if _, _, err := f.svc.CreateProgram(context.Background(), admin.ID(), ppl); err != nil {
		t.Fatalf("CreateProgram() error = %v", err)
	}

	all, err := f.svc.ListTemplates(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListTemplates() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("templates = %d, want 2", len(all))
	}

	split := domain.SplitPushPullLegs
	filtered, err := f.svc.ListTemplates(context.Background(), &split)
	if err != nil {
		t.Fatalf("ListTemplates(split) error = %v", err)
	}
	if len(filtered) != 1 || filtered[0].Name() != "PPL Base" {
		t.Errorf("filtered templates = %v, want only PPL Base", filtered)
	}
}

func TestGetScheduleWeekly(t *testing.T) {
	f := newProgramFixture()
	org := seedOrg(t, f.orgRepo, false)
	admin := seedUser(t, f.userRepo, org.ID(), domain.RoleAdmin)
	bench := f.seedBench(t)

	program, _, err := f.svc.CreateProgram(context.Background(), admin.ID(), fullBodyInput(bench.ID()))
	if err != nil {
		t.Fatalf("CreateProgram() error = %v", err)
	}

	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC) // a Monday
	schedule, err := f.svc.GetSchedule(context.Background(), admin.ID(), program.ID(), start, 1)
	if err != nil {
		t.Fatalf("GetSchedule() error = %v", err)
	}
	if len(schedule) != 3 {
		t.Fatalf("schedule entries = %d, want 3", len(schedule))
	}
	if schedule[0].SessionName != "Full Body A" || schedule[1].SessionName != "Full Body B" || schedule[2].SessionName != "Full Body A" {
		t.Errorf("sessions do not cycle in order: %v, %v, %v",
			schedule[0].SessionName, schedule[1].SessionName, schedule[2].SessionName)
	}
	for i, entry := range schedule {
		if entry.DayOfWeek == nil {
			t.Errorf("entry %d has no day of week", i)
		}
		if entry.CycleDay != nil {
			t.Errorf("entry %d has a cycle day on a weekly program", i)
		}
	}
}

func TestGetVolumeReport(t *testing.T) {
	f := newProgramFixture()
	org := seedOrg(t, f.orgRepo, false)
	admin := seedUser(t, f.userRepo, org.ID(), domain.RoleAdmin)
	bench := f.seedBench(t)

	program, _, err := f.svc.CreateProgram(context.Background(), admin.ID(), fullBodyInput(bench.ID()))
	if err != nil {
		t.Fatalf("CreateProgram() error = %v", err)
	}

	report, err := f.svc.GetVolumeReport(context.Background(), admin.ID(), program.ID())
	if err != nil {
		t.Fatalf("GetVolumeReport() error = %v", err)
	}
	// Two sessions of 4-set bench: chest 8.0, front delts 4.0, triceps 6.0.
	if got := report.WeeklyVolume[domain.MuscleChest]; got != 8.0 {
		t.Errorf("chest volume = %v, want 8.0", got)
	}
	if got := report.WeeklyVolume[domain.MuscleFrontDelts]; got != 4.0 {
		t.Errorf("front delts volume = %v, want 4.0", got)
	}
	if got := report.WeeklyVolume[domain.MuscleTriceps]; got != 6.0 {
		t.Errorf("triceps volume = %v, want 6.0", got)
	}
	// Everything is under 10 sets/week, so each touched muscle warns.
	if len(report.Warnings) != 3 {
		t.Errorf("warnings = %v, want 3 low-volume warnings", report.Warnings)
	}
}

func TestVolumeReportSkipsDeletedExercises(t *testing.T) {
	f := newProgramFixture()
	org := seedOrg(t, f.orgRepo, false)
	admin := seedUser(t, f.userRepo, org.ID(), domain.RoleAdmin)
	bench := f.seedBench(t)

	program, _, err := f.svc.CreateProgram(context.Background(), admin.ID(), fullBodyInput(bench.ID()))
	if err != nil {
		t.Fatalf("CreateProgram() error = %v", err)
	}
	if err := f.exerciseRepo.Delete(context.Background(), bench.ID()); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	report, err := f.svc.GetVolumeReport(context.Background(), admin.ID(), program.ID())
	if err != nil {
		t.Fatalf("GetVolumeReport() error = %v", err)
	}
	if len(report.WeeklyVolume) != 0 {
		t.Errorf("volume = %v, want empty once the exercise is gone", report.WeeklyVolume)
	}
}

func TestUpdateProgramSessions(t *testing.T) {
	f := newProgramFixture()
	org := seedOrg(t, f.orgRepo, false)
	admin := seedUser(t, f.userRepo, org.ID(), domain.RoleAdmin)
	bench := f.seedBench(t)

	program, _, err := f.svc.CreateProgram(context.Background(), admin.ID(), fullBodyInput(bench.ID()))
	if err != nil {
		t.Fatalf("CreateProgram() error = %v", err)
	}

	replacement := []SessionInput{
		{
			Name: "Full Body C", DayNumber: 1, OrderInProgram: 1,
			Exercises: []WorkoutExerciseInput{{ExerciseID: bench.ID(), Sets: 5, OrderInSession: 1}},
		},
	}
	updated, _, err := f.svc.UpdateProgramSessions(context.Background(), admin.ID(), program.ID(), replacement)
	if err != nil {
		t.Fatalf("UpdateProgramSessions() error = %v", err)
	}
	if updated.SessionCount() != 1 {
		t.Errorf("session count = %d, want 1", updated.SessionCount())
	}
	if updated.Sessions()[0].Name() != "Full Body C" {
		t.Errorf("session name = %q, want %q", updated.Sessions()[0].Name(), "Full Body C")
	}

	// Replacing with an empty list violates the at-least-one-session rule.
	if _, _, err := f.svc.UpdateProgramSessions(context.Background(), admin.ID(), program.ID(), nil); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("empty replacement error = %v, want ErrValidation", err)
	}
}

func TestDeleteProgram(t *testing.T) {
	f := newProgramFixture()
	org := seedOrg(t, f.orgRepo, true)
	member := seedUser(t, f.userRepo, org.ID(), domain.RoleUser)
	bench := f.seedBench(t)

	program, _, err := f.svc.CreateProgram(context.Background(), member.ID(), fullBodyInput(bench.ID()))
	if err != nil {
		t.Fatalf("CreateProgram() error = %v", err)
	}
	if err := f.svc.DeleteProgram(context.Background(), member.ID(), program.ID()); err != nil {
		t.Fatalf("DeleteProgram() error = %v", err)
	}
	if _, err := f.svc.GetProgramByID(context.Background(), member.ID(), program.ID()); !errors.Is(err, ErrProgramNotFound) {
		t.Errorf("get after delete error = %v, want ErrProgramNotFound", err)
	}
}
