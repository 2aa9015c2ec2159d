package domain

import (
	"errors"
	"testing"
	"time"
)

func mustWeekly(t *testing.T, daysPerWeek int, days []WeekDay) WeeklyStructure {
	t.Helper()
	w, err := NewWeeklyStructure(daysPerWeek, days)
	if err != nil {
		t.Fatalf("NewWeeklyStructure: %v", err)
	}
	return w
}

func mustCyclic(t *testing.T, on, off int) CyclicStructure {
	t.Helper()
	c, err := NewCyclicStructure(on, off)
	if err != nil {
		t.Fatalf("NewCyclicStructure: %v", err)
	}
	return c
}

// TestWeekDayOf verifies the Monday-first mapping from calendar dates.
func TestWeekDayOf(t *testing.T) {
	cases := []struct {
		date time.Time
		want WeekDay
	}{
		{time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), Monday},
		{time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC), Tuesday},
		{time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC), Saturday},
		{time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC), Sunday},
	}
	for _, tc := range cases {
		if got := WeekDayOf(tc.date); got != tc.want {
			t.Errorf("WeekDayOf(%s) = %s, want %s", tc.date.Format("2006-01-02"), got, tc.want)
		}
	}
}

// TestNewWeeklyStructureValidation verifies range, duplicate, and
// count-match checks.
func TestNewWeeklyStructureValidation(t *testing.T) {
	cases := []struct {
		name        string
		daysPerWeek int
		days        []WeekDay
		wantErr     bool
	}{
		{"valid 4 day", 4, []WeekDay{Monday, Tuesday, Thursday, Friday}, false},
		{"valid 7 day", 7, AllWeekDays(), false},
		{"too few days", 2, []WeekDay{Monday, Thursday}, true},
		{"too many days", 8, AllWeekDays(), true},
		{"count mismatch", 4, []WeekDay{Monday, Wednesday, Friday}, true},
		{"duplicate day", 3, []WeekDay{Monday, Monday, Friday}, true},
		{"invalid day code", 3, []WeekDay{Monday, "XYZ", Friday}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewWeeklyStructure(tc.daysPerWeek, tc.days)
			if tc.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Errorf("expected validation error, got %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// TestWeeklyGenerateSchedule verifies that a 4-day week starting Monday
// 2025-01-06 yields exactly the selected dates, rest days omitted.
func TestWeeklyGenerateSchedule(t *testing.T) {
	w := mustWeekly(t, 4, []WeekDay{Monday, Tuesday, Thursday, Friday})
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC) // a Monday

	schedule := w.GenerateSchedule(start, 1)
	wantDates := []int{6, 7, 9, 10}
	wantDays := []WeekDay{Monday, Tuesday, Thursday, Friday}
	if len(schedule) != len(wantDates) {
		t.Fatalf("schedule has %d entries, want %d", len(schedule), len(wantDates))
	}
	for i, entry := range schedule {
		if entry.Date.Day() != wantDates[i] || entry.Day != wantDays[i] {
			t.Errorf("entry %d = {%s %s}, want {Jan %d %s}",
				i, entry.Date.Format("2006-01-02"), entry.Day, wantDates[i], wantDays[i])
		}
	}

	// Four weeks scale linearly.
	if got := len(w.GenerateSchedule(start, 4)); got != 16 {
		t.Errorf("4-week schedule has %d entries, want 16", got)
	}

	// Starting mid-week only drops the days already past.
	thursday := time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC)
	fromThursday := w.GenerateSchedule(thursday, 1)
	if len(fromThursday) != 4 {
		t.Fatalf("mid-week schedule has %d entries, want 4", len(fromThursday))
	}
	if fromThursday[0].Day != Thursday || fromThursday[3].Day != Tuesday {
		t.Errorf("mid-week schedule spans %s..%s, want THU..TUE", fromThursday[0].Day, fromThursday[3].Day)
	}
}

// TestWeeklyStructureQueries verifies pattern rendering, rest days, and
// next-training-day wrap-around.
func TestWeeklyStructureQueries(t *testing.T) {
	w := mustWeekly(t, 3, []WeekDay{Friday, Monday, Wednesday})

	if got := w.WeeklyPattern(); got != "T-R-T-R-T-R-R" {
		t.Errorf("WeeklyPattern() = %q, want %q", got, "T-R-T-R-T-R-R")
	}
	ordered := w.OrderedDays()
	if len(ordered) != 3 || ordered[0] != Monday || ordered[1] != Wednesday || ordered[2] != Friday {
		t.Errorf("OrderedDays() = %v, want [MON WED FRI]", ordered)
	}
	rest := w.RestDays()
	if len(rest) != 4 || rest[0] != Tuesday || rest[3] != Sunday {
		t.Errorf("RestDays() = %v, want [TUE THU SAT SUN]", rest)
	}

	next, ok := w.NextTrainingDay(Friday)
	if !ok || next != Monday {
		t.Errorf("NextTrainingDay(FRI) = %s, want MON (wrap-around)", next)
	}
	next, ok = w.NextTrainingDay(Monday)
	if !ok || next != Wednesday {
		t.Errorf("NextTrainingDay(MON) = %s, want WED", next)
	}
}

// TestNewCyclicStructureValidation verifies on/off ranges, cycle-length
// cap, and the minimum implied frequency.
func TestNewCyclicStructureValidation(t *testing.T) {
	cases := []struct {
		name    string
		on, off int
		wantErr bool
	}{
		{"classic 3 on 1 off", 3, 1, false},
		{"2 on 1 off", 2, 1, false},
		{"6 on 3 off", 6, 3, false},
		{"zero on", 0, 1, true},
		{"too many on", 7, 1, true},
		{"zero off", 3, 0, true},
		{"too many off", 3, 4, true},
		{"frequency too low", 1, 2, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCyclicStructure(tc.on, tc.off)
			if tc.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Errorf("expected validation error, got %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// TestCyclicGenerateSchedule verifies that 3 on / 1 off over one week
// returns every calendar day with correct cycle positions and flags.
func TestCyclicGenerateSchedule(t *testing.T) {
	c := mustCyclic(t, 3, 1)
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	schedule := c.GenerateSchedule(start, 1)
	if len(schedule) != 7 {
		t.Fatalf("schedule has %d entries, want 7", len(schedule))
	}
	wantTraining := []bool{true, true, true, false, true, true, true}
	wantCycleDay := []int{1, 2, 3, 4, 1, 2, 3}
	for i, entry := range schedule {
		if entry.IsTraining != wantTraining[i] {
			t.Errorf("day %d IsTraining = %v, want %v", i, entry.IsTraining, wantTraining[i])
		}
		if entry.CycleDay != wantCycleDay[i] {
			t.Errorf("day %d CycleDay = %d, want %d", i, entry.CycleDay, wantCycleDay[i])
		}
		if want := start.AddDate(0, 0, i); !entry.Date.Equal(want) {
			t.Errorf("day %d Date = %s, want %s", i, entry.Date, want)
		}
	}
}

// TestCyclicStructureQueries verifies cycle arithmetic and pattern
// rendering.
func TestCyclicStructureQueries(t *testing.T) {
	c := mustCyclic(t, 3, 1)

	if got := c.CycleLength(); got != 4 {
		t.Errorf("CycleLength() = %d, want 4", got)
	}
	if got := c.WeeklyFrequency(); got != 5.25 {
		t.Errorf("WeeklyFrequency() = %v, want 5.25", got)
	}
	if got := c.CyclePattern(); got != "T-T-T-R" {
		t.Errorf("CyclePattern() = %q, want %q", got, "T-T-T-R")
	}
	if got := c.RestRatio(); got != 1.0/3.0 {
		t.Errorf("RestRatio() = %v, want 1/3", got)
	}

	for i, want := range []bool{true, true, true, false, true} {
		if got := c.IsTrainingDay(i); got != want {
			t.Errorf("IsTrainingDay(%d) = %v, want %v", i, got, want)
		}
	}

	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	if got := c.TrainingDaysInRange(start, start.AddDate(0, 0, 7)); got != 6 {
		t.Errorf("TrainingDaysInRange over 8 days = %d, want 6", got)
	}
	if got := c.TrainingDaysInRange(start, start); got != 1 {
		t.Errorf("TrainingDaysInRange over 1 day = %d, want 1", got)
	}
}

// TestValidateStructureForSplit verifies the frequency advisory for both
// structure kinds, including the half-day tolerance for cycles.
func TestValidateStructureForSplit(t *testing.T) {
	threeDay := mustWeekly(t, 3, []WeekDay{Monday, Wednesday, Friday})
	sixDay := mustWeekly(t, 6, []WeekDay{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday})
	twoOnOne := mustCyclic(t, 2, 1) // 4.67 days/week
	threeOnOne := mustCyclic(t, 3, 1)

	cases := []struct {
		name     string
		st       StructureType
		weekly   *WeeklyStructure
		cyclic   *CyclicStructure
		required int
		wantOK   bool
	}{
		{"weekly meets requirement", StructureWeekly, &sixDay, nil, 6, true},
		{"weekly under requirement", StructureWeekly, &threeDay, nil, 4, false},
		{"weekly missing config", StructureWeekly, nil, nil, 3, false},
		{"cyclic within tolerance", StructureCyclic, nil, &twoOnOne, 5, true},
		{"cyclic under tolerance", StructureCyclic, nil, &twoOnOne, 6, false},
		{"cyclic meets exactly", StructureCyclic, nil, &threeOnOne, 5, true},
		{"cyclic missing config", StructureCyclic, nil, nil, 3, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, reason := ValidateStructureForSplit(tc.st, tc.weekly, tc.cyclic, tc.required)
			if ok != tc.wantOK {
				t.Errorf("ok = %v (%q), want %v", ok, reason, tc.wantOK)
			}
			if !ok && reason == "" {
				t.Error("failed check should carry a reason")
			}
		})
	}
}

// TestSplitTypeFrequencies verifies the recommended weekly frequency per
// split.
func TestSplitTypeFrequencies(t *testing.T) {
	cases := []struct {
		split SplitType
		want  int
	}{
		{SplitUpperLower, 4},
		{SplitPushPullLegs, 6},
		{SplitFullBody, 3},
		{SplitBroSplit, 5},
		{SplitAnteriorPosterior, 4},
		{SplitCustom, 4},
	}
	for _, tc := range cases {
		if got := tc.split.TypicalFrequency(); got != tc.want {
			t.Errorf("%s TypicalFrequency() = %d, want %d", tc.split, got, tc.want)
		}
	}
}
