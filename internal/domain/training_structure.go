package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// StructureType distinguishes the two scheduling strategies a program can use.
type StructureType string

const (
	// StructureWeekly trains on fixed days of the week (e.g. Mon/Wed/Fri).
	StructureWeekly StructureType = "WEEKLY"
	// StructureCyclic trains on a rotating on/off pattern (e.g. 3 on, 1 off).
	StructureCyclic StructureType = "CYCLIC"
)

// IsValid reports whether t is a known structure type.
func (t StructureType) IsValid() bool {
	return t == StructureWeekly || t == StructureCyclic
}

// ParseStructureType converts a stored string back into a StructureType.
func ParseStructureType(v string) (StructureType, error) {
	t := StructureType(v)
	if !t.IsValid() {
		return "", newValidationError("unknown structure type %q", v)
	}
	return t, nil
}

// WeekDay is a canonical three-letter weekday code, Monday first.
type WeekDay string

const (
	Monday    WeekDay = "MON"
	Tuesday   WeekDay = "TUE"
	Wednesday WeekDay = "WED"
	Thursday  WeekDay = "THU"
	Friday    WeekDay = "FRI"
	Saturday  WeekDay = "SAT"
	Sunday    WeekDay = "SUN"
)

var weekDaysInOrder = []WeekDay{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekDayFullNames = map[WeekDay]string{
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
	Sunday:    "Sunday",
}

// AllWeekDays returns the seven day codes, Monday first.
func AllWeekDays() []WeekDay {
	out := make([]WeekDay, len(weekDaysInOrder))
	copy(out, weekDaysInOrder)
	return out
}

// IsValid reports whether d is one of the seven day codes.
func (d WeekDay) IsValid() bool {
	_, ok := weekDayFullNames[d]
	return ok
}

// FullName returns the full day name, e.g. "Wednesday".
func (d WeekDay) FullName() string {
	return weekDayFullNames[d]
}

// Index returns the Monday-first weekday index (MON=0 .. SUN=6).
func (d WeekDay) Index() int {
	for i, day := range weekDaysInOrder {
		if day == d {
			return i
		}
	}
	return 0
}

// WeekDayOf maps a calendar date to its day code. time.Weekday counts from
// Sunday, so the index is rotated to keep Monday first.
func WeekDayOf(t time.Time) WeekDay {
	return weekDaysInOrder[(int(t.Weekday())+6)%7]
}

// ParseWeekDay converts a stored string back into a WeekDay.
func ParseWeekDay(v string) (WeekDay, error) {
	d := WeekDay(v)
	if !d.IsValid() {
		return "", newValidationError("invalid day %q: must be one of MON, TUE, WED, THU, FRI, SAT, SUN", v)
	}
	return d, nil
}

// WeeklyScheduleEntry is one training day produced by a WeeklyStructure.
// Weekly schedules contain training days only; rest days are omitted.
type WeeklyScheduleEntry struct {
	Date time.Time
	Day  WeekDay
}

// WeeklyStructure is an immutable schedule pattern of fixed weekdays.
type WeeklyStructure struct {
	daysPerWeek  int
	selectedDays []WeekDay
}

// NewWeeklyStructure validates and builds a weekly structure. daysPerWeek
// must be 3-7 and selectedDays must contain exactly that many distinct
// valid day codes.
func NewWeeklyStructure(daysPerWeek int, selectedDays []WeekDay) (WeeklyStructure, error) {
	if daysPerWeek < 3 || daysPerWeek > 7 {
		return WeeklyStructure{}, newValidationError("days_per_week must be between 3 and 7, got %d", daysPerWeek)
	}
	seen := make(map[WeekDay]bool, len(selectedDays))
	for _, d := range selectedDays {
		if !d.IsValid() {
			return WeeklyStructure{}, newValidationError("invalid day %q: must be one of MON, TUE, WED, THU, FRI, SAT, SUN", string(d))
		}
		if seen[d] {
			return WeeklyStructure{}, newValidationError("selected days must not contain duplicates (%s repeated)", d)
		}
		seen[d] = true
	}
	if len(selectedDays) != daysPerWeek {
		return WeeklyStructure{}, newValidationError(
			"number of selected days (%d) must match days_per_week (%d)", len(selectedDays), daysPerWeek)
	}
	days := make([]WeekDay, len(selectedDays))
	copy(days, selectedDays)
	return WeeklyStructure{daysPerWeek: daysPerWeek, selectedDays: days}, nil
}

// DaysPerWeek returns the configured training days per week.
func (w WeeklyStructure) DaysPerWeek() int {
	return w.daysPerWeek
}

// SelectedDays returns the training days as configured.
func (w WeeklyStructure) SelectedDays() []WeekDay {
	out := make([]WeekDay, len(w.selectedDays))
	copy(out, w.selectedDays)
	return out
}

// OrderedDays returns the selected days sorted into week order, Monday first.
func (w WeeklyStructure) OrderedDays() []WeekDay {
	out := w.SelectedDays()
	sort.Slice(out, func(i, j int) bool { return out[i].Index() < out[j].Index() })
	return out
}

// RestDays returns the weekdays not selected for training, in week order.
func (w WeeklyStructure) RestDays() []WeekDay {
	var out []WeekDay
	for _, d := range weekDaysInOrder {
		if !w.IsTrainingDay(d) {
			out = append(out, d)
		}
	}
	return out
}

// IsTrainingDay reports whether the given weekday is a training day.
func (w WeeklyStructure) IsTrainingDay(day WeekDay) bool {
	for _, d := range w.selectedDays {
		if d == day {
			return true
		}
	}
	return false
}

// NextTrainingDay returns the first training day strictly after the given
// day, wrapping around the week.
func (w WeeklyStructure) NextTrainingDay(current WeekDay) (WeekDay, bool) {
	if !current.IsValid() {
		return "", false
	}
	idx := current.Index()
	for i := 1; i <= 7; i++ {
		next := weekDaysInOrder[(idx+i)%7]
		if w.IsTrainingDay(next) {
			return next, true
		}
	}
	return "", false
}

// GenerateSchedule lists every training day in [start, start+weeks*7d).
// Rest days are omitted: a weekly pattern already tells the caller which
// days exist, so only the dates that carry a session are returned.
func (w WeeklyStructure) GenerateSchedule(start time.Time, weeks int) []WeeklyScheduleEntry {
	var schedule []WeeklyScheduleEntry
	totalDays := weeks * 7
	for i := 0; i < totalDays; i++ {
		date := start.AddDate(0, 0, i)
		day := WeekDayOf(date)
		if w.IsTrainingDay(day) {
			schedule = append(schedule, WeeklyScheduleEntry{Date: date, Day: day})
		}
	}
	return schedule
}

// WeeklyPattern renders the full week as e.g. "T-R-T-R-T-R-R".
func (w WeeklyStructure) WeeklyPattern() string {
	parts := make([]string, 0, 7)
	for _, d := range weekDaysInOrder {
		if w.IsTrainingDay(d) {
			parts = append(parts, "T")
		} else {
			parts = append(parts, "R")
		}
	}
	return strings.Join(parts, "-")
}

// CycleScheduleEntry is one calendar day produced by a CyclicStructure.
// Unlike the weekly variant, rest days are included with IsTraining=false:
// cyclic consumers need rest dates visible to compute cycle position.
type CycleScheduleEntry struct {
	Date       time.Time
	CycleDay   int // 1-indexed position within the cycle
	IsTraining bool
}

// CyclicStructure is an immutable rotating on/off schedule pattern.
type CyclicStructure struct {
	daysOn  int
	daysOff int
}

// NewCyclicStructure validates and builds a cyclic structure. daysOn must be
// 1-6 and daysOff 1-3; the combined cycle must stay within 9 days and imply
// at least 3 training days per week on average.
func NewCyclicStructure(daysOn, daysOff int) (CyclicStructure, error) {
	if daysOn < 1 {
		return CyclicStructure{}, newValidationError("days_on must be at least 1, got %d", daysOn)
	}
	if daysOn > 6 {
		return CyclicStructure{}, newValidationError("days_on should not exceed 6 for proper recovery, got %d", daysOn)
	}
	if daysOff < 1 {
		return CyclicStructure{}, newValidationError("days_off must be at least 1, got %d", daysOff)
	}
	if daysOff > 3 {
		return CyclicStructure{}, newValidationError("days_off should not exceed 3 to maintain training frequency, got %d", daysOff)
	}
	cycleLength := daysOn + daysOff
	if cycleLength > 9 {
		return CyclicStructure{}, newValidationError(
			"total cycle length (%d days) is too long; consider a weekly structure instead", cycleLength)
	}
	frequency := float64(daysOn) / float64(cycleLength) * 7
	if frequency < 3 {
		return CyclicStructure{}, newValidationError(
			"this cycle results in only %.1f training days per week; minimum 3 recommended for hypertrophy", frequency)
	}
	return CyclicStructure{daysOn: daysOn, daysOff: daysOff}, nil
}

// DaysOn returns the consecutive training days per cycle.
func (c CyclicStructure) DaysOn() int {
	return c.daysOn
}

// DaysOff returns the consecutive rest days per cycle.
func (c CyclicStructure) DaysOff() int {
	return c.daysOff
}

// CycleLength returns the total days in one cycle.
func (c CyclicStructure) CycleLength() int {
	return c.daysOn + c.daysOff
}

// WeeklyFrequency returns the average training days per week implied by
// the cycle.
func (c CyclicStructure) WeeklyFrequency() float64 {
	return float64(c.daysOn) / float64(c.CycleLength()) * 7
}

// IsTrainingDay reports whether the zero-indexed day within the running
// schedule falls on a training day of the cycle.
func (c CyclicStructure) IsTrainingDay(dayIndex int) bool {
	return dayIndex%c.CycleLength() < c.daysOn
}

// GenerateSchedule lists every calendar day in [start, start+weeks*7d) with
// its 1-indexed cycle position and training flag.
func (c CyclicStructure) GenerateSchedule(start time.Time, weeks int) []CycleScheduleEntry {
	totalDays := weeks * 7
	schedule := make([]CycleScheduleEntry, 0, totalDays)
	for i := 0; i < totalDays; i++ {
		schedule = append(schedule, CycleScheduleEntry{
			Date:       start.AddDate(0, 0, i),
			CycleDay:   i%c.CycleLength() + 1,
			IsTraining: c.IsTrainingDay(i),
		})
	}
	return schedule
}

// TrainingDaysInRange counts the training days between start and end
// inclusive, assuming the cycle begins on start.
func (c CyclicStructure) TrainingDaysInRange(start, end time.Time) int {
	totalDays := int(end.Sub(start).Hours()/24) + 1
	if totalDays <= 0 {
		return 0
	}
	fullCycles := totalDays / c.CycleLength()
	remaining := totalDays % c.CycleLength()
	count := fullCycles * c.daysOn
	if remaining < c.daysOn {
		count += remaining
	} else {
		count += c.daysOn
	}
	return count
}

// CyclePattern renders one cycle as e.g. "T-T-T-R".
func (c CyclicStructure) CyclePattern() string {
	parts := make([]string, 0, c.CycleLength())
	for i := 0; i < c.daysOn; i++ {
		parts = append(parts, "T")
	}
	for i := 0; i < c.daysOff; i++ {
		parts = append(parts, "R")
	}
	return strings.Join(parts, "-")
}

// RestRatio returns the ratio of rest days to training days per cycle.
func (c CyclicStructure) RestRatio() float64 {
	return float64(c.daysOff) / float64(c.daysOn)
}

// ValidateStructureForSplit checks, as an advisory, whether a structure's
// implied training frequency supports a split's recommended frequency.
// Weekly structures must offer at least the required days; cyclic
// structures may undershoot by up to half a day per week on average.
func ValidateStructureForSplit(structureType StructureType, weekly *WeeklyStructure, cyclic *CyclicStructure, requiredFrequency int) (bool, string) {
	switch structureType {
	case StructureWeekly:
		if weekly == nil {
			return false, "structure config must be a weekly structure for WEEKLY type"
		}
		if weekly.DaysPerWeek() < requiredFrequency {
			return false, fmt.Sprintf(
				"weekly structure has %d days but split requires %d days per week",
				weekly.DaysPerWeek(), requiredFrequency)
		}
	case StructureCyclic:
		if cyclic == nil {
			return false, "structure config must be a cyclic structure for CYCLIC type"
		}
		avg := cyclic.WeeklyFrequency()
		if avg < float64(requiredFrequency)-0.5 {
			return false, fmt.Sprintf(
				"cyclic structure averages %.1f days/week but split requires approximately %d days per week",
				avg, requiredFrequency)
		}
	}
	return true, ""
}
