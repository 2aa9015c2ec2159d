package domain

// MuscleGroup identifies one of the 17 muscle groups tracked for
// hypertrophy volume. Exercises contribute fractionally (0.25, 0.5,
// 0.75, 1.0) to each group they target.
type MuscleGroup string

const (
	// Upper body - push
	MuscleChest      MuscleGroup = "CHEST"
	MuscleFrontDelts MuscleGroup = "FRONT_DELTS"
	MuscleSideDelts  MuscleGroup = "SIDE_DELTS"
	MuscleRearDelts  MuscleGroup = "REAR_DELTS"
	MuscleTriceps    MuscleGroup = "TRICEPS"

	// Upper body - pull
	MuscleLats           MuscleGroup = "LATS"
	MuscleTrapsRhomboids MuscleGroup = "TRAPS_RHOMBOIDS"
	MuscleElbowFlexors   MuscleGroup = "ELBOW_FLEXORS" // biceps, brachialis, brachioradialis
	MuscleForearms       MuscleGroup = "FOREARMS"

	// Core & posterior chain
	MuscleSpinalErectors MuscleGroup = "SPINAL_ERECTORS"
	MuscleAbs            MuscleGroup = "ABS"
	MuscleObliques       MuscleGroup = "OBLIQUES"

	// Lower body
	MuscleGlutes     MuscleGroup = "GLUTES"
	MuscleQuadriceps MuscleGroup = "QUADRICEPS"
	MuscleHamstrings MuscleGroup = "HAMSTRINGS"
	MuscleAdductors  MuscleGroup = "ADDUCTORS"
	MuscleCalves     MuscleGroup = "CALVES"
)

// Anatomical categories used for grouping in the UI and for split layouts.
const (
	CategoryUpperPush     = "Upper Push"
	CategoryUpperPull     = "Upper Pull"
	CategoryCorePosterior = "Core & Posterior"
	CategoryLowerBody     = "Lower Body"
)

// allMuscleGroups fixes the canonical ordering of the closed set.
var allMuscleGroups = []MuscleGroup{
	MuscleChest, MuscleFrontDelts, MuscleSideDelts, MuscleRearDelts, MuscleTriceps,
	MuscleLats, MuscleTrapsRhomboids, MuscleElbowFlexors, MuscleForearms,
	MuscleSpinalErectors, MuscleAbs, MuscleObliques,
	MuscleGlutes, MuscleQuadriceps, MuscleHamstrings, MuscleAdductors, MuscleCalves,
}

var muscleDisplayNames = map[MuscleGroup]string{
	MuscleChest:          "Chest",
	MuscleFrontDelts:     "Front Delts",
	MuscleSideDelts:      "Side Delts",
	MuscleRearDelts:      "Rear Delts",
	MuscleTriceps:        "Triceps",
	MuscleLats:           "Lats",
	MuscleTrapsRhomboids: "Traps & Rhomboids",
	MuscleElbowFlexors:   "Elbow Flexors (Biceps)",
	MuscleForearms:       "Forearms",
	MuscleSpinalErectors: "Spinal Erectors",
	MuscleAbs:            "Abs",
	MuscleObliques:       "Obliques",
	MuscleGlutes:         "Glutes",
	MuscleQuadriceps:     "Quadriceps",
	MuscleHamstrings:     "Hamstrings",
	MuscleAdductors:      "Adductors",
	MuscleCalves:         "Calves",
}

var muscleCategories = map[MuscleGroup]string{
	MuscleChest:          CategoryUpperPush,
	MuscleFrontDelts:     CategoryUpperPush,
	MuscleSideDelts:      CategoryUpperPush,
	MuscleRearDelts:      CategoryUpperPull,
	MuscleTriceps:        CategoryUpperPush,
	MuscleLats:           CategoryUpperPull,
	MuscleTrapsRhomboids: CategoryUpperPull,
	MuscleElbowFlexors:   CategoryUpperPull,
	MuscleForearms:       CategoryUpperPull,
	MuscleSpinalErectors: CategoryCorePosterior,
	MuscleAbs:            CategoryCorePosterior,
	MuscleObliques:       CategoryCorePosterior,
	MuscleGlutes:         CategoryLowerBody,
	MuscleQuadriceps:     CategoryLowerBody,
	MuscleHamstrings:     CategoryLowerBody,
	MuscleAdductors:      CategoryLowerBody,
	MuscleCalves:         CategoryLowerBody,
}

// AllMuscleGroups returns every muscle group in canonical order.
func AllMuscleGroups() []MuscleGroup {
	out := make([]MuscleGroup, len(allMuscleGroups))
	copy(out, allMuscleGroups)
	return out
}

// IsValid reports whether m is one of the 17 known muscle groups.
func (m MuscleGroup) IsValid() bool {
	_, ok := muscleDisplayNames[m]
	return ok
}

// DisplayName returns the human-readable name (e.g. "Traps & Rhomboids").
func (m MuscleGroup) DisplayName() string {
	if name, ok := muscleDisplayNames[m]; ok {
		return name
	}
	return string(m)
}

// Category returns the anatomical category for the muscle group.
func (m MuscleGroup) Category() string {
	return muscleCategories[m]
}

// ParseMuscleGroup converts a stored string back into a MuscleGroup.
func ParseMuscleGroup(s string) (MuscleGroup, error) {
	m := MuscleGroup(s)
	if !m.IsValid() {
		return "", newValidationError("unknown muscle group %q", s)
	}
	return m, nil
}

// MuscleGroupsByCategory returns all muscle groups in the given category,
// in canonical order.
func MuscleGroupsByCategory(category string) []MuscleGroup {
	var out []MuscleGroup
	for _, m := range allMuscleGroups {
		if muscleCategories[m] == category {
			out = append(out, m)
		}
	}
	return out
}

// UpperBodyMuscleGroups returns push and pull upper-body groups.
func UpperBodyMuscleGroups() []MuscleGroup {
	var out []MuscleGroup
	for _, m := range allMuscleGroups {
		if c := muscleCategories[m]; c == CategoryUpperPush || c == CategoryUpperPull {
			out = append(out, m)
		}
	}
	return out
}

// LowerBodyMuscleGroups returns the lower-body groups.
func LowerBodyMuscleGroups() []MuscleGroup {
	return MuscleGroupsByCategory(CategoryLowerBody)
}
