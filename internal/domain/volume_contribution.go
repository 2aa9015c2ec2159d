package domain

import "math"

// VolumeContribution is the fraction of a set that counts toward a targeted
// muscle's weekly volume. Only four levels exist; anything else is invalid.
//
// A 4-set bench press with CHEST at ContributionPrimary and TRICEPS at
// ContributionHigh credits 4.0 sets to chest and 3.0 to triceps.
type VolumeContribution float64

const (
	ContributionMinimal  VolumeContribution = 0.25 // tertiary involvement (e.g. triceps in rows)
	ContributionModerate VolumeContribution = 0.50 // secondary involvement (e.g. front delts in bench)
	ContributionHigh     VolumeContribution = 0.75 // strong secondary target (e.g. triceps in close-grip bench)
	ContributionPrimary  VolumeContribution = 1.00 // primary target muscle
)

var contributionDisplayNames = map[VolumeContribution]string{
	ContributionMinimal:  "Minimal (25%)",
	ContributionModerate: "Moderate (50%)",
	ContributionHigh:     "High (75%)",
	ContributionPrimary:  "Primary (100%)",
}

// IsValid reports whether c is one of the four defined levels.
func (c VolumeContribution) IsValid() bool {
	_, ok := contributionDisplayNames[c]
	return ok
}

// Value returns the raw fraction as a float64.
func (c VolumeContribution) Value() float64 {
	return float64(c)
}

// Percentage returns the contribution as an integer percentage (25-100).
func (c VolumeContribution) Percentage() int {
	return int(math.Round(float64(c) * 100))
}

// DisplayName returns the human-readable level name.
func (c VolumeContribution) DisplayName() string {
	if name, ok := contributionDisplayNames[c]; ok {
		return name
	}
	return "Unknown"
}

// Volume returns the effective volume for the given number of sets.
func (c VolumeContribution) Volume(sets int) float64 {
	return float64(sets) * float64(c)
}

// ContributionFromFloat maps a stored fraction back to a level. The value is
// rounded to two decimals first to absorb float round trips.
func ContributionFromFloat(v float64) (VolumeContribution, error) {
	c := VolumeContribution(math.Round(v*100) / 100)
	if !c.IsValid() {
		return 0, newValidationError("invalid contribution value %v: must be 0.25, 0.5, 0.75 or 1.0", v)
	}
	return c, nil
}

// ContributionFromPercentage maps an integer percentage (25/50/75/100) to a level.
func ContributionFromPercentage(pct int) (VolumeContribution, error) {
	switch pct {
	case 25:
		return ContributionMinimal, nil
	case 50:
		return ContributionModerate, nil
	case 75:
		return ContributionHigh, nil
	case 100:
		return ContributionPrimary, nil
	}
	return 0, newValidationError("invalid contribution percentage %d: must be 25, 50, 75 or 100", pct)
}

// AllContributionLevels returns the four levels in ascending order.
func AllContributionLevels() []VolumeContribution {
	return []VolumeContribution{
		ContributionMinimal,
		ContributionModerate,
		ContributionHigh,
		ContributionPrimary,
	}
}
