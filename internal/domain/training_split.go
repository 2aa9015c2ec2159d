package domain

import "strings"

// SplitType names how muscle groups are divided across sessions.
type SplitType string

const (
	SplitUpperLower        SplitType = "UPPER_LOWER"
	SplitPushPullLegs      SplitType = "PUSH_PULL_LEGS"
	SplitFullBody          SplitType = "FULL_BODY"
	SplitBroSplit          SplitType = "BRO_SPLIT"
	SplitAnteriorPosterior SplitType = "ANTERIOR_POSTERIOR"
	SplitCustom            SplitType = "CUSTOM"
)

var splitTypicalFrequency = map[SplitType]int{
	SplitUpperLower:        4, // ULUL pattern
	SplitPushPullLegs:      6, // PPL twice per week
	SplitFullBody:          3,
	SplitBroSplit:          5,
	SplitAnteriorPosterior: 4,
	SplitCustom:            4,
}

var splitDescriptions = map[SplitType]string{
	SplitUpperLower:        "Alternates between upper body and lower body training days, allowing focused work with adequate recovery.",
	SplitPushPullLegs:      "Separates training into pushing movements (chest, shoulders, triceps), pulling movements (back, biceps), and legs.",
	SplitFullBody:          "Trains all major muscle groups in each session, ideal for beginners or maintenance phases.",
	SplitBroSplit:          "Traditional bodybuilding split dedicating entire sessions to specific muscle groups (e.g., chest day, back day).",
	SplitAnteriorPosterior: "Divides training between anterior chain (front of body) and posterior chain (back of body) movements.",
	SplitCustom:            "User-defined split allowing complete customization of training structure.",
}

// AllSplitTypes returns every split type.
func AllSplitTypes() []SplitType {
	return []SplitType{
		SplitUpperLower, SplitPushPullLegs, SplitFullBody,
		SplitBroSplit, SplitAnteriorPosterior, SplitCustom,
	}
}

// IsValid reports whether s is a known split type.
func (s SplitType) IsValid() bool {
	_, ok := splitTypicalFrequency[s]
	return ok
}

// DisplayName returns a title-cased name, e.g. "Push Pull Legs".
func (s SplitType) DisplayName() string {
	words := strings.Split(strings.ToLower(string(s)), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// TypicalFrequency returns the recommended sessions per week for the split.
func (s SplitType) TypicalFrequency() int {
	return splitTypicalFrequency[s]
}

// Description returns the long-form explanation of the split.
func (s SplitType) Description() string {
	return splitDescriptions[s]
}

// ParseSplitType converts a stored string back into a SplitType.
func ParseSplitType(v string) (SplitType, error) {
	s := SplitType(v)
	if !s.IsValid() {
		return "", newValidationError("unknown split type %q", v)
	}
	return s, nil
}
