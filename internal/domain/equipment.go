package domain

// Equipment identifies the primary equipment an exercise is performed with.
// It drives filtering and exercise organization, not volume math.
type Equipment string

const (
	EquipmentBarbell        Equipment = "BARBELL"
	EquipmentDumbbell       Equipment = "DUMBBELL"
	EquipmentCable          Equipment = "CABLE"
	EquipmentMachine        Equipment = "MACHINE"
	EquipmentSmithMachine   Equipment = "SMITH_MACHINE"
	EquipmentBodyweight     Equipment = "BODYWEIGHT"
	EquipmentKettlebell     Equipment = "KETTLEBELL"
	EquipmentResistanceBand Equipment = "RESISTANCE_BAND"
	EquipmentOther          Equipment = "OTHER"
)

var allEquipment = []Equipment{
	EquipmentBarbell, EquipmentDumbbell, EquipmentCable, EquipmentMachine,
	EquipmentSmithMachine, EquipmentBodyweight, EquipmentKettlebell,
	EquipmentResistanceBand, EquipmentOther,
}

var equipmentDisplayNames = map[Equipment]string{
	EquipmentBarbell:        "Barbell",
	EquipmentDumbbell:       "Dumbbell",
	EquipmentCable:          "Cable",
	EquipmentMachine:        "Machine",
	EquipmentSmithMachine:   "Smith Machine",
	EquipmentBodyweight:     "Bodyweight",
	EquipmentKettlebell:     "Kettlebell",
	EquipmentResistanceBand: "Resistance Band",
	EquipmentOther:          "Other",
}

// AllEquipment returns every equipment type in canonical order.
func AllEquipment() []Equipment {
	out := make([]Equipment, len(allEquipment))
	copy(out, allEquipment)
	return out
}

// IsValid reports whether e is one of the known equipment types.
func (e Equipment) IsValid() bool {
	_, ok := equipmentDisplayNames[e]
	return ok
}

// DisplayName returns the human-readable name (e.g. "Smith Machine").
func (e Equipment) DisplayName() string {
	if name, ok := equipmentDisplayNames[e]; ok {
		return name
	}
	return string(e)
}

// IsFreeWeight reports whether the equipment requires the lifter to
// stabilize the load (barbells, dumbbells, kettlebells).
func (e Equipment) IsFreeWeight() bool {
	switch e {
	case EquipmentBarbell, EquipmentDumbbell, EquipmentKettlebell:
		return true
	}
	return false
}

// IsFixedPath reports whether the equipment constrains the movement path
// (machines and Smith machines).
func (e Equipment) IsFixedPath() bool {
	return e == EquipmentMachine || e == EquipmentSmithMachine
}

// ParseEquipment converts a stored string back into an Equipment value.
func ParseEquipment(s string) (Equipment, error) {
	e := Equipment(s)
	if !e.IsValid() {
		return "", newValidationError("unknown equipment type %q", s)
	}
	return e, nil
}

// FreeWeightEquipment returns all free-weight equipment types.
func FreeWeightEquipment() []Equipment {
	var out []Equipment
	for _, e := range allEquipment {
		if e.IsFreeWeight() {
			out = append(out, e)
		}
	}
	return out
}

// HomeGymEquipment returns the equipment typically available at home.
func HomeGymEquipment() []Equipment {
	return []Equipment{
		EquipmentDumbbell,
		EquipmentBodyweight,
		EquipmentKettlebell,
		EquipmentResistanceBand,
	}
}
