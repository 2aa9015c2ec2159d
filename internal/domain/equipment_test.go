package domain

import "testing"

// TestEquipmentClassifications verifies the free-weight and fixed-path
// flags across the closed set.
func TestEquipmentClassifications(t *testing.T) {
	cases := []struct {
		equipment  Equipment
		freeWeight bool
		fixedPath  bool
	}{
		{EquipmentBarbell, true, false},
		{EquipmentDumbbell, true, false},
		{EquipmentKettlebell, true, false},
		{EquipmentMachine, false, true},
		{EquipmentSmithMachine, false, true},
		{EquipmentCable, false, false},
		{EquipmentBodyweight, false, false},
		{EquipmentResistanceBand, false, false},
		{EquipmentOther, false, false},
	}
	for _, tc := range cases {
		if got := tc.equipment.IsFreeWeight(); got != tc.freeWeight {
			t.Errorf("%s.IsFreeWeight() = %v, want %v", tc.equipment, got, tc.freeWeight)
		}
		if got := tc.equipment.IsFixedPath(); got != tc.fixedPath {
			t.Errorf("%s.IsFixedPath() = %v, want %v", tc.equipment, got, tc.fixedPath)
		}
	}
}

// TestEquipmentDisplayNames spot-checks multi-word display names.
func TestEquipmentDisplayNames(t *testing.T) {
	if got := EquipmentSmithMachine.DisplayName(); got != "Smith Machine" {
		t.Errorf("SmithMachine.DisplayName() = %q, want %q", got, "Smith Machine")
	}
	if got := EquipmentResistanceBand.DisplayName(); got != "Resistance Band" {
		t.Errorf("ResistanceBand.DisplayName() = %q, want %q", got, "Resistance Band")
	}
}

// TestParseEquipment verifies parsing and rejection of unknown values.
func TestParseEquipment(t *testing.T) {
	if _, err := ParseEquipment("BARBELL"); err != nil {
		t.Errorf("ParseEquipment(BARBELL): %v", err)
	}
	if _, err := ParseEquipment("TRAP_BAR"); err == nil {
		t.Error("ParseEquipment(TRAP_BAR): expected error")
	}
	if got := len(AllEquipment()); got != 9 {
		t.Errorf("AllEquipment() has %d entries, want 9", got)
	}
}
