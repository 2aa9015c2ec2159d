package domain

import (
	"errors"
	"testing"
)

func mustOrg(t *testing.T) *Organization {
	t.Helper()
	org, err := NewOrganization("Iron Temple")
	if err != nil {
		t.Fatalf("NewOrganization() error = %v", err)
	}
	return org
}

func TestNewOrganizationDefaults(t *testing.T) {
	if _, err := NewOrganization("   "); !errors.Is(err, ErrValidation) {
		t.Errorf("blank name error = %v, want ErrValidation", err)
	}

	org := mustOrg(t)
	if org.SubscriptionTier() != TierFree {
		t.Errorf("tier = %q, want FREE", org.SubscriptionTier())
	}
	if org.SubscriptionStatus() != SubscriptionActive {
		t.Errorf("status = %q, want ACTIVE", org.SubscriptionStatus())
	}
	if org.CanCreateCustomExercises() || org.CanCreatePrograms() {
		t.Error("free tier must not grant Pro features")
	}
}

// Pro features require both the Pro tier and an active subscription; either
// one lapsing revokes them.
func TestSubscriptionLifecycle(t *testing.T) {
	org := mustOrg(t)

	org.UpgradeToPro()
	if !org.CanCreateCustomExercises() || !org.CanCreatePrograms() {
		t.Fatal("active Pro subscription should grant Pro features")
	}

	org.CancelSubscription()
	if org.CanCreatePrograms() {
		t.Error("canceled subscription must revoke Pro features")
	}
	if !org.IsPro() {
		t.Error("cancellation keeps the Pro tier until it expires")
	}

	org.ReactivateSubscription()
	if !org.CanCreatePrograms() {
		t.Error("reactivation should restore Pro features")
	}

	org.ExpireSubscription()
	if org.IsPro() {
		t.Error("expiry drops the organization to the free tier")
	}
	if org.CanCreatePrograms() {
		t.Error("expired subscription must revoke Pro features")
	}

	// Reactivate is a no-op once the tier fell back to free.
	org.ReactivateSubscription()
	if org.CanCreatePrograms() {
		t.Error("reactivating a free organization must not grant Pro features")
	}
}

func TestOrganizationRename(t *testing.T) {
	org := mustOrg(t)
	if err := org.UpdateName("  "); !errors.Is(err, ErrValidation) {
		t.Errorf("blank rename error = %v, want ErrValidation", err)
	}
	if err := org.UpdateName("  Steel City  "); err != nil {
		t.Fatalf("UpdateName() error = %v", err)
	}
	if org.Name() != "Steel City" {
		t.Errorf("name = %q, want trimmed new name", org.Name())
	}
}
