package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

const testHash = "$2a$10$abcdefghijklmnopqrstuv" // shape only, never verified

func mustUser(t *testing.T) *User {
	t.Helper()
	u, err := NewUser("Alice@Example.com", testHash, "  Alice Smith  ", uuid.New(), RoleUser)
	if err != nil {
		t.Fatalf("NewUser() error = %v", err)
	}
	return u
}

func TestNewUserValidation(t *testing.T) {
	orgID := uuid.New()
	tests := []struct {
		name    string
		email   string
		hash    string
		full    string
		org     uuid.UUID
		role    Role
		wantErr bool
	}{
		{"valid", "a@b.co", testHash, "Alice", orgID, RoleUser, false},
		{"valid admin", "a@b.co", testHash, "Alice", orgID, RoleAdmin, false},
		{"bad email", "not-an-email", testHash, "Alice", orgID, RoleUser, true},
		{"empty name", "a@b.co", testHash, "   ", orgID, RoleUser, true},
		{"short hash", "a@b.co", "tooshort", "Alice", orgID, RoleUser, true},
		{"no organization", "a@b.co", testHash, "Alice", uuid.Nil, RoleUser, true},
		{"unknown role", "a@b.co", testHash, "Alice", orgID, Role("OWNER"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUser(tt.email, tt.hash, tt.full, tt.org, tt.role)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewUser() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrValidation) {
				t.Errorf("error %v is not ErrValidation", err)
			}
		})
	}
}

func TestNewUserNormalizes(t *testing.T) {
	u := mustUser(t)
	if u.Email() != "alice@example.com" {
		t.Errorf("email = %q, want lowercased and trimmed", u.Email())
	}
	if u.FullName() != "Alice Smith" {
		t.Errorf("full name = %q, want trimmed", u.FullName())
	}
	if !u.IsActive() {
		t.Error("new users should start active")
	}
	if u.IsVerified() {
		t.Error("new users should start unverified")
	}
}

func TestUserActivation(t *testing.T) {
	u := mustUser(t)
	u.Deactivate()
	if u.IsActive() {
		t.Error("Deactivate() left the account active")
	}
	u.Activate()
	if !u.IsActive() {
		t.Error("Activate() left the account inactive")
	}
}

// Changing the email address must reset the verified flag: the new address
// has not been confirmed.
func TestUpdateProfileEmailResetsVerification(t *testing.T) {
	u := mustUser(t)
	u.VerifyEmail()
	if !u.IsVerified() {
		t.Fatal("VerifyEmail() had no effect")
	}

	newEmail := "Alice.New@Example.com"
	if err := u.UpdateProfile(UserProfileUpdate{Email: &newEmail}); err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if u.Email() != "alice.new@example.com" {
		t.Errorf("email = %q, want normalized new address", u.Email())
	}
	if u.IsVerified() {
		t.Error("email change must reset the verified flag")
	}
}

func TestUpdateProfileRejectsInvalid(t *testing.T) {
	u := mustUser(t)
	bad := "not-an-email"
	if err := u.UpdateProfile(UserProfileUpdate{Email: &bad}); !errors.Is(err, ErrValidation) {
		t.Errorf("UpdateProfile() error = %v, want ErrValidation", err)
	}
	if u.Email() != "alice@example.com" {
		t.Errorf("failed update changed the email to %q", u.Email())
	}
}

func TestUpdatePassword(t *testing.T) {
	u := mustUser(t)
	if err := u.UpdatePassword("short"); !errors.Is(err, ErrValidation) {
		t.Errorf("UpdatePassword(short) error = %v, want ErrValidation", err)
	}
	newHash := "$2a$10$zyxwvutsrqponmlkjihgfe"
	if err := u.UpdatePassword(newHash); err != nil {
		t.Fatalf("UpdatePassword() error = %v", err)
	}
	if u.HashedPassword() != newHash {
		t.Error("UpdatePassword() did not store the new hash")
	}
}

func TestRolePromotion(t *testing.T) {
	u := mustUser(t)
	if u.IsAdmin() {
		t.Fatal("new user should not be an admin")
	}
	u.PromoteToAdmin()
	if !u.IsAdmin() {
		t.Error("PromoteToAdmin() had no effect")
	}
	u.DemoteToUser()
	if u.IsAdmin() {
		t.Error("DemoteToUser() had no effect")
	}
}
