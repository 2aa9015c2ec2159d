package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role distinguishes regular members from administrators. Admins author
// global exercises and program templates.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// User is a member of an organization.
type User struct {
	entity

	email           string
	hashedPassword  string
	fullName        string
	organizationID  uuid.UUID
	role            Role
	isActive        bool
	isVerified      bool
	profileImageURL string
}

// NewUser validates and creates a user. The password must already be
// hashed; raw passwords never reach the domain layer.
func NewUser(email, hashedPassword, fullName string, organizationID uuid.UUID, role Role) (*User, error) {
	u := &User{
		entity:         newEntity(),
		email:          strings.ToLower(strings.TrimSpace(email)),
		hashedPassword: hashedPassword,
		fullName:       strings.TrimSpace(fullName),
		organizationID: organizationID,
		role:           role,
		isActive:       true,
	}
	if err := u.validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// ReconstructUser rebuilds a user from persisted state.
func ReconstructUser(
	id uuid.UUID,
	email, hashedPassword, fullName string,
	organizationID uuid.UUID,
	role Role,
	isActive, isVerified bool,
	profileImageURL string,
	createdAt, updatedAt time.Time,
) (*User, error) {
	u := &User{
		entity:          rehydratedEntity(id, createdAt, updatedAt),
		email:           strings.ToLower(strings.TrimSpace(email)),
		hashedPassword:  hashedPassword,
		fullName:        strings.TrimSpace(fullName),
		organizationID:  organizationID,
		role:            role,
		isActive:        isActive,
		isVerified:      isVerified,
		profileImageURL: profileImageURL,
	}
	if err := u.validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Email returns the user's email address.
func (u *User) Email() string { return u.email }

// HashedPassword returns the stored password hash.
func (u *User) HashedPassword() string { return u.hashedPassword }

// FullName returns the user's full name.
func (u *User) FullName() string { return u.fullName }

// OrganizationID returns the organization the user belongs to.
func (u *User) OrganizationID() uuid.UUID { return u.organizationID }

// Role returns the user's role.
func (u *User) Role() Role { return u.role }

// IsActive reports whether the account is active.
func (u *User) IsActive() bool { return u.isActive }

// IsVerified reports whether the email has been verified.
func (u *User) IsVerified() bool { return u.isVerified }

// ProfileImageURL returns the profile image URL, empty if unset.
func (u *User) ProfileImageURL() string { return u.profileImageURL }

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool { return u.role == RoleAdmin }

// Activate enables the account.
func (u *User) Activate() {
	u.isActive = true
	u.touch()
}

// Deactivate disables the account.
func (u *User) Deactivate() {
	u.isActive = false
	u.touch()
}

// VerifyEmail marks the email as verified.
func (u *User) VerifyEmail() {
	u.isVerified = true
	u.touch()
}

// UpdatePassword replaces the stored password hash.
func (u *User) UpdatePassword(hashedPassword string) error {
	if len(hashedPassword) < 20 {
		return newValidationError("invalid hashed password")
	}
	u.hashedPassword = hashedPassword
	u.touch()
	return nil
}

// UserProfileUpdate carries optional new values for UpdateProfile.
type UserProfileUpdate struct {
	FullName        *string
	Email           *string
	ProfileImageURL *string
}

// UpdateProfile applies the non-nil fields. Changing the email resets the
// verified flag.
func (u *User) UpdateProfile(update UserProfileUpdate) error {
	candidate := *u
	if update.FullName != nil {
		candidate.fullName = strings.TrimSpace(*update.FullName)
	}
	if update.Email != nil {
		candidate.email = strings.ToLower(strings.TrimSpace(*update.Email))
		candidate.isVerified = false
	}
	if update.ProfileImageURL != nil {
		candidate.profileImageURL = *update.ProfileImageURL
	}
	if err := candidate.validate(); err != nil {
		return err
	}
	*u = candidate
	u.touch()
	return nil
}

// PromoteToAdmin grants the admin role.
func (u *User) PromoteToAdmin() {
	u.role = RoleAdmin
	u.touch()
}

// DemoteToUser revokes the admin role.
func (u *User) DemoteToUser() {
	u.role = RoleUser
	u.touch()
}

func (u *User) validate() error {
	if !emailPattern.MatchString(u.email) {
		return newValidationError("invalid email address %q", u.email)
	}
	if u.fullName == "" {
		return newValidationError("full name cannot be empty")
	}
	if len(u.hashedPassword) < 20 {
		return newValidationError("invalid hashed password")
	}
	if u.organizationID == uuid.Nil {
		return newValidationError("user must belong to an organization")
	}
	if !u.role.IsValid() {
		return newValidationError("unknown role %q", string(u.role))
	}
	return nil
}
