package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// SubscriptionTier is the organization's plan level. Creating custom
// exercises and training programs is gated on the Pro tier.
type SubscriptionTier string

const (
	TierFree SubscriptionTier = "FREE"
	TierPro  SubscriptionTier = "PRO"
)

// SubscriptionStatus tracks the lifecycle of a paid subscription.
type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "ACTIVE"
	SubscriptionCanceled SubscriptionStatus = "CANCELED"
	SubscriptionExpired  SubscriptionStatus = "EXPIRED"
)

// Organization is the tenant boundary: users, exercises, and programs all
// belong to exactly one organization (or are global/template resources
// belonging to none).
type Organization struct {
	entity

	name               string
	subscriptionTier   SubscriptionTier
	subscriptionStatus SubscriptionStatus
}

// NewOrganization creates a free-tier organization.
func NewOrganization(name string) (*Organization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, newValidationError("organization name cannot be empty")
	}
	return &Organization{
		entity:             newEntity(),
		name:               name,
		subscriptionTier:   TierFree,
		subscriptionStatus: SubscriptionActive,
	}, nil
}

// ReconstructOrganization rebuilds an organization from persisted state.
func ReconstructOrganization(id uuid.UUID, name string, tier SubscriptionTier, status SubscriptionStatus, createdAt, updatedAt time.Time) (*Organization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, newValidationError("organization name cannot be empty")
	}
	return &Organization{
		entity:             rehydratedEntity(id, createdAt, updatedAt),
		name:               name,
		subscriptionTier:   tier,
		subscriptionStatus: status,
	}, nil
}

// Name returns the organization name.
func (o *Organization) Name() string { return o.name }

// SubscriptionTier returns the current plan level.
func (o *Organization) SubscriptionTier() SubscriptionTier { return o.subscriptionTier }

// SubscriptionStatus returns the current subscription status.
func (o *Organization) SubscriptionStatus() SubscriptionStatus { return o.subscriptionStatus }

// IsPro reports whether the organization is on the Pro tier.
func (o *Organization) IsPro() bool {
	return o.subscriptionTier == TierPro
}

// IsSubscriptionActive reports whether the subscription is active.
func (o *Organization) IsSubscriptionActive() bool {
	return o.subscriptionStatus == SubscriptionActive
}

// CanCreateCustomExercises reports whether members may create org-owned
// exercises (Pro feature).
func (o *Organization) CanCreateCustomExercises() bool {
	return o.IsPro() && o.IsSubscriptionActive()
}

// CanCreatePrograms reports whether members may create training programs
// (Pro feature).
func (o *Organization) CanCreatePrograms() bool {
	return o.IsPro() && o.IsSubscriptionActive()
}

// UpdateName renames the organization.
func (o *Organization) UpdateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return newValidationError("organization name cannot be empty")
	}
	o.name = name
	o.touch()
	return nil
}

// UpgradeToPro moves the organization to the Pro tier with an active
// subscription.
func (o *Organization) UpgradeToPro() {
	o.subscriptionTier = TierPro
	o.subscriptionStatus = SubscriptionActive
	o.touch()
}

// DowngradeToFree returns the organization to the free tier.
func (o *Organization) DowngradeToFree() {
	o.subscriptionTier = TierFree
	o.subscriptionStatus = SubscriptionActive
	o.touch()
}

// CancelSubscription marks the subscription canceled. Pro features remain
// gated on status, so this revokes them.
func (o *Organization) CancelSubscription() {
	o.subscriptionStatus = SubscriptionCanceled
	o.touch()
}

// ExpireSubscription marks the subscription expired and drops to free.
func (o *Organization) ExpireSubscription() {
	o.subscriptionStatus = SubscriptionExpired
	o.subscriptionTier = TierFree
	o.touch()
}

// ReactivateSubscription restores an interrupted Pro subscription.
func (o *Organization) ReactivateSubscription() {
	if o.subscriptionTier == TierPro {
		o.subscriptionStatus = SubscriptionActive
		o.touch()
	}
}
