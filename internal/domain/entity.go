package domain

import (
	"time"

	"github.com/google/uuid"
)

// entity carries the identity and timestamps shared by all aggregates.
// Embedded unexported so entities expose them through accessors only.
type entity struct {
	id        uuid.UUID
	createdAt time.Time
	updatedAt time.Time
}

func newEntity() entity {
	now := time.Now().UTC()
	return entity{id: uuid.New(), createdAt: now, updatedAt: now}
}

// rehydratedEntity rebuilds identity state from persisted values.
func rehydratedEntity(id uuid.UUID, createdAt, updatedAt time.Time) entity {
	return entity{id: id, createdAt: createdAt, updatedAt: updatedAt}
}

// ID returns the entity's unique identifier.
func (e *entity) ID() uuid.UUID {
	return e.id
}

// CreatedAt returns the creation timestamp.
func (e *entity) CreatedAt() time.Time {
	return e.createdAt
}

// UpdatedAt returns the last-modification timestamp.
func (e *entity) UpdatedAt() time.Time {
	return e.updatedAt
}

func (e *entity) touch() {
	e.updatedAt = time.Now().UTC()
}
