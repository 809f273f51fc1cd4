package rolebus

import (
	"time"

	"github.com/emendasgov/emendas/business/types/role"
	"github.com/google/uuid"
)

// Assignment represents the link between a user and a role, optionally scoped
// to a prefeitura. Assignments are never mutated in place: a role change is a
// delete followed by a create.
type Assignment struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Role         role.Role
	PrefeituraID *uuid.UUID
	CreatedAt    time.Time
}

// NewAssignment contains information needed to create a new assignment.
type NewAssignment struct {
	UserID       uuid.UUID
	Role         role.Role
	PrefeituraID *uuid.UUID
}
