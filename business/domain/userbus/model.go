package userbus

import (
	"net/mail"
	"time"

	"github.com/emendasgov/emendas/business/types/name"
	"github.com/emendasgov/emendas/business/types/password"
	"github.com/emendasgov/emendas/business/types/role"
	"github.com/google/uuid"
)

// User represents the local profile of an account. Credentials are held by
// the external identity provider and never stored here.
type User struct {
	ID           uuid.UUID
	Email        mail.Address
	NomeCompleto name.Name
	Enabled      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser contains information needed to provision a new user. The role and
// prefeitura determine the initial assignment created alongside the profile.
type NewUser struct {
	Email        mail.Address
	Password     password.Password
	NomeCompleto name.Name
	Role         role.Role
	PrefeituraID *uuid.UUID
}

// UpdateUser contains information needed to update a user. Email and
// password are applied against the identity provider, nome completo against
// the local profile. All fields are independently optional.
type UpdateUser struct {
	Email        *mail.Address
	Password     *password.Password
	NomeCompleto *name.Name
	Enabled      *bool
}
