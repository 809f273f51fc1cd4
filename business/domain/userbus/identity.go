package userbus

import (
	"context"
	"net/mail"

	"github.com/emendasgov/emendas/business/types/password"
	"github.com/google/uuid"
)

// Identity declares the behavior the identity provider must implement.
// Create returns the provider-assigned user id, which is reused as the
// profile id so the two systems stay correlated by a single key.
type Identity interface {
	Create(ctx context.Context, email mail.Address, pass password.Password) (uuid.UUID, error)
	UpdateEmail(ctx context.Context, userID uuid.UUID, email mail.Address) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, pass password.Password) error
	Delete(ctx context.Context, userID uuid.UUID) error
}
