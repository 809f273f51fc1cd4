package userbus

import (
	"net/mail"

	"github.com/emendasgov/emendas/business/types/name"
	"github.com/google/uuid"
)

type QueryFilter struct {
	ID           *uuid.UUID
	Email        *mail.Address
	NomeCompleto *name.Name
	PrefeituraID *uuid.UUID
}
