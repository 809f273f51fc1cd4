package userdb

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/emendasgov/emendas/business/domain/userbus"
	"github.com/emendasgov/emendas/business/types/name"
	"github.com/google/uuid"
)

type userDB struct {
	ID           uuid.UUID `db:"user_id"`
	Email        string    `db:"email"`
	NomeCompleto string    `db:"nome_completo"`
	Enabled      bool      `db:"enabled"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func toDBUser(bus userbus.User) userDB {
	return userDB{
		ID:           bus.ID,
		Email:        bus.Email.Address,
		NomeCompleto: bus.NomeCompleto.String(),
		Enabled:      bus.Enabled,
		CreatedAt:    bus.CreatedAt.UTC(),
		UpdatedAt:    bus.UpdatedAt.UTC(),
	}
}

func toBusUser(db userDB) (userbus.User, error) {
	nome, err := name.Parse(db.NomeCompleto)
	if err != nil {
		return userbus.User{}, fmt.Errorf("parse nome completo: %w", err)
	}

	bus := userbus.User{
		ID:           db.ID,
		Email:        mail.Address{Address: db.Email},
		NomeCompleto: nome,
		Enabled:      db.Enabled,
		CreatedAt:    db.CreatedAt.In(time.Local),
		UpdatedAt:    db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusUsers(dbs []userDB) ([]userbus.User, error) {
	bus := make([]userbus.User, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusUser(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
