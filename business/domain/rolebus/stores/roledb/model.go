package roledb

import (
	"fmt"
	"time"

	"github.com/emendasgov/emendas/business/domain/rolebus"
	"github.com/emendasgov/emendas/business/types/role"
	"github.com/google/uuid"
)

type assignmentDB struct {
	ID           uuid.UUID  `db:"vinculo_id"`
	UserID       uuid.UUID  `db:"user_id"`
	Role         string     `db:"role"`
	PrefeituraID *uuid.UUID `db:"prefeitura_id"`
	CreatedAt    time.Time  `db:"created_at"`
}

func toDBAssignment(bus rolebus.Assignment) assignmentDB {
	return assignmentDB{
		ID:           bus.ID,
		UserID:       bus.UserID,
		Role:         bus.Role.String(),
		PrefeituraID: bus.PrefeituraID,
		CreatedAt:    bus.CreatedAt.UTC(),
	}
}

func toBusAssignment(db assignmentDB) (rolebus.Assignment, error) {
	r, err := role.Parse(db.Role)
	if err != nil {
		return rolebus.Assignment{}, fmt.Errorf("parse role: %w", err)
	}

	return rolebus.Assignment{
		ID:           db.ID,
		UserID:       db.UserID,
		Role:         r,
		PrefeituraID: db.PrefeituraID,
		CreatedAt:    db.CreatedAt.In(time.Local),
	}, nil
}

func toBusAssignments(dbs []assignmentDB) ([]rolebus.Assignment, error) {
	bus := make([]rolebus.Assignment, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusAssignment(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
