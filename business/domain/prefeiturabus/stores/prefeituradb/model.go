package prefeituradb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/emendasgov/emendas/business/domain/prefeiturabus"
	"github.com/emendasgov/emendas/business/types/name"
	"github.com/emendasgov/emendas/business/types/slug"
	"github.com/google/uuid"
)

type prefeituraDB struct {
	ID        uuid.UUID      `db:"prefeitura_id"`
	Nome      string         `db:"nome"`
	Slug      string         `db:"slug"`
	Municipio string         `db:"municipio"`
	UF        string         `db:"uf"`
	LogoURL   sql.NullString `db:"logo_url"`
	Enabled   bool           `db:"enabled"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func toDBPrefeitura(bus prefeiturabus.Prefeitura) prefeituraDB {
	var logo sql.NullString
	if bus.LogoURL != nil {
		logo = sql.NullString{String: *bus.LogoURL, Valid: true}
	}

	return prefeituraDB{
		ID:        bus.ID,
		Nome:      bus.Nome.String(),
		Slug:      bus.Slug.String(),
		Municipio: bus.Municipio,
		UF:        bus.UF,
		LogoURL:   logo,
		Enabled:   bus.Enabled,
		CreatedAt: bus.CreatedAt.UTC(),
		UpdatedAt: bus.UpdatedAt.UTC(),
	}
}

func toBusPrefeitura(db prefeituraDB) (prefeiturabus.Prefeitura, error) {
	n, err := name.Parse(db.Nome)
	if err != nil {
		return prefeiturabus.Prefeitura{}, fmt.Errorf("parse nome: %w", err)
	}

	sl, err := slug.Parse(db.Slug)
	if err != nil {
		return prefeiturabus.Prefeitura{}, fmt.Errorf("parse slug: %w", err)
	}

	var logo *string
	if db.LogoURL.Valid {
		logo = &db.LogoURL.String
	}

	return prefeiturabus.Prefeitura{
		ID:        db.ID,
		Nome:      n,
		Slug:      sl,
		Municipio: db.Municipio,
		UF:        db.UF,
		LogoURL:   logo,
		Enabled:   db.Enabled,
		CreatedAt: db.CreatedAt.In(time.Local),
		UpdatedAt: db.UpdatedAt.In(time.Local),
	}, nil
}

func toBusPrefeituras(dbs []prefeituraDB) ([]prefeiturabus.Prefeitura, error) {
	bus := make([]prefeiturabus.Prefeitura, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusPrefeitura(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
