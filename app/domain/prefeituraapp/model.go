package prefeituraapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/emendasgov/emendas/app/sdk/errs"
	"github.com/emendasgov/emendas/business/domain/prefeiturabus"
	"github.com/emendasgov/emendas/business/types/name"
	"github.com/emendasgov/emendas/business/types/slug"
)

// Prefeitura represents information about an individual prefeitura.
type Prefeitura struct {
	ID          string  `json:"id"`
	Nome        string  `json:"nome"`
	Slug        string  `json:"slug"`
	Municipio   string  `json:"municipio"`
	UF          string  `json:"uf"`
	LogoURL     *string `json:"logo_url"`
	Enabled     bool    `json:"enabled"`
	DateCreated string  `json:"dateCreated"`
	DateUpdated string  `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (p Prefeitura) Encode() ([]byte, string, error) {
	data, err := json.Marshal(p)
	return data, "application/json", err
}

func toAppPrefeitura(bus prefeiturabus.Prefeitura) Prefeitura {
	return Prefeitura{
		ID:          bus.ID.String(),
		Nome:        bus.Nome.String(),
		Slug:        bus.Slug.String(),
		Municipio:   bus.Municipio,
		UF:          bus.UF,
		LogoURL:     bus.LogoURL,
		Enabled:     bus.Enabled,
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
		DateUpdated: bus.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppPrefeituras(prefs []prefeiturabus.Prefeitura) []Prefeitura {
	app := make([]Prefeitura, len(prefs))
	for i, pref := range prefs {
		app[i] = toAppPrefeitura(pref)
	}
	return app
}

// Prefeituras is the collection response for listings.
type Prefeituras []Prefeitura

// Encode implements the web.Encoder interface.
func (p Prefeituras) Encode() ([]byte, string, error) {
	data, err := json.Marshal(p)
	return data, "application/json", err
}

// =============================================================================

// NewPrefeitura defines the data needed to add a new prefeitura.
type NewPrefeitura struct {
	Nome      string  `json:"nome" validate:"required"`
	Slug      string  `json:"slug" validate:"required"`
	Municipio string  `json:"municipio" validate:"required"`
	UF        string  `json:"uf" validate:"required,len=2"`
	LogoURL   *string `json:"logo_url"`
}

// Decode implements the web.Decoder interface.
func (app *NewPrefeitura) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewPrefeitura) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewPrefeitura(app NewPrefeitura) (prefeiturabus.NewPrefeitura, error) {
	nome, err := name.Parse(app.Nome)
	if err != nil {
		return prefeiturabus.NewPrefeitura{}, fmt.Errorf("parse nome: %w", err)
	}

	sl, err := slug.Parse(app.Slug)
	if err != nil {
		return prefeiturabus.NewPrefeitura{}, fmt.Errorf("parse slug: %w", err)
	}

	bus := prefeiturabus.NewPrefeitura{
		Nome:      nome,
		Slug:      sl,
		Municipio: app.Municipio,
		UF:        app.UF,
		LogoURL:   app.LogoURL,
	}

	return bus, nil
}

// =============================================================================

// UpdatePrefeitura defines the data needed to update a prefeitura. The slug
// is immutable once published, so it is not accepted here.
type UpdatePrefeitura struct {
	Nome      *string `json:"nome"`
	Municipio *string `json:"municipio"`
	UF        *string `json:"uf" validate:"omitempty,len=2"`
	LogoURL   *string `json:"logo_url"`
	Enabled   *bool   `json:"enabled"`
}

// Decode implements the web.Decoder interface.
func (app *UpdatePrefeitura) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdatePrefeitura) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdatePrefeitura(app UpdatePrefeitura) (prefeiturabus.UpdatePrefeitura, error) {
	var nome *name.Name
	if app.Nome != nil {
		n, err := name.Parse(*app.Nome)
		if err != nil {
			return prefeiturabus.UpdatePrefeitura{}, fmt.Errorf("parse nome: %w", err)
		}
		nome = &n
	}

	bus := prefeiturabus.UpdatePrefeitura{
		Nome:      nome,
		Municipio: app.Municipio,
		UF:        app.UF,
		LogoURL:   app.LogoURL,
		Enabled:   app.Enabled,
	}

	return bus, nil
}
