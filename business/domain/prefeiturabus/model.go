package prefeiturabus

import (
	"time"

	"github.com/emendasgov/emendas/business/types/name"
	"github.com/emendasgov/emendas/business/types/slug"
	"github.com/google/uuid"
)

// Prefeitura represents a municipality with isolated data scope.
type Prefeitura struct {
	ID        uuid.UUID
	Nome      name.Name
	Slug      slug.Slug
	Municipio string
	UF        string
	LogoURL   *string
	Enabled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPrefeitura contains information needed to create a new prefeitura.
type NewPrefeitura struct {
	Nome      name.Name
	Slug      slug.Slug
	Municipio string
	UF        string
	LogoURL   *string
}

// UpdatePrefeitura contains information needed to update a prefeitura. The
// slug is deliberately absent: once referenced externally it is immutable.
type UpdatePrefeitura struct {
	Nome      *name.Name
	Municipio *string
	UF        *string
	LogoURL   *string
	Enabled   *bool
}
