package emendabus

import (
	"github.com/emendasgov/emendas/business/types/status"
	"github.com/google/uuid"
)

// QueryFilter narrows a scoped emenda read. Ano filters on the year of the
// disbursement availability date, local calendar.
type QueryFilter struct {
	ID           *uuid.UUID
	PrefeituraID *uuid.UUID
	Numero       *string
	Status       *status.Status
	Ano          *int
}
