package emendaapp

import (
	"github.com/emendasgov/emendas/business/domain/emendabus"
)

var orderByFields = map[string]string{
	"emenda_id":             emendabus.OrderByID,
	"numero":                emendabus.OrderByNumero,
	"status":                emendabus.OrderByStatus,
	"data_disponibilizacao": emendabus.OrderByDataDisponibilizacao,
	"valor_concedente":      emendabus.OrderByValorConcedente,
}
