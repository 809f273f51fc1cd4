package emendadb

import (
	"fmt"

	"github.com/emendasgov/emendas/business/domain/emendabus"
	"github.com/emendasgov/emendas/business/sdk/order"
)

var orderByFields = map[string]string{
	emendabus.OrderByID:                   "e.emenda_id",
	emendabus.OrderByNumero:               "e.numero",
	emendabus.OrderByStatus:               "e.status",
	emendabus.OrderByDataDisponibilizacao: "e.data_disponibilizacao",
	emendabus.OrderByValorConcedente:      "e.valor_concedente",
}

func orderByClause(orderBy order.By) (string, error) {
	by, exists := orderByFields[orderBy.Field]
	if !exists {
		return "", fmt.Errorf("field %q does not exist", orderBy.Field)
	}

	return " ORDER BY " + by + " " + orderBy.Direction, nil
}
