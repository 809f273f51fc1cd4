package userdb

import (
	"fmt"

	"github.com/emendasgov/emendas/business/domain/userbus"
	"github.com/emendasgov/emendas/business/sdk/order"
)

var orderByFields = map[string]string{
	userbus.OrderByID:           "u.user_id",
	userbus.OrderByNomeCompleto: "u.nome_completo",
	userbus.OrderByEmail:        "u.email",
	userbus.OrderByEnabled:      "u.enabled",
}

func orderByClause(orderBy order.By) (string, error) {
	by, exists := orderByFields[orderBy.Field]
	if !exists {
		return "", fmt.Errorf("field %q does not exist", orderBy.Field)
	}

	return " ORDER BY " + by + " " + orderBy.Direction, nil
}
