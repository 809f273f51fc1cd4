package userbus

import "github.com/emendasgov/emendas/business/sdk/order"

var DefaultOrderBy = order.NewBy(OrderByNomeCompleto, order.ASC)

const (
	OrderByID           = "a"
	OrderByNomeCompleto = "b"
	OrderByEmail        = "c"
	OrderByEnabled      = "d"
)
