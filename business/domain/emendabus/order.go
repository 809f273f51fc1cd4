package emendabus

import "github.com/emendasgov/emendas/business/sdk/order"

var DefaultOrderBy = order.NewBy(OrderByDataDisponibilizacao, order.DESC)

const (
	OrderByID                   = "a"
	OrderByNumero               = "b"
	OrderByStatus               = "c"
	OrderByDataDisponibilizacao = "d"
	OrderByValorConcedente      = "e"
)
