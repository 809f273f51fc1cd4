package usuarioapp

import (
	"github.com/emendasgov/emendas/business/domain/userbus"
)

var orderByFields = map[string]string{
	"user_id":       userbus.OrderByID,
	"nome_completo": userbus.OrderByNomeCompleto,
	"email":         userbus.OrderByEmail,
	"enabled":       userbus.OrderByEnabled,
}
