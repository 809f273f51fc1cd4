package userdb

import (
	"bytes"
	"strings"

	"github.com/emendasgov/emendas/business/domain/userbus"
)

func applyFilter(filter userbus.QueryFilter, data map[string]any, buf *bytes.Buffer) {
	var wc []string

	if filter.ID != nil {
		data["user_id"] = *filter.ID
		wc = append(wc, "u.user_id = :user_id")
	}

	if filter.Email != nil {
		data["email"] = filter.Email.Address
		wc = append(wc, "u.email = :email")
	}

	if filter.NomeCompleto != nil {
		data["nome_completo"] = "%" + filter.NomeCompleto.String() + "%"
		wc = append(wc, "u.nome_completo LIKE :nome_completo")
	}

	if filter.PrefeituraID != nil {
		data["prefeitura_id"] = *filter.PrefeituraID
		wc = append(wc, `EXISTS (SELECT 1 FROM "public"."vinculo" AS v WHERE v.user_id = u.user_id AND v.prefeitura_id = :prefeitura_id)`)
	}

	if len(wc) > 0 {
		buf.WriteString(" WHERE ")
		buf.WriteString(strings.Join(wc, " AND "))
	}
}
