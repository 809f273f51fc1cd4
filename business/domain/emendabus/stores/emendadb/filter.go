package emendadb

import (
	"bytes"
	"strings"

	"github.com/emendasgov/emendas/business/domain/emendabus"
)

func applyFilter(filter emendabus.QueryFilter, data map[string]any, buf *bytes.Buffer) {
	var wc []string

	if filter.ID != nil {
		data["emenda_id"] = *filter.ID
		wc = append(wc, "e.emenda_id = :emenda_id")
	}

	if filter.PrefeituraID != nil {
		data["prefeitura_id"] = *filter.PrefeituraID
		wc = append(wc, "e.prefeitura_id = :prefeitura_id")
	}

	if filter.Numero != nil {
		data["numero"] = "%" + *filter.Numero + "%"
		wc = append(wc, "e.numero LIKE :numero")
	}

	if filter.Status != nil {
		data["status"] = filter.Status.String()
		wc = append(wc, "e.status = :status")
	}

	if filter.Ano != nil {
		data["ano"] = *filter.Ano
		wc = append(wc, "EXTRACT(YEAR FROM e.data_disponibilizacao) = :ano")
	}

	if len(wc) > 0 {
		buf.WriteString(" WHERE ")
		buf.WriteString(strings.Join(wc, " AND "))
	}
}
