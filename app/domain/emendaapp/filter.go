package emendaapp

import (
	"net/http"
	"strconv"

	"github.com/emendasgov/emendas/app/sdk/errs"
	"github.com/emendasgov/emendas/business/domain/emendabus"
	"github.com/emendasgov/emendas/business/types/status"
	"github.com/google/uuid"
)

type queryParams struct {
	Page    string
	Rows    string
	OrderBy string
	ID      string
	Numero  string
	Status  string
	Ano     string
}

func parseQueryParams(r *http.Request) queryParams {
	values := r.URL.Query()

	return queryParams{
		Page:    values.Get("page"),
		Rows:    values.Get("rows"),
		OrderBy: values.Get("orderBy"),
		ID:      values.Get("emenda_id"),
		Numero:  values.Get("numero"),
		Status:  values.Get("status"),
		Ano:     values.Get("ano"),
	}
}

func parseFilter(qp queryParams) (emendabus.QueryFilter, error) {
	var fieldErrors errs.FieldErrors
	var filter emendabus.QueryFilter

	if qp.ID != "" {
		id, err := uuid.Parse(qp.ID)
		switch err {
		case nil:
			filter.ID = &id
		default:
			fieldErrors.Add("emenda_id", err)
		}
	}

	if qp.Numero != "" {
		filter.Numero = &qp.Numero
	}

	if qp.Status != "" {
		sts, err := status.Parse(qp.Status)
		switch err {
		case nil:
			filter.Status = &sts
		default:
			fieldErrors.Add("status", err)
		}
	}

	if qp.Ano != "" && qp.Ano != "todos" {
		ano, err := strconv.Atoi(qp.Ano)
		switch err {
		case nil:
			filter.Ano = &ano
		default:
			fieldErrors.Add("ano", err)
		}
	}

	if fieldErrors != nil {
		return emendabus.QueryFilter{}, fieldErrors.ToError()
	}

	return filter, nil
}
