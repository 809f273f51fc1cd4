package usuarioapp

import (
	"net/http"
	"net/mail"

	"github.com/emendasgov/emendas/app/sdk/errs"
	"github.com/emendasgov/emendas/business/domain/userbus"
	"github.com/emendasgov/emendas/business/types/name"
	"github.com/google/uuid"
)

type queryParams struct {
	Page         string
	Rows         string
	OrderBy      string
	ID           string
	NomeCompleto string
	Email        string
}

func parseQueryParams(r *http.Request) queryParams {
	values := r.URL.Query()

	return queryParams{
		Page:         values.Get("page"),
		Rows:         values.Get("rows"),
		OrderBy:      values.Get("orderBy"),
		ID:           values.Get("user_id"),
		NomeCompleto: values.Get("nome_completo"),
		Email:        values.Get("email"),
	}
}

func parseFilter(qp queryParams) (userbus.QueryFilter, error) {
	var fieldErrors errs.FieldErrors
	var filter userbus.QueryFilter

	if qp.ID != "" {
		id, err := uuid.Parse(qp.ID)
		switch err {
		case nil:
			filter.ID = &id
		default:
			fieldErrors.Add("user_id", err)
		}
	}

	if qp.NomeCompleto != "" {
		nome, err := name.Parse(qp.NomeCompleto)
		switch err {
		case nil:
			filter.NomeCompleto = &nome
		default:
			fieldErrors.Add("nome_completo", err)
		}
	}

	if qp.Email != "" {
		addr, err := mail.ParseAddress(qp.Email)
		switch err {
		case nil:
			filter.Email = addr
		default:
			fieldErrors.Add("email", err)
		}
	}

	if fieldErrors != nil {
		return userbus.QueryFilter{}, fieldErrors.ToError()
	}

	return filter, nil
}
