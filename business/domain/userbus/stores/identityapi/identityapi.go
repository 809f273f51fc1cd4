// Package identityapi implements the identity provider api against a
// GoTrue style admin endpoint. Only credential custody lives there, the
// profile stays local.
package identityapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/emendasgov/emendas/business/domain/userbus"
	"github.com/emendasgov/emendas/business/types/password"
	"github.com/emendasgov/emendas/foundation/logger"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ErrUnavailable is returned when the provider cannot be reached at all.
var ErrUnavailable = errors.New("identity provider unavailable")

// Store manages access to the external identity provider admin API.
type Store struct {
	log        *logger.Logger
	url        string
	serviceKey string
	client     *http.Client
}

// NewStore constructs the api for identity provider access.
func NewStore(log *logger.Logger, url string, serviceKey string) *Store {
	return &Store{
		log:        log,
		url:        strings.TrimRight(url, "/"),
		serviceKey: serviceKey,
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   10 * time.Second,
		},
	}
}

// Create registers a new identity and returns the provider assigned id.
func (s *Store) Create(ctx context.Context, email mail.Address, pass password.Password) (uuid.UUID, error) {
	body := struct {
		Email        string `json:"email"`
		Password     string `json:"password"`
		EmailConfirm bool   `json:"email_confirm"`
	}{
		Email:        email.Address,
		Password:     pass.Value(),
		EmailConfirm: true,
	}

	var resp struct {
		ID uuid.UUID `json:"id"`
	}

	if err := s.do(ctx, http.MethodPost, "/admin/users", body, &resp); err != nil {
		return uuid.UUID{}, err
	}

	return resp.ID, nil
}

// UpdateEmail changes the email registered with the provider.
func (s *Store) UpdateEmail(ctx context.Context, userID uuid.UUID, email mail.Address) error {
	body := struct {
		Email        string `json:"email"`
		EmailConfirm bool   `json:"email_confirm"`
	}{
		Email:        email.Address,
		EmailConfirm: true,
	}

	return s.do(ctx, http.MethodPut, "/admin/users/"+userID.String(), body, nil)
}

// UpdatePassword changes the password registered with the provider.
func (s *Store) UpdatePassword(ctx context.Context, userID uuid.UUID, pass password.Password) error {
	body := struct {
		Password string `json:"password"`
	}{
		Password: pass.Value(),
	}

	return s.do(ctx, http.MethodPut, "/admin/users/"+userID.String(), body, nil)
}

// Delete removes the identity from the provider.
func (s *Store) Delete(ctx context.Context, userID uuid.UUID) error {
	return s.do(ctx, http.MethodDelete, "/admin/users/"+userID.String(), nil, nil)
}

func (s *Store) do(ctx context.Context, method string, path string, body any, v any) error {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal: %w", err)
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.url+path, rdr)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %s", method, path, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

		switch resp.StatusCode {
		case http.StatusConflict, http.StatusUnprocessableEntity:
			return fmt.Errorf("%s %s: %w", method, path, userbus.ErrUniqueEmail)
		}

		return fmt.Errorf("%s %s: status[%d]: %s", method, path, resp.StatusCode, data)
	}

	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return fmt.Errorf("decode: %w", err)
		}
	}

	return nil
}
