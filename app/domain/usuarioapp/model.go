package usuarioapp

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"time"

	"github.com/emendasgov/emendas/app/sdk/errs"
	"github.com/emendasgov/emendas/business/domain/rolebus"
	"github.com/emendasgov/emendas/business/domain/userbus"
	"github.com/emendasgov/emendas/business/types/name"
	"github.com/emendasgov/emendas/business/types/password"
	"github.com/emendasgov/emendas/business/types/role"
	"github.com/google/uuid"
)

// Usuario represents information about an individual user.
type Usuario struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	NomeCompleto string `json:"nome_completo"`
	Enabled      bool   `json:"enabled"`
	DateCreated  string `json:"dateCreated"`
	DateUpdated  string `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (u Usuario) Encode() ([]byte, string, error) {
	data, err := json.Marshal(u)
	return data, "application/json", err
}

func toAppUsuario(bus userbus.User) Usuario {
	return Usuario{
		ID:           bus.ID.String(),
		Email:        bus.Email.Address,
		NomeCompleto: bus.NomeCompleto.String(),
		Enabled:      bus.Enabled,
		DateCreated:  bus.CreatedAt.Format(time.RFC3339),
		DateUpdated:  bus.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppUsuarios(users []userbus.User) []Usuario {
	app := make([]Usuario, len(users))
	for i, usr := range users {
		app[i] = toAppUsuario(usr)
	}
	return app
}

// =============================================================================

// CreatedUsuario is the provisioning response envelope.
type CreatedUsuario struct {
	Success bool        `json:"success"`
	User    UsuarioInfo `json:"user"`
}

// UsuarioInfo carries the provisioned account identification.
type UsuarioInfo struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	NomeCompleto string `json:"nome_completo"`
}

// Encode implements the web.Encoder interface.
func (c CreatedUsuario) Encode() ([]byte, string, error) {
	data, err := json.Marshal(c)
	return data, "application/json", err
}

func toAppCreatedUsuario(bus userbus.User) CreatedUsuario {
	return CreatedUsuario{
		Success: true,
		User: UsuarioInfo{
			ID:           bus.ID.String(),
			Email:        bus.Email.Address,
			NomeCompleto: bus.NomeCompleto.String(),
		},
	}
}

// Success is the bare success envelope for update operations.
type Success struct {
	Success bool `json:"success"`
}

// Encode implements the web.Encoder interface.
func (s Success) Encode() ([]byte, string, error) {
	data, err := json.Marshal(s)
	return data, "application/json", err
}

// =============================================================================

// NewUsuario defines the data needed to provision a new user.
type NewUsuario struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	NomeCompleto string `json:"nome_completo" validate:"required"`
	Role         string `json:"role" validate:"required"`
	PrefeituraID string `json:"prefeitura_id"`
}

// Decode implements the web.Decoder interface.
func (app *NewUsuario) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewUsuario) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewUsuario(app NewUsuario) (userbus.NewUser, error) {
	addr, err := mail.ParseAddress(app.Email)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse email: %w", err)
	}

	pass, err := password.Parse(app.Password)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse password: %w", err)
	}

	nome, err := name.Parse(app.NomeCompleto)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse nome completo: %w", err)
	}

	parsedRole, err := role.Parse(app.Role)
	if err != nil {
		return userbus.NewUser{}, fmt.Errorf("parse role: %w", err)
	}

	var prefeituraID *uuid.UUID
	if app.PrefeituraID != "" {
		id, err := uuid.Parse(app.PrefeituraID)
		if err != nil {
			return userbus.NewUser{}, fmt.Errorf("parse prefeitura id: %w", err)
		}
		prefeituraID = &id
	}

	bus := userbus.NewUser{
		Email:        *addr,
		Password:     pass,
		NomeCompleto: nome,
		Role:         parsedRole,
		PrefeituraID: prefeituraID,
	}

	return bus, nil
}

// =============================================================================

// Vinculo represents a role assignment held by a user.
type Vinculo struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	Role         string  `json:"role"`
	PrefeituraID *string `json:"prefeitura_id,omitempty"`
}

// Encode implements the web.Encoder interface.
func (v Vinculo) Encode() ([]byte, string, error) {
	data, err := json.Marshal(v)
	return data, "application/json", err
}

func toAppVinculo(bus rolebus.Assignment) Vinculo {
	var prefeituraID *string
	if bus.PrefeituraID != nil {
		id := bus.PrefeituraID.String()
		prefeituraID = &id
	}

	return Vinculo{
		ID:           bus.ID.String(),
		UserID:       bus.UserID.String(),
		Role:         bus.Role.String(),
		PrefeituraID: prefeituraID,
	}
}

// NewVinculo defines the data needed to grant a role assignment to an
// existing user.
type NewVinculo struct {
	Role         string `json:"role" validate:"required"`
	PrefeituraID string `json:"prefeitura_id"`
}

// Decode implements the web.Decoder interface.
func (app *NewVinculo) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewVinculo) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewVinculo(app NewVinculo) (role.Role, *uuid.UUID, error) {
	parsedRole, err := role.Parse(app.Role)
	if err != nil {
		return role.Role{}, nil, fmt.Errorf("parse role: %w", err)
	}

	var prefeituraID *uuid.UUID
	if app.PrefeituraID != "" {
		id, err := uuid.Parse(app.PrefeituraID)
		if err != nil {
			return role.Role{}, nil, fmt.Errorf("parse prefeitura id: %w", err)
		}
		prefeituraID = &id
	}

	return parsedRole, prefeituraID, nil
}

// =============================================================================

// UpdateUsuario defines the data needed to update a user. All fields are
// independently optional.
type UpdateUsuario struct {
	Email        *string `json:"email" validate:"omitempty,email"`
	Password     *string `json:"password" validate:"omitempty,min=6"`
	NomeCompleto *string `json:"nome_completo"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateUsuario) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateUsuario) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateUsuario(app UpdateUsuario) (userbus.UpdateUser, error) {
	var addr *mail.Address
	if app.Email != nil {
		var err error
		addr, err = mail.ParseAddress(*app.Email)
		if err != nil {
			return userbus.UpdateUser{}, fmt.Errorf("parse email: %w", err)
		}
	}

	var pass *password.Password
	if app.Password != nil {
		p, err := password.Parse(*app.Password)
		if err != nil {
			return userbus.UpdateUser{}, fmt.Errorf("parse password: %w", err)
		}
		pass = &p
	}

	var nome *name.Name
	if app.NomeCompleto != nil {
		n, err := name.Parse(*app.NomeCompleto)
		if err != nil {
			return userbus.UpdateUser{}, fmt.Errorf("parse nome completo: %w", err)
		}
		nome = &n
	}

	bus := userbus.UpdateUser{
		Email:        addr,
		Password:     pass,
		NomeCompleto: nome,
	}

	return bus, nil
}
