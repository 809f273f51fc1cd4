// Package status represents the execution status of an emenda.
package status

import "fmt"

// The set of statuses that can be used. The string values are persisted and
// part of the external contract, so they must never change.
var (
	Pendente   = newStatus("pendente")
	Aprovado   = newStatus("aprovado")
	EmExecucao = newStatus("em_execucao")
	Concluido  = newStatus("concluido")
	Cancelado  = newStatus("cancelado")
)

// All returns every known status in declaration order. The order is part of
// the report contract.
func All() []Status {
	return []Status{Pendente, Aprovado, EmExecucao, Concluido, Cancelado}
}

// =============================================================================

// Set of known statuses.
var statuses = make(map[string]Status)

// Status represents an emenda status in the system.
type Status struct {
	value string
}

func newStatus(status string) Status {
	s := Status{status}
	statuses[status] = s
	return s
}

// String returns the name of the status.
func (s Status) String() string {
	return s.value
}

// Equal provides support for the go-cmp package and testing.
func (s Status) Equal(s2 Status) bool {
	return s.value == s2.value
}

// MarshalText provides support for logging and any marshal needs.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.value), nil
}

// =============================================================================

// Parse parses the string value and returns a status if one exists.
func Parse(value string) (Status, error) {
	s, exists := statuses[value]
	if !exists {
		return Status{}, fmt.Errorf("invalid status %q", value)
	}

	return s, nil
}

// MustParse parses the string value and returns a status if one exists. If
// an error occurs the function panics.
func MustParse(value string) Status {
	s, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return s
}
