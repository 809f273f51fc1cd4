// Package cnpj represents a CNPJ document number in the system.
package cnpj

import (
	"database/sql"
	"fmt"
	"regexp"
)

// CNPJ represents a CNPJ in the system, stored with its original formatting.
type CNPJ struct {
	value string
}

// String returns the value of the CNPJ.
func (c CNPJ) String() string {
	return c.value
}

// Equal provides support for the go-cmp package and testing.
func (c CNPJ) Equal(c2 CNPJ) bool {
	return c.value == c2.value
}

// MarshalText provides support for logging and any marshal needs.
func (c CNPJ) MarshalText() ([]byte, error) {
	return []byte(c.value), nil
}

// =============================================================================

// cnpjRegEx accepts the formatted (00.000.000/0000-00) and the bare 14 digit
// forms. Check-digit validation is not performed, matching the data already
// in production.
var cnpjRegEx = regexp.MustCompile(`^(\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}|\d{14})$`)

// Parse parses the string value and returns a CNPJ if the value complies
// with the rules for a CNPJ.
func Parse(value string) (CNPJ, error) {
	if !cnpjRegEx.MatchString(value) {
		return CNPJ{}, fmt.Errorf("invalid cnpj %q", value)
	}

	return CNPJ{value}, nil
}

// MustParse parses the string value and returns a CNPJ if the value complies
// with the rules for a CNPJ. If an error occurs the function panics.
func MustParse(value string) CNPJ {
	c, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return c
}

// =============================================================================

// Null represents a CNPJ in the system that can be empty.
type Null struct {
	value string
	valid bool
}

// ToSQLNullString converts a Null value to a sql NullString.
func ToSQLNullString(n Null) sql.NullString {
	return sql.NullString{
		String: n.value,
		Valid:  n.valid,
	}
}

// String returns the value of the CNPJ.
func (n Null) String() string {
	if !n.valid {
		return ""
	}

	return n.value
}

// Equal provides support for the go-cmp package and testing.
func (n Null) Equal(n2 Null) bool {
	return n.value == n2.value && n.valid == n2.valid
}

// MarshalText provides support for logging and any marshal needs.
func (n Null) MarshalText() ([]byte, error) {
	return []byte(n.value), nil
}

// ParseNull parses the string value and returns a CNPJ if the value complies
// with the rules for a CNPJ. An empty string is a valid empty value.
func ParseNull(value string) (Null, error) {
	if value == "" {
		return Null{}, nil
	}

	if !cnpjRegEx.MatchString(value) {
		return Null{}, fmt.Errorf("invalid cnpj %q", value)
	}

	return Null{value, true}, nil
}

// MustParseNull parses the string value and returns a CNPJ if the value
// complies with the rules for a CNPJ. If an error occurs the function panics.
func MustParseNull(value string) Null {
	c, err := ParseNull(value)
	if err != nil {
		panic(err)
	}

	return c
}
