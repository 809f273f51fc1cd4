// Package password represents a password in the system.
package password

import "fmt"

// MinLength is the minimum number of characters a password must have. It is
// part of the provisioning contract and checked before any write happens.
const MinLength = 6

// Password represents a password in the system.
type Password struct {
	value string
}

// String obscures the password value for logging and printing.
func (p Password) String() string {
	return "**********"
}

// Value returns the raw password value.
func (p Password) Value() string {
	return p.value
}

// Equal provides support for the go-cmp package and testing.
func (p Password) Equal(p2 Password) bool {
	return p.value == p2.value
}

// MarshalText provides support for logging and any marshal needs.
func (p Password) MarshalText() ([]byte, error) {
	return []byte("**********"), nil
}

// =============================================================================

// Parse parses the string value and returns a password if the value complies
// with the rules for a password.
func Parse(value string) (Password, error) {
	if len(value) < MinLength {
		return Password{}, fmt.Errorf("password must have at least %d characters", MinLength)
	}

	return Password{value}, nil
}

// MustParse parses the string value and returns a password if the value
// complies with the rules for a password. If an error occurs the function
// panics.
func MustParse(value string) Password {
	password, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return password
}
