package password_test

import (
	"fmt"
	"testing"

	"github.com/emendasgov/emendas/business/types/password"
	"github.com/stretchr/testify/require"
)

func Test_Parse(t *testing.T) {
	p, err := password.Parse("segredo")
	require.NoError(t, err)
	require.Equal(t, "segredo", p.Value())

	// Exactly the minimum length passes.
	_, err = password.Parse("123456")
	require.NoError(t, err)

	_, err = password.Parse("12345")
	require.Error(t, err)

	_, err = password.Parse("")
	require.Error(t, err)
}

// The raw value must never leak through printing or logging paths.
func Test_String_Masked(t *testing.T) {
	p := password.MustParse("segredo")

	require.Equal(t, "**********", p.String())
	require.Equal(t, "**********", fmt.Sprintf("%v", p))

	data, err := p.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "**********", string(data))
}
