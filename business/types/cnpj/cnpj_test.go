package cnpj_test

import (
	"testing"

	"github.com/emendasgov/emendas/business/types/cnpj"
	"github.com/stretchr/testify/require"
)

func Test_Parse(t *testing.T) {
	formatted, err := cnpj.Parse("12.345.678/0001-95")
	require.NoError(t, err)
	require.Equal(t, "12.345.678/0001-95", formatted.String())

	bare, err := cnpj.Parse("12345678000195")
	require.NoError(t, err)
	require.Equal(t, "12345678000195", bare.String())

	for _, v := range []string{"", "12.345.678/0001", "123", "12-345-678/0001-95"} {
		_, err := cnpj.Parse(v)
		require.Error(t, err, v)
	}
}

func Test_ParseNull(t *testing.T) {
	// Empty is a valid absent value.
	n, err := cnpj.ParseNull("")
	require.NoError(t, err)
	require.Empty(t, n.String())

	n, err = cnpj.ParseNull("12.345.678/0001-95")
	require.NoError(t, err)
	require.Equal(t, "12.345.678/0001-95", n.String())

	_, err = cnpj.ParseNull("not-a-cnpj")
	require.Error(t, err)
}
