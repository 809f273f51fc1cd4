package role_test

import (
	"testing"

	"github.com/emendasgov/emendas/business/types/role"
	"github.com/stretchr/testify/require"
)

func Test_Parse(t *testing.T) {
	for _, v := range []string{"super_admin", "prefeitura_admin", "prefeitura_user"} {
		r, err := role.Parse(v)
		require.NoError(t, err, v)
		require.Equal(t, v, r.String())
	}

	_, err := role.Parse("admin")
	require.Error(t, err)

	_, err = role.Parse("")
	require.Error(t, err)
}

func Test_RequiresPrefeitura(t *testing.T) {
	require.False(t, role.SuperAdmin.RequiresPrefeitura())
	require.True(t, role.PrefeituraAdmin.RequiresPrefeitura())
	require.True(t, role.PrefeituraUser.RequiresPrefeitura())
}
