package status_test

import (
	"testing"

	"github.com/emendasgov/emendas/business/types/status"
	"github.com/stretchr/testify/require"
)

func Test_Parse(t *testing.T) {
	for _, v := range []string{"pendente", "aprovado", "em_execucao", "concluido", "cancelado"} {
		s, err := status.Parse(v)
		require.NoError(t, err, v)
		require.Equal(t, v, s.String())
	}

	_, err := status.Parse("arquivado")
	require.Error(t, err)

	_, err = status.Parse("")
	require.Error(t, err)
}

// Reports group counts by status in declaration order, so the order of All
// is part of the contract.
func Test_All(t *testing.T) {
	want := []status.Status{
		status.Pendente,
		status.Aprovado,
		status.EmExecucao,
		status.Concluido,
		status.Cancelado,
	}

	require.Equal(t, want, status.All())
}
