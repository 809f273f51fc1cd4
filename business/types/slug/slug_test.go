package slug_test

import (
	"strings"
	"testing"

	"github.com/emendasgov/emendas/business/types/slug"
	"github.com/stretchr/testify/require"
)

func Test_Parse(t *testing.T) {
	valid := []string{
		"sao-paulo",
		"santos",
		"sp",
		"porto-alegre-2",
	}

	for _, v := range valid {
		s, err := slug.Parse(v)
		require.NoError(t, err, v)
		require.Equal(t, v, s.String())
	}

	invalid := []string{
		"",
		"a",
		"São-Paulo",
		"sao_paulo",
		"sao--paulo",
		"-santos",
		"santos-",
		"sao paulo",
		strings.Repeat("a", 61),
	}

	for _, v := range invalid {
		_, err := slug.Parse(v)
		require.Error(t, err, v)
	}
}
