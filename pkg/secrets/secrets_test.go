package secrets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	a, err := Generate()
	require.NoError(t, err)
	b, err := Generate()
	require.NoError(t, err)

	assert.Len(t, a, 43)
	assert.NotEqual(t, a, b)
}

func TestFragment(t *testing.T) {
	assert.Equal(t, "wxyz", Fragment("abcdwxyz"))
	assert.Equal(t, "abc", Fragment("abc"))
	assert.Equal(t, "", Fragment(""))
}
