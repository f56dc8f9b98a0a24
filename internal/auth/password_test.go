package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("hunter22", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.NoError(t, ComparePassword(hash, "hunter22"))
	assert.Error(t, ComparePassword(hash, "hunter23"))
}

func TestHashPasswordDistinctSalts(t *testing.T) {
	first, err := HashPassword("same input", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := HashPassword("same input", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
