package utils_test

import (
	"testing"

	"github.com/corkboard/bulletin_board_app/internal/apperrors"
	"github.com/corkboard/bulletin_board_app/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_SaltedOutput(t *testing.T) {
	h1, err := utils.HashPassword("secret1")
	require.NoError(t, err)
	h2, err := utils.HashPassword("secret1")
	require.NoError(t, err)

	// Salt is embedded, so the same input hashes differently each time.
	assert.NotEqual(t, h1, h2)
	assert.NotEqual(t, "secret1", h1)
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := utils.HashPassword("secret1")
	require.NoError(t, err)

	ok, err := utils.CheckPasswordHash("secret1", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = utils.CheckPasswordHash("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = utils.CheckPasswordHash("", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckPasswordHash_CorruptHash(t *testing.T) {
	ok, err := utils.CheckPasswordHash("secret1", "not-a-bcrypt-hash")
	assert.False(t, ok)
	assert.ErrorIs(t, err, apperrors.ErrCorruptHash)
}
