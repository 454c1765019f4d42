package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workshop/internal/common"
)

func TestHashPassword(t *testing.T) {
	digest, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.Len(t, digest, DigestLength)

	again, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.Equal(t, digest, again)

	other, err := HashPassword("Tr0ub4dor&3")
	require.NoError(t, err)
	assert.NotEqual(t, digest, other)
}

func TestHashPasswordEmpty(t *testing.T) {
	_, err := HashPassword("")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestVerifyPassword(t *testing.T) {
	digest, err := HashPassword("s3cret")
	require.NoError(t, err)

	ok, err := VerifyPassword("s3cret", digest)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("S3cret", digest)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPasswordBadInputs(t *testing.T) {
	digest, err := HashPassword("s3cret")
	require.NoError(t, err)

	_, err = VerifyPassword("", digest)
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = VerifyPassword("s3cret", "too-short")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = VerifyPassword("s3cret", digest+"x")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}
