package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	require.NoError(t, ComparePassword(hash, "correct horse"))
	require.Error(t, ComparePassword(hash, "battery staple"))
}

func TestHashPasswordSalted(t *testing.T) {
	a, err := HashPassword("same")
	require.NoError(t, err)
	b, err := HashPassword("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestPasswordEmptyInputs(t *testing.T) {
	_, err := HashPassword("")
	require.ErrorIs(t, err, ErrEmptyPassword)
	require.ErrorIs(t, ComparePassword("", "x"), ErrMissingPassword)
	require.ErrorIs(t, ComparePassword("$2a$12$abc", ""), ErrMissingPassword)
}

func TestDummyHashUsesStoredCost(t *testing.T) {
	hash := DummyHash()
	assert.Equal(t, hash, DummyHash(), "computed once")

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, PasswordCost, cost)
	assert.ErrorIs(t, ComparePassword(hash, "s3cret!"), bcrypt.ErrMismatchedHashAndPassword)
}
