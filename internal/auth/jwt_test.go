package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	issued := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	m := NewManager("super-secret", 24*time.Hour)
	m.now = fixedClock(issued)

	tok, err := m.Issue()
	require.NoError(t, err)

	claims, err := m.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, issued.Add(24*time.Hour), claims.ExpiresAt.Time.UTC())
	assert.Equal(t, issued, claims.IssuedAt.Time.UTC())
}

func TestVerifyExpired(t *testing.T) {
	t.Parallel()

	issued := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	m := NewManager("secret", 24*time.Hour)
	m.now = fixedClock(issued)

	tok, err := m.Issue()
	require.NoError(t, err)

	m.now = fixedClock(issued.Add(23 * time.Hour))
	_, err = m.Verify(tok)
	require.NoError(t, err)

	m.now = fixedClock(issued.Add(24*time.Hour + time.Second))
	_, err = m.Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewManager("right-secret", time.Hour).Issue()
	require.NoError(t, err)

	_, err = NewManager("wrong-secret", time.Hour).Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbageAndOtherRoles(t *testing.T) {
	t.Parallel()

	m := NewManager("secret", time.Hour)

	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := m.Verify(tok)
		require.ErrorIs(t, err, ErrInvalidToken, tok)
	}

	claims := Claims{
		Role: "patient",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	other, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = m.Verify(other)
	require.ErrorIs(t, err, ErrInvalidToken)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Role: "admin"}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = m.Verify(noExp)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsOtherSigningMethod(t *testing.T) {
	t.Parallel()

	claims := Claims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewManager("secret", time.Hour).Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}
