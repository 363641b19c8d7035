package admins

import (
	"context"
	"testing"

	"djazair-backend/internal/auth"
	"djazair-backend/internal/db/dbtest"
	"djazair-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newService(t *testing.T) (*Service, *GormRepository) {
	t.Helper()
	repo := NewRepository(dbtest.Open(t))
	return NewService(repo), repo
}

func TestBootstrapIfEmpty(t *testing.T) {
	ctx := context.Background()
	svc, repo := newService(t)

	created, err := svc.BootstrapIfEmpty(ctx, "", "pw")
	require.NoError(t, err)
	assert.False(t, created, "missing email is a no-op")

	created, err = svc.BootstrapIfEmpty(ctx, " admin@clinic.dz ", "s3cret!")
	require.NoError(t, err)
	assert.True(t, created)

	user, err := repo.FindByEmail(ctx, "admin@clinic.dz")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", user.PasswordHash)
	assert.Contains(t, user.PasswordHash, "$2a$12$")

	created, err = svc.BootstrapIfEmpty(ctx, "other@clinic.dz", "x")
	require.NoError(t, err)
	assert.False(t, created, "table already has an admin")

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestVerifyLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	_, err := svc.BootstrapIfEmpty(ctx, "admin@clinic.dz", "s3cret!")
	require.NoError(t, err)

	require.NoError(t, svc.VerifyLogin(ctx, "  admin@clinic.dz", "s3cret!"))
	assert.ErrorIs(t, svc.VerifyLogin(ctx, "admin@clinic.dz", "wrong"), ErrInvalidCredentials)
	assert.ErrorIs(t, svc.VerifyLogin(ctx, "nobody@clinic.dz", "s3cret!"), ErrInvalidCredentials)
	assert.ErrorIs(t, svc.VerifyLogin(ctx, "admin@clinic.dz", ""), ErrInvalidCredentials)
}

func TestVerifyLoginUnknownEmailPaysBcrypt(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	_, err := svc.BootstrapIfEmpty(ctx, "admin@clinic.dz", "s3cret!")
	require.NoError(t, err)

	var hashes []string
	svc.compare = func(hash, password string) error {
		hashes = append(hashes, hash)
		return auth.ComparePassword(hash, password)
	}

	assert.ErrorIs(t, svc.VerifyLogin(ctx, "nobody@clinic.dz", "s3cret!"), ErrInvalidCredentials)
	assert.ErrorIs(t, svc.VerifyLogin(ctx, "admin@clinic.dz", "wrong"), ErrInvalidCredentials)

	require.Len(t, hashes, 2, "both failures compare a hash")
	assert.Equal(t, auth.DummyHash(), hashes[0])
	cost, err := bcrypt.Cost([]byte(hashes[0]))
	require.NoError(t, err)
	assert.Equal(t, auth.PasswordCost, cost)
}

func TestSeedIsCreateIfAbsent(t *testing.T) {
	ctx := context.Background()
	svc, repo := newService(t)

	created, err := svc.Seed(ctx, "admin@clinic.dz", "first")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.Seed(ctx, "admin@clinic.dz", "second")
	require.NoError(t, err)
	assert.False(t, created)

	require.NoError(t, svc.VerifyLogin(ctx, "admin@clinic.dz", "first"), "existing row is left untouched")

	_, err = svc.Seed(ctx, "", "x")
	assert.ErrorIs(t, err, ErrMissingCredentials)

	empty, err := svc.Empty(ctx)
	require.NoError(t, err)
	assert.False(t, empty)

	var users []models.AdminUser
	require.NoError(t, repo.db.Find(&users).Error)
	assert.Len(t, users, 1)
}
