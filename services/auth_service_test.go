package services

import (
	"context"
	"testing"

	"github.com/bako110/Sonaby/internal/error/code"
	"github.com/bako110/Sonaby/models"
	"github.com/bako110/Sonaby/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (InterfaceAuthService, store.Store) {
	t.Helper()
	s := store.NewMemoryStore()
	cfg := testConfig()
	return NewAuthService(s, NewJWTService(cfg), NewMemoryTokenStore(), cfg), s
}

func registerInput() RegisterInput {
	return RegisterInput{
		Email:     "agent@sonaby.ne",
		Password:  "correct-horse",
		FirstName: "Ibrahim",
		LastName:  "Oumarou",
	}
}

func TestRegister(t *testing.T) {
	auth, _ := newAuthService(t)

	user, err := auth.Register(registerInput())
	require.NoError(t, err)
	assert.Equal(t, models.RoleAgentGestion, user.Role, "role defaults when omitted")
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	auth, _ := newAuthService(t)

	input := registerInput()
	input.Password = "short"
	_, err := auth.Register(input)
	assert.True(t, code.IsKind(err, code.KindValidation))

	input = registerInput()
	input.Role = "SUPERUSER"
	_, err = auth.Register(input)
	assert.True(t, code.IsKind(err, code.KindValidation))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth, _ := newAuthService(t)

	_, err := auth.Register(registerInput())
	require.NoError(t, err)

	input := registerInput()
	input.Email = "AGENT@sonaby.ne" // same address, different case
	_, err = auth.Register(input)
	assert.True(t, code.IsKind(err, code.KindConflict))
}

func TestLogin(t *testing.T) {
	auth, _ := newAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(registerInput())
	require.NoError(t, err)

	pair, err := auth.Login(ctx, "agent@sonaby.ne", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	require.NotNil(t, pair.User)
	assert.Equal(t, "agent@sonaby.ne", pair.User.Email)
}

func TestLoginBadCredentials(t *testing.T) {
	auth, _ := newAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(registerInput())
	require.NoError(t, err)

	_, err = auth.Login(ctx, "agent@sonaby.ne", "wrong-password")
	assert.True(t, code.IsKind(err, code.KindUnauthenticated))

	_, err = auth.Login(ctx, "nobody@sonaby.ne", "correct-horse")
	assert.True(t, code.IsKind(err, code.KindUnauthenticated))
}

func TestLoginDisabledAccount(t *testing.T) {
	auth, s := newAuthService(t)
	ctx := context.Background()

	user, err := auth.Register(registerInput())
	require.NoError(t, err)
	user.IsActive = false
	require.NoError(t, s.Users().Update(user))

	_, err = auth.Login(ctx, "agent@sonaby.ne", "correct-horse")
	assert.True(t, code.IsKind(err, code.KindUnauthenticated))
}

func TestRefreshRotation(t *testing.T) {
	auth, _ := newAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(registerInput())
	require.NoError(t, err)
	pair, err := auth.Login(ctx, "agent@sonaby.ne", "correct-horse")
	require.NoError(t, err)

	next, err := auth.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	// rotation revoked the first token
	_, err = auth.Refresh(ctx, pair.RefreshToken)
	assert.True(t, code.IsKind(err, code.KindUnauthenticated))

	// the rotated token still works
	_, err = auth.Refresh(ctx, next.RefreshToken)
	assert.NoError(t, err)
}

func TestRefreshGarbageToken(t *testing.T) {
	auth, _ := newAuthService(t)

	_, err := auth.Refresh(context.Background(), "not-a-jwt")
	assert.True(t, code.IsKind(err, code.KindUnauthenticated))
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	auth, _ := newAuthService(t)
	ctx := context.Background()

	user, err := auth.Register(registerInput())
	require.NoError(t, err)
	pair, err := auth.Login(ctx, "agent@sonaby.ne", "correct-horse")
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx, user.ID))

	_, err = auth.Refresh(ctx, pair.RefreshToken)
	assert.True(t, code.IsKind(err, code.KindUnauthenticated))
}

func TestChangePassword(t *testing.T) {
	auth, _ := newAuthService(t)
	ctx := context.Background()

	user, err := auth.Register(registerInput())
	require.NoError(t, err)

	err = auth.ChangePassword(user.ID, "wrong-password", "new-password-1")
	assert.True(t, code.IsKind(err, code.KindUnauthenticated))

	err = auth.ChangePassword(user.ID, "correct-horse", "tiny")
	assert.True(t, code.IsKind(err, code.KindValidation))

	require.NoError(t, auth.ChangePassword(user.ID, "correct-horse", "new-password-1"))

	_, err = auth.Login(ctx, "agent@sonaby.ne", "correct-horse")
	assert.True(t, code.IsKind(err, code.KindUnauthenticated))
	_, err = auth.Login(ctx, "agent@sonaby.ne", "new-password-1")
	assert.NoError(t, err)
}
