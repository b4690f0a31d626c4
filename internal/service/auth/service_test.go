package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/manea/internal/domain/models"
	"github.com/mamadbah2/manea/internal/repository/memory"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newAuthService(t *testing.T) (*Service, *memory.UserRepo) {
	t.Helper()
	users := memory.NewUserRepo()
	svc := NewService(users, "test-secret", 30*time.Minute, nil)
	svc.now = func() time.Time { return testNow }
	return svc, users
}

// TestRegister verifies a new user is stored with the farmer default role.
func TestRegister(t *testing.T) {
	svc, _ := newAuthService(t)

	user, err := svc.Register(context.Background(), RegisterInput{
		FullName: "Ana Pérez",
		Email:    "ana@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, models.RoleFarmer, user.Role, "role should default to farmer")
	assert.True(t, user.Active)
}

// TestRegister_DuplicateEmail rejects a taken email.
func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "ana@example.com", Password: "s3cret"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Email: "ana@example.com", Password: "other"})
	require.Error(t, err)
	assert.True(t, models.IsDuplicate(err))
}

// TestRegister_Validation rejects empty credentials.
func TestRegister_Validation(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Password: "s3cret"})
	require.Error(t, err)
	assert.True(t, models.IsValidation(err), "an empty email should be rejected")

	_, err = svc.Register(ctx, RegisterInput{Email: "ana@example.com"})
	require.Error(t, err)
	assert.True(t, models.IsValidation(err), "an empty password should be rejected")
}

// TestLoginAndParseToken round-trips the issued token through the parser.
func TestLoginAndParseToken(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Email: "ana@example.com", Password: "s3cret"})
	require.NoError(t, err)

	// Tokens must still be within their validity window when parsed.
	svc.now = time.Now

	token, loggedIn, err := svc.Login(ctx, "ana@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	principalID, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, principalID)
}

// TestLogin_InvalidCredentials keeps unknown email and wrong password
// indistinguishable.
func TestLogin_InvalidCredentials(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "ana@example.com", Password: "s3cret"})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "ana@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

// TestParseToken_WrongSecret rejects tokens signed with another key.
func TestParseToken_WrongSecret(t *testing.T) {
	svc, users := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "ana@example.com", Password: "s3cret"})
	require.NoError(t, err)
	svc.now = time.Now

	token, _, err := svc.Login(ctx, "ana@example.com", "s3cret")
	require.NoError(t, err)

	other := NewService(users, "another-secret", 30*time.Minute, nil)
	_, err = other.ParseToken(token)
	assert.Error(t, err, "a token signed with another secret should be rejected")
}
