package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/mall-api/internal/model"
	"github.com/d60-Lab/mall-api/internal/repository"
)

func newAuthService(t *testing.T) (*AuthService, *testEnv) {
	t.Helper()
	env := newTestEnv(t)
	return NewAuthService(repository.NewUserRepository(env.db), "test-secret", 1), env
}

func TestRegisterAndLogin(t *testing.T) {
	auth, _ := newAuthService(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, "alice@example.com", "s3cret", "Alice", "Nguyen")
	require.NoError(t, err)
	assert.Equal(t, model.RoleCustomer, user.Role)
	assert.NotEqual(t, "s3cret", user.Password)

	token, logged, err := auth.Login(ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, logged.ID)

	claims, err := auth.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.Subject)
	assert.Equal(t, model.RoleCustomer, claims.Role)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	auth, _ := newAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "alice@example.com", "s3cret", "Alice", "")
	require.NoError(t, err)
	_, err = auth.Register(ctx, "alice@example.com", "other", "Alice", "")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_WrongPassword(t *testing.T) {
	auth, _ := newAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "alice@example.com", "s3cret", "Alice", "")
	require.NoError(t, err)

	_, _, err = auth.Login(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	// 未注册邮箱返回同一错误，不暴露账号存在性
	_, _, err = auth.Login(ctx, "nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyToken_Garbage(t *testing.T) {
	auth, _ := newAuthService(t)
	_, err := auth.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	auth, env := newAuthService(t)
	user := env.seedUser(t, "alice@example.com", model.RoleCustomer)
	token, err := auth.IssueToken(user)
	require.NoError(t, err)

	other := NewAuthService(repository.NewUserRepository(env.db), "different-secret", 1)
	_, err = other.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
