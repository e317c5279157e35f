package service

import (
	"testing"
	"time"

	"hangul_edu_backend/internal/config"
	"hangul_edu_backend/internal/model"
	"hangul_edu_backend/internal/repository"
	"hangul_edu_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) *AuthService {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-test-secret-test-secret"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(newTestDB(t)), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthFixture(t)

	user, err := svc.Register(RegisterRequest{
		Name:     "관리자",
		Email:    "admin@example.org",
		Password: "secret-password",
		Role:     "admin",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "secret-password", user.Password, "stored password must be hashed")

	resp, err := svc.Login(LoginRequest{Email: "admin@example.org", Password: "secret-password"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, model.Admin, resp.User.Role)

	claims, err := util.ParseJWT(resp.Token, svc.Cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, model.Admin, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newAuthFixture(t)
	_, err := svc.Register(RegisterRequest{Name: "a", Email: "a@example.org", Password: "right-password", Role: "editor"})
	require.NoError(t, err)

	_, err = svc.Login(LoginRequest{Email: "a@example.org", Password: "wrong-password"})
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, err = svc.Login(LoginRequest{Email: "nobody@example.org", Password: "whatever"})
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthFixture(t)
	_, err := svc.Register(RegisterRequest{Name: "a", Email: "dup@example.org", Password: "password1", Role: "editor"})
	require.NoError(t, err)

	_, err = svc.Register(RegisterRequest{Name: "b", Email: "dup@example.org", Password: "password2", Role: "editor"})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}
