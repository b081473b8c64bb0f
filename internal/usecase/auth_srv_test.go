package usecase

import (
	"context"
	"testing"
	"time"

	"spice-store/internal/dto/request"
	"spice-store/pkg/mailer"
	"spice-store/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *utils.Config {
	return &utils.Config{
		App: utils.AppConfig{
			Name:        "spice-store-test",
			FrontendURL: "http://localhost:5173",
		},
		JWT: utils.JWTConfig{
			Secret:      "test-secret",
			ExpiryHours: 1,
		},
	}
}

func newTestAuthService() (AuthService, *fakeUserRepo) {
	repo := newFakeRepository()
	mail := mailer.NewMailer(utils.EmailConfig{}, zap.NewNop())
	svc := NewAuthService(repo, testConfig(), mail, zap.NewNop())
	return svc, repo.User.(*fakeUserRepo)
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	name := "Priya"
	resp, err := svc.Register(ctx, &request.RegisterRequest{
		Email:    "Priya@Example.com",
		Password: "secret123",
		Name:     &name,
	})
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "priya@example.com", resp.User.Email)

	// Login with the same credentials, email case-insensitive
	loginResp, err := svc.Login(ctx, &request.LoginRequest{
		Email:    "priya@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, loginResp.Token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, users := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &request.RegisterRequest{
		Email:    "dup@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &request.RegisterRequest{
		Email:    "DUP@example.com",
		Password: "another456",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")

	// No second account was created
	users.mu.Lock()
	assert.Len(t, users.users, 1)
	users.mu.Unlock()
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &request.RegisterRequest{
		Email:    "user@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	// Wrong password and unknown email produce the same error
	_, errWrongPass := svc.Login(ctx, &request.LoginRequest{
		Email:    "user@example.com",
		Password: "wrong-password",
	})
	_, errUnknown := svc.Login(ctx, &request.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	})

	require.Error(t, errWrongPass)
	require.Error(t, errUnknown)
	assert.Equal(t, errWrongPass.Error(), errUnknown.Error())
}

func TestForgotPasswordUnknownEmailSucceeds(t *testing.T) {
	svc, _ := newTestAuthService()

	err := svc.ForgotPassword(context.Background(), &request.ForgotPasswordRequest{
		Email: "ghost@example.com",
	})
	assert.NoError(t, err)
}

func TestForgotPasswordStoresHashedToken(t *testing.T) {
	svc, users := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &request.RegisterRequest{
		Email:    "reset@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	require.NoError(t, svc.ForgotPassword(ctx, &request.ForgotPasswordRequest{
		Email: "reset@example.com",
	}))

	user, err := users.FindByEmail(ctx, "reset@example.com")
	require.NoError(t, err)
	require.NotNil(t, user.ResetPasswordToken)
	require.NotNil(t, user.ResetPasswordExpires)

	// Stored value is a SHA-256 hex digest, not a raw token
	assert.Len(t, *user.ResetPasswordToken, 64)
	assert.True(t, user.ResetPasswordExpires.After(time.Now()))
}

func TestResetPasswordFlow(t *testing.T) {
	svc, users := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &request.RegisterRequest{
		Email:    "flow@example.com",
		Password: "original1",
	})
	require.NoError(t, err)

	// Plant a known token, as the mail link would carry
	rawToken, err := utils.GenerateResetToken()
	require.NoError(t, err)

	user, err := users.FindByEmail(ctx, "flow@example.com")
	require.NoError(t, err)
	require.NoError(t, users.SetResetToken(ctx, user.ID, utils.HashToken(rawToken), time.Now().Add(time.Hour)))

	require.NoError(t, svc.ResetPassword(ctx, rawToken, &request.ResetPasswordRequest{
		Password: "newpass99",
	}))

	// Old password no longer works, new one does
	_, err = svc.Login(ctx, &request.LoginRequest{Email: "flow@example.com", Password: "original1"})
	assert.Error(t, err)
	_, err = svc.Login(ctx, &request.LoginRequest{Email: "flow@example.com", Password: "newpass99"})
	assert.NoError(t, err)

	// Token is single-use
	err = svc.ResetPassword(ctx, rawToken, &request.ResetPasswordRequest{Password: "thirdpass1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid or expired")
}

func TestResetPasswordExpiredToken(t *testing.T) {
	svc, users := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &request.RegisterRequest{
		Email:    "stale@example.com",
		Password: "original1",
	})
	require.NoError(t, err)

	rawToken, err := utils.GenerateResetToken()
	require.NoError(t, err)

	user, err := users.FindByEmail(ctx, "stale@example.com")
	require.NoError(t, err)
	require.NoError(t, users.SetResetToken(ctx, user.ID, utils.HashToken(rawToken), time.Now().Add(-time.Minute)))

	err = svc.ResetPassword(ctx, rawToken, &request.ResetPasswordRequest{Password: "newpass99"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid or expired")
}
