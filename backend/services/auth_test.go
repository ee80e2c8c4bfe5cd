package services

import (
	"coursework/backend/config"
	"coursework/backend/models"
	"coursework/backend/utils"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret", TokenTTL: 30 * time.Minute}
}

func TestAuthenticate(t *testing.T) {
	s := newTestStore(t)
	svc := NewAuthService(s, testConfig())

	created, err := svc.CreateAdmin("admin@example.com", "Администратор", "secret")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, created.Role)

	user, token, err := svc.Authenticate("admin@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.NotEmpty(t, token)

	subject, err := utils.ParseJWTToken(token, svc.Cfg)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", subject)

	current, err := svc.CurrentUser(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, current.ID)

	_, _, err = svc.Authenticate("admin@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Authenticate("nobody@example.com", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, KindAuthentication, KindOf(err))
}

func TestCurrentUserRejectsBadTokens(t *testing.T) {
	s := newTestStore(t)
	svc := NewAuthService(s, testConfig())

	_, err := svc.CurrentUser("")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.CurrentUser("garbage")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// токен валиден, но аккаунта нет
	token, err := utils.GenerateJWTToken("ghost@example.com", svc.Cfg)
	require.NoError(t, err)
	_, err = svc.CurrentUser(token)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	expired := testConfig()
	expired.TokenTTL = -time.Minute
	old, err := utils.GenerateJWTToken("ghost@example.com", expired)
	require.NoError(t, err)
	_, err = svc.CurrentUser(old)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateAdminRefusesDuplicate(t *testing.T) {
	s := newTestStore(t)
	svc := NewAuthService(s, testConfig())

	_, err := svc.CreateAdmin("admin@example.com", "A", "secret")
	require.NoError(t, err)
	_, err = svc.CreateAdmin("admin@example.com", "B", "other")
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = svc.CreateAdmin("", "B", "other")
	assert.Error(t, err)
}
