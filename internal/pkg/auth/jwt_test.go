package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
)

func testJWTConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "Storefront API"
	cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
	cfg.JWT.AccessTokenExpiry = time.Hour
	cfg.JWT.RefreshTokenExpiry = 24 * time.Hour
	return cfg
}

func Test_JWTManager_AccessTokenRoundTrip(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())

	token, err := manager.GenerateAccessToken(42, "jane@example.com")
	require.NoError(t, err)

	claims, err := manager.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "access", claims.TokenType)
}

func Test_JWTManager_RefreshTokenRejectedAsAccess(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())

	token, err := manager.GenerateRefreshToken(42, "jane@example.com")
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(token)
	assert.Error(t, err)

	claims, err := manager.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims.TokenType)
}

func Test_JWTManager_RejectsWrongSecret(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())
	token, err := manager.GenerateAccessToken(1, "a@example.com")
	require.NoError(t, err)

	other := testJWTConfig()
	other.JWT.Secret = "ffffffffffffffffffffffffffffffff"

	_, err = NewJWTManager(other).ValidateAccessToken(token)
	assert.Error(t, err)
}

func Test_ExtractTokenFromHeader(t *testing.T) {
	testCases := []struct {
		name     string
		header   string
		expected string
	}{
		{name: "bearer token", header: "Bearer abc.def.ghi", expected: "abc.def.ghi"},
		{name: "missing scheme", header: "abc.def.ghi", expected: ""},
		{name: "empty header", header: "", expected: ""},
		{name: "bare bearer", header: "Bearer ", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ExtractTokenFromHeader(tc.header))
		})
	}
}

func Test_PasswordManager_HashAndVerify(t *testing.T) {
	cfg := testJWTConfig()
	cfg.Security.BcryptCost = 4 // keep the test fast
	manager := NewPasswordManager(cfg)

	hash, err := manager.HashPassword("Sup3rSecret")
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3rSecret", hash)

	assert.NoError(t, manager.VerifyPassword("Sup3rSecret", hash))
	assert.Error(t, manager.VerifyPassword("wrong", hash))
}

func Test_PasswordManager_ValidatePassword(t *testing.T) {
	manager := NewPasswordManager(testJWTConfig())

	testCases := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "valid", password: "Sup3rSecret", wantErr: false},
		{name: "too short", password: "Ab1", wantErr: true},
		{name: "no uppercase", password: "sup3rsecret", wantErr: true},
		{name: "no lowercase", password: "SUP3RSECRET", wantErr: true},
		{name: "no number", password: "SuperSecret", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := manager.ValidatePassword(tc.password)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
