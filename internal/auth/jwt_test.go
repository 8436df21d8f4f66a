package auth

import (
	"testing"
	"time"

	"rentdesk/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCfg() *config.JWTConfig {
	return &config.JWTConfig{Secret: "s3cret", Expiry: time.Hour, Issuer: "rentdesk"}
}

func TestGenerateAndParse(t *testing.T) {
	cfg := testCfg()
	tok, err := GenerateToken(cfg, "u-1", "a@b.com", "TENANT")
	require.NoError(t, err)

	claims, err := ParseToken(cfg, tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, "TENANT", claims.Role)
	assert.Equal(t, "rentdesk", claims.Issuer)
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := GenerateToken(testCfg(), "u-1", "a@b.com", "TENANT")
	require.NoError(t, err)

	other := testCfg()
	other.Secret = "different"
	_, err = ParseToken(other, tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Expired(t *testing.T) {
	cfg := testCfg()
	cfg.Expiry = -time.Minute
	tok, err := GenerateToken(cfg, "u-1", "a@b.com", "TENANT")
	require.NoError(t, err)

	_, err = ParseToken(cfg, tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Garbage(t *testing.T) {
	_, err := ParseToken(testCfg(), "not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
