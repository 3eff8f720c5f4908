package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(15*time.Minute, time.Hour, "test")
	require.NoError(t, err)
	return m
}

func TestGenerateAndValidate(t *testing.T) {
	m := newTestManager(t)

	access, refresh, _, _, err := m.GenerateTokenPair("alice", "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	claims, err := m.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "access", claims.Type)

	claims, err = m.ValidateToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims.Type)
}

func TestValidateGarbage(t *testing.T) {
	m := newTestManager(t)

	_, err := m.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestRefreshTokens(t *testing.T) {
	m := newTestManager(t)

	_, refresh, _, _, err := m.GenerateTokenPair("bob", "bob@example.com")
	require.NoError(t, err)

	access2, refresh2, _, _, err := m.RefreshTokens(refresh)
	require.NoError(t, err)

	claims, err := m.ValidateToken(access2)
	require.NoError(t, err)
	assert.Equal(t, "bob", claims.Username)
	assert.Equal(t, "access", claims.Type)

	claims, err = m.ValidateToken(refresh2)
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims.Type)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	m := newTestManager(t)

	access, _, _, _, err := m.GenerateTokenPair("bob", "bob@example.com")
	require.NoError(t, err)

	_, _, _, _, err = m.RefreshTokens(access)
	assert.Error(t, err)
}

func TestRevocation(t *testing.T) {
	m := newTestManager(t)

	access, _, _, _, err := m.GenerateTokenPair("carol", "carol@example.com")
	require.NoError(t, err)

	m.RevokeUserTokens("carol")
	_, err = m.ValidateToken(access)
	assert.ErrorIs(t, err, ErrRevokedToken)
}
