package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecretKey = "test-secret-key-for-session-tokens-32c"

func createTestTokenService(t *testing.T, ttl time.Duration) SessionTokenService {
	t.Helper()
	svc, err := NewSessionTokenService(testSecretKey, ttl, "test-issuer")
	require.NoError(t, err)
	return svc
}

func TestNewSessionTokenServiceRequiresSecret(t *testing.T) {
	_, err := NewSessionTokenService("", time.Hour, "test-issuer")
	assert.Error(t, err)
}

func TestSessionTokenRoundTrip(t *testing.T) {
	svc := createTestTokenService(t, time.Hour)

	token, err := svc.IssueToken("workspace-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "workspace-123", claims.WorkspaceID)
	assert.Equal(t, "test-issuer", claims.Issuer)
}

func TestSessionTokenExpired(t *testing.T) {
	svc := createTestTokenService(t, time.Nanosecond)

	token, err := svc.IssueToken("workspace-123")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrSessionTokenExpired)
}

func TestSessionTokenWrongKeyRejected(t *testing.T) {
	issuer := createTestTokenService(t, time.Hour)
	other, err := NewSessionTokenService("another-secret-key-of-sufficient-len", time.Hour, "test-issuer")
	require.NoError(t, err)

	token, err := issuer.IssueToken("workspace-123")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrSessionTokenInvalid)
}

func TestSessionTokenGarbageRejected(t *testing.T) {
	svc := createTestTokenService(t, time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "not a jwt", token: "not-a-token"},
		{name: "truncated jwt", token: "eyJhbGciOiJIUzI1NiJ9.eyJ3b3Jrc3BhY2U"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tt.token)
			assert.ErrorIs(t, err, ErrSessionTokenInvalid)
		})
	}
}

func TestSessionTokensAreUnique(t *testing.T) {
	svc := createTestTokenService(t, time.Hour)

	first, err := svc.IssueToken("workspace-123")
	require.NoError(t, err)
	second, err := svc.IssueToken("workspace-123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "each token carries a unique jti")
}
