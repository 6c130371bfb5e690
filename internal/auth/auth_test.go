package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-at-least-32-chars-long-for-security"

func TestJWTManager_RoundTrip(t *testing.T) {
	t.Parallel()

	m := NewJWTManager(testSecret, "confhub-test", 15*time.Minute)
	userID := uuid.New()

	token, err := m.Generate(userID, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(token, "."))

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
}

func TestJWTManager_Rejects(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	base := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

	issuer := NewJWTManager(testSecret, "confhub-test", time.Minute)
	issuer.now = func() time.Time { return base }
	token, err := issuer.Generate(userID, "ada@example.com")
	require.NoError(t, err)

	expired := NewJWTManager(testSecret, "confhub-test", time.Minute)
	expired.now = func() time.Time { return base.Add(2 * time.Minute) }

	otherIssuer := NewJWTManager(testSecret, "someone-else", time.Minute)
	otherIssuer.now = issuer.now

	otherSecret := NewJWTManager(strings.Repeat("x", 40), "confhub-test", time.Minute)
	otherSecret.now = issuer.now

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: userID.String()}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		m     *JWTManager
		token string
	}{
		{name: "empty", m: issuer, token: ""},
		{name: "garbage", m: issuer, token: "not.a.token"},
		{name: "expired", m: expired, token: token},
		{name: "wrong issuer", m: otherIssuer, token: token},
		{name: "wrong secret", m: otherSecret, token: token},
		{name: "alg none", m: issuer, token: none},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := tt.m.Validate(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestGenerateCode(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		code, err := GenerateCode(6)
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "code %q", code)
		}
		seen[code] = true
	}
	assert.Greater(t, len(seen), 1)

	_, err := GenerateCode(0)
	assert.Error(t, err)
}

func TestHashAndCheckCode(t *testing.T) {
	t.Parallel()

	hash, err := HashCode("482910")
	require.NoError(t, err)
	assert.NotEqual(t, "482910", hash)

	ok, err := CheckCode(hash, "482910")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckCode(hash, "000000")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = CheckCode("not-a-hash", "482910")
	assert.Error(t, err)
}
