package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	first, err := h.Hash("correct horse")
	require.NoError(t, err)
	second, err := h.Hash("correct horse")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "salt must differ between calls")
	assert.True(t, h.Verify("correct horse", first))
	assert.True(t, h.Verify("correct horse", second))
	assert.False(t, h.Verify("correct horse ", first))
	assert.False(t, h.Verify("", first))
	assert.False(t, h.Verify("correct horse", "not-a-bcrypt-digest"))
}

func TestNewPasswordHasherClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(bcrypt.MaxCost+1).cost)
	assert.Equal(t, 12, NewPasswordHasher(12).cost)
}

func newTestManager(t *testing.T, now *time.Time) *TokenManager {
	t.Helper()
	m, err := NewTokenManager("test-secret", "HS256")
	require.NoError(t, err)
	return m.WithClock(func() time.Time { return *now })
}

func TestTokenRoundTripAndExpiry(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	m := newTestManager(t, &now)

	token, err := m.Issue("alice", 30*time.Minute)
	require.NoError(t, err)

	claims, err := m.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, now.Add(30*time.Minute).Unix(), claims.ExpiresAt.Unix())

	now = now.Add(29 * time.Minute)
	_, err = m.Decode(token)
	assert.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = m.Decode(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestIssueDefaultTTL(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	m := newTestManager(t, &now)

	token, err := m.Issue("bob", 0)
	require.NoError(t, err)

	claims, err := m.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, now.Add(DefaultTokenTTL).Unix(), claims.ExpiresAt.Unix())
}

func TestDecodeDistinguishesFailures(t *testing.T) {
	now := time.Now()
	m := newTestManager(t, &now)

	other, err := NewTokenManager("another-secret", "HS256")
	require.NoError(t, err)
	foreign, err := other.Issue("alice", time.Minute)
	require.NoError(t, err)

	valid, err := m.Issue("alice", time.Minute)
	require.NoError(t, err)
	parts := strings.Split(valid, ".")
	tampered := parts[0] + "." + parts[1] + "." + strings.Split(foreign, ".")[2]

	hs512, err := NewTokenManager("test-secret", "HS512")
	require.NoError(t, err)
	wrongAlg, err := hs512.Issue("alice", time.Minute)
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"foreign secret", foreign, ErrTokenSignature},
		{"wrong algorithm", wrongAlg, ErrTokenSignature},
		{"garbage", "not.a.token", ErrTokenMalformed},
		{"empty", "", ErrTokenMalformed},
		{"swapped signature", tampered, ErrTokenSignature},
		{"missing subject", noSubject, ErrTokenMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Decode(tt.token)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrTokenInvalid)
		})
	}
}

func TestNewTokenManagerRejectsNonHMAC(t *testing.T) {
	_, err := NewTokenManager("secret", "RS256")
	assert.Error(t, err)

	_, err = NewTokenManager("secret", "none")
	assert.Error(t, err)

	_, err = NewTokenManager("", "HS256")
	assert.Error(t, err)
}
