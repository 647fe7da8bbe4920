package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, CheckPasswordHash("s3cret", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestGenerateOTP(t *testing.T) {
	code, expiresAt, err := GenerateOTP()
	require.NoError(t, err)
	assert.Len(t, code, 6)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9')
	}
	assert.WithinDuration(t, time.Now().Add(OTPWindow), expiresAt, time.Second)
}

func TestOTPValid(t *testing.T) {
	hash, err := HashPassword("123456")
	require.NoError(t, err)

	future := time.Now().Add(time.Minute)
	past := time.Now().Add(-time.Minute)

	assert.True(t, OTPValid(hash, "123456", &future))
	assert.False(t, OTPValid(hash, "654321", &future), "wrong code")
	assert.False(t, OTPValid(hash, "123456", &past), "expired code")
	assert.False(t, OTPValid(hash, "123456", nil), "no expiry recorded")
	assert.False(t, OTPValid("", "123456", &future), "no code recorded")
}

func TestTokenManagerRoundTrip(t *testing.T) {
	tm := NewTokenManager([]byte("test-key"), time.Hour)

	token, err := tm.Generate(&JWTClaims{UserID: "abc123", Role: RoleAgent, Name: "Jane"})
	require.NoError(t, err)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "abc123", claims.UserID)
	assert.Equal(t, RoleAgent, claims.Role)
	assert.Equal(t, "Jane", claims.Name)
}

func TestTokenManagerRejectsForeignKey(t *testing.T) {
	token, err := NewTokenManager([]byte("key-one"), time.Hour).Generate(&JWTClaims{UserID: "abc"})
	require.NoError(t, err)

	_, err = NewTokenManager([]byte("key-two"), time.Hour).Parse(token)
	assert.Error(t, err)
}

func TestTokenManagerRejectsExpired(t *testing.T) {
	tm := NewTokenManager([]byte("test-key"), -time.Minute)
	token, err := tm.Generate(&JWTClaims{UserID: "abc"})
	require.NoError(t, err)

	_, err = tm.Parse(token)
	assert.Error(t, err)
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"admin", "user", "agent", "RIB", "doctor", "hospital"} {
		r, ok := ParseRole(valid)
		assert.True(t, ok, valid)
		assert.Equal(t, Role(valid), r)
	}

	_, ok := ParseRole("superuser")
	assert.False(t, ok)
	_, ok = ParseRole("rib")
	assert.False(t, ok, "role names are case sensitive")
}
