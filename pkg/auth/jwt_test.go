package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerify(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, err := m.Generate("user-1", "alice", "user")
	require.NoError(t, err)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice", claims.Nickname)
	assert.Equal(t, "user", claims.Role)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	other := NewJWTManager("other-secret", time.Hour)

	token, err := m.Generate("user-1", "alice", "user")
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsExpired(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute)

	token, err := m.Generate("user-1", "alice", "user")
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	_, err := m.Verify("not-a-token")
	assert.Error(t, err)
}

func TestRefreshToken(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, err := m.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Empty(t, claims.Nickname)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("123456")
	require.NoError(t, err)
	assert.NotEqual(t, "123456", hash)

	assert.NoError(t, CheckPassword("123456", hash))
	assert.Error(t, CheckPassword("wrong", hash))
}

func TestPasswordHashingLongPasswords(t *testing.T) {
	// Over bcrypt's 72-byte limit, both by count and by byte width.
	for _, password := range []string{
		strings.Repeat("x", 100),
		strings.Repeat("密", 40),
	} {
		hash, err := HashPassword(password)
		require.NoError(t, err)
		assert.NoError(t, CheckPassword(password, hash))
		assert.Error(t, CheckPassword(password+"!", hash))
	}

	// Every significant character matters; nothing is truncated away.
	long := strings.Repeat("x", 99)
	hash, err := HashPassword(long + "a")
	require.NoError(t, err)
	assert.Error(t, CheckPassword(long+"b", hash))
}
