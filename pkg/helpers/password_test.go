package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewPasswordHasher_Cost(t *testing.T) {
	assert.Equal(t, DefaultBcryptCost, NewPasswordHasher(0).Cost())
	assert.Equal(t, DefaultBcryptCost, NewPasswordHasher(bcrypt.MaxCost+1).Cost())
	assert.Equal(t, bcrypt.MinCost, NewPasswordHasher(bcrypt.MinCost).Cost())
}

func TestPasswordHasher_DefaultCostIsEmbedded(t *testing.T) {
	hasher := NewPasswordHasher(DefaultBcryptCost)

	hash, err := hasher.Hash("secret1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 11, cost)
}

func TestPasswordHasher_RoundTrip(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	tests := []struct {
		name     string
		password string
	}{
		{name: "simple password", password: "secret1"},
		{name: "complex password", password: "P@ssw0rd!#$%^&*()"},
		{name: "unicode password", password: "密码123"},
		{name: "empty password", password: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := hasher.Hash(tt.password)
			require.NoError(t, err)
			assert.NotEqual(t, tt.password, hash)
			assert.True(t, hasher.Verify(tt.password, hash))
			assert.False(t, hasher.Verify(tt.password+"x", hash))
		})
	}
}

func TestPasswordHasher_Verify(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("testpassword123")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
	}{
		{name: "correct password", password: "testpassword123", hash: hash, want: true},
		{name: "wrong password", password: "wrongpassword", hash: hash, want: false},
		{name: "empty hash", password: "testpassword123", hash: "", want: false},
		{name: "malformed hash", password: "testpassword123", hash: "not-a-bcrypt-hash", want: false},
		{name: "plaintext stored as hash", password: "testpassword123", hash: "testpassword123", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hasher.Verify(tt.password, tt.hash))
		})
	}
}

func TestPasswordHasher_UniqueHashes(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	h1, err := hasher.Hash("samepassword")
	require.NoError(t, err)
	h2, err := hasher.Hash("samepassword")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, hasher.Verify("samepassword", h1))
	assert.True(t, hasher.Verify("samepassword", h2))
}

func TestPasswordHasher_TooLong(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	_, err := hasher.Hash(strings.Repeat("a", 73))
	assert.Error(t, err)
}
