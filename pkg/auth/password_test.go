package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name       string
		password   string
		shouldFail bool
	}{
		{name: "six characters", password: "abc123", shouldFail: false},
		{name: "cyrillic counts runes", password: "пароль", shouldFail: false},
		{name: "too short", password: "abc12", shouldFail: true},
		{name: "empty", password: "", shouldFail: true},
		{name: "blank", password: "       ", shouldFail: true},
		{name: "too long", password: string(make([]byte, 73)), shouldFail: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.shouldFail {
				require.Error(t, err)
				var pve *PasswordValidationError
				assert.ErrorAs(t, err, &pve)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestVerifyPassword_Plaintext(t *testing.T) {
	assert.True(t, VerifyPassword("s3cret", "s3cret"))
	assert.False(t, VerifyPassword("s3cret", "s3cre"))
	assert.False(t, VerifyPassword("s3cret", "S3CRET"))
	assert.False(t, VerifyPassword("s3cret", ""))
}

func TestVerifyPassword_Bcrypt(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, IsBcryptHash(string(hash)))
	assert.True(t, VerifyPassword(string(hash), "s3cret"))
	assert.False(t, VerifyPassword(string(hash), "wrong"))
	// the hash itself is not accepted as a password
	assert.False(t, VerifyPassword(string(hash), string(hash)))
}

func TestIsBcryptHash(t *testing.T) {
	assert.False(t, IsBcryptHash("admin123"))
	assert.False(t, IsBcryptHash("$2a$short"))
	assert.False(t, IsBcryptHash(""))
}

func TestHashPassword(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)

	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "s3cret"))
}
