package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePassword_ClauseOrder(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"too short", "abc12", ErrPasswordTooShort},
		{"no uppercase", "abcdef1", ErrPasswordNoUpper},
		{"no lowercase", "ABCDEF1", ErrPasswordNoLower},
		{"no digit", "Abcdefg", ErrPasswordNoDigit},
		{"no special character", "Abcdef1", ErrPasswordNoSpecial},
		{"valid", "Abcdef1!", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword_LengthBeforeOtherClauses(t *testing.T) {
	// One character short but also missing a digit; length must win.
	err := ValidatePassword("Abcd!")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestValidatePassword_AllListedSymbols(t *testing.T) {
	for _, symbol := range `!@#$%^&*(),.?":{}|<>` {
		assert.NoError(t, ValidatePassword("Abcdef1"+string(symbol)))
	}
}

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("Abcdef1!")
	require.NoError(t, err)
	assert.NotEqual(t, "Abcdef1!", hash)

	assert.True(t, CheckPassword("Abcdef1!", hash))
	assert.False(t, CheckPassword("Abcdef1?", hash))
}

func TestHashPassword_DifferentSalts(t *testing.T) {
	hash1, err := HashPassword("Abcdef1!")
	require.NoError(t, err)
	hash2, err := HashPassword("Abcdef1!")
	require.NoError(t, err)

	assert.NotEqual(t, hash1, hash2)
}

func TestCheckPassword_InvalidHash(t *testing.T) {
	assert.False(t, CheckPassword("Abcdef1!", "not-a-bcrypt-hash"))
	assert.False(t, CheckPassword("Abcdef1!", ""))
}
