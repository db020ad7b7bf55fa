package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("S3cure!Pass01")
	assert.NoError(t, err)
	assert.NotEqual(t, "S3cure!Pass01", hash)
	assert.True(t, len(hash) >= 60)

	assert.True(t, CheckPasswordHash("S3cure!Pass01", hash))
	assert.False(t, CheckPasswordHash("wrong-password", hash))
}

func TestGenerateOTPCode(t *testing.T) {
	code, err := GenerateOTPCode(6)
	assert.NoError(t, err)
	assert.Len(t, code, 6)
	for _, r := range code {
		assert.Contains(t, "0123456789ABCDEF", string(r))
	}

	// Zero falls back to the default length
	code, err = GenerateOTPCode(0)
	assert.NoError(t, err)
	assert.Len(t, code, 6)

	// Odd lengths are trimmed to the requested size
	code, err = GenerateOTPCode(7)
	assert.NoError(t, err)
	assert.Len(t, code, 7)
}
