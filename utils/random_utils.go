package utils

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"strings"
)

// RandomInt32 generates a secure random 32-bit integer
func RandomInt32() int32 {
	var num int32
	err := binary.Read(rand.Reader, binary.BigEndian, &num)
	if err != nil {
		panic("generate random int32 failed")
	}

	return num
}

// GenerateSecureToken returns a random hex token of n bytes, at least 16
func GenerateSecureToken(n int) (string, error) {
	if n < 16 {
		n = 16
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// GenerateOTPCode generates an uppercase hex one-time code of the given
// length (6 characters covers 24 bits of entropy)
func GenerateOTPCode(length int) (string, error) {
	if length < 1 {
		length = 6
	}
	buf := make([]byte, (length+1)/2)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	code := strings.ToUpper(hex.EncodeToString(buf))
	return code[:length], nil
}
