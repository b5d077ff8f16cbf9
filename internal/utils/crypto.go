// internal/utils/crypto.go
package utils

import (
	"crypto/rand"
	"math/big"
)

const (
	alphanumeric  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	lowerAlphanum = "abcdefghijklmnopqrstuvwxyz0123456789"
)

func GenerateRandomString(length int) (string, error) {
	return randomFrom(alphanumeric, length)
}

// GenerateRandomSuffix returns a lowercase alphanumeric string suitable for usernames.
func GenerateRandomSuffix(length int) (string, error) {
	return randomFrom(lowerAlphanum, length)
}

func randomFrom(charset string, length int) (string, error) {
	b := make([]byte, length)

	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		b[i] = charset[n.Int64()]
	}

	return string(b), nil
}
