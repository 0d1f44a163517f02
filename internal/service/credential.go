package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt cost 10; the salt is generated per call and embedded in the output.
const bcryptCost = bcrypt.DefaultCost

// HashPassword hashes a plaintext password. The plaintext is never stored or
// logged anywhere.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext reproduces the stored hash.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
