// Package password wraps bcrypt hashing for staff credentials.
package password

import "golang.org/x/crypto/bcrypt"

// cost 12 keeps hashing around 250ms on current hardware.
const cost = 12

// Hash derives a bcrypt hash from a plaintext password.
func Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether the plaintext matches the stored hash.
func Verify(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
