package crypto

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
)

// KDFIterations is the PBKDF2-HMAC-SHA256 iteration count.
// Existing vault files were produced at this cost; changing it would make
// them undecryptable, so it is fixed for the version 1 format.
const KDFIterations = 480000

// DeriveKey derives a 256-bit encryption key from a password using
// PBKDF2-HMAC-SHA256
func DeriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, KDFIterations, KeyLength, sha256.New)
}

// DeriveKeyWithIterations derives a key with a custom iteration count
// This is useful for testing with faster parameters
func DeriveKeyWithIterations(password string, salt []byte, iterations int) []byte {
	return pbkdf2.Key([]byte(password), salt, iterations, KeyLength, sha256.New)
}
