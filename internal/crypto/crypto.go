package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
)

const (
	// KeyLength is the length of the encryption key in bytes (256 bits)
	KeyLength = 32
	// NonceLength is the length of the GCM nonce in bytes (96 bits)
	NonceLength = 12
	// SaltLength is the length of the salt for key derivation in bytes
	SaltLength = 16
)

var (
	// ErrInvalidKeyLength is returned when the key is not the correct length
	ErrInvalidKeyLength = errors.New("invalid key length: must be 32 bytes")
	// ErrDecryptionFailed is returned when decryption fails (wrong key or corrupted data)
	ErrDecryptionFailed = errors.New("decryption failed: wrong key or corrupted data")
	// ErrMalformedToken is returned when a sealed token cannot be decoded
	ErrMalformedToken = errors.New("malformed sealed token")
)

// GenerateSalt generates a random salt for key derivation
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// GenerateNonce generates a random nonce for GCM encryption
func GenerateNonce() ([]byte, error) {
	nonce := make([]byte, NonceLength)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return nonce, nil
}

// Encrypt encrypts plaintext using AES-256-GCM with a fresh random nonce
func Encrypt(key, plaintext []byte) (ciphertext, nonce []byte, err error) {
	if len(key) != KeyLength {
		return nil, nil, ErrInvalidKeyLength
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonce, err = GenerateNonce()
	if err != nil {
		return nil, nil, err
	}

	ciphertext = gcm.Seal(nil, nonce, plaintext, nil)
	return ciphertext, nonce, nil
}

// Decrypt decrypts ciphertext using AES-256-GCM
func Decrypt(key, ciphertext, nonce []byte) ([]byte, error) {
	if len(key) != KeyLength {
		return nil, ErrInvalidKeyLength
	}
	if len(nonce) != NonceLength {
		return nil, ErrDecryptionFailed
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	return plaintext, nil
}

// Seal encrypts plaintext and returns a text token, base64(nonce || ciphertext).
// The token is safe to embed in a JSON document.
func Seal(key, plaintext []byte) (string, error) {
	ciphertext, nonce, err := Encrypt(key, plaintext)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(append(nonce, ciphertext...)), nil
}

// Open authenticates and decrypts a token produced by Seal
func Open(key []byte, token string) ([]byte, error) {
	blob, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, ErrMalformedToken
	}
	if len(blob) < NonceLength {
		return nil, ErrMalformedToken
	}
	return Decrypt(key, blob[NonceLength:], blob[:NonceLength])
}
