package crypto

import (
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	// KeychainService is the service name used in the OS keychain
	KeychainService = "careerkit"
	// KeychainAccount is the account name for the vault password
	KeychainAccount = "vault-password"
)

// KeychainAvailable checks if the OS keychain is available
func KeychainAvailable() bool {
	// Try to access keychain - if it fails, keychain is not available
	_, err := keyring.Get(KeychainService, "__test__")
	// ErrNotFound means keychain works but the entry doesn't exist (that's fine)
	// Any other error means keychain isn't available
	return err == keyring.ErrNotFound || err == nil
}

// StorePasswordInKeychain stores the vault password in the OS keychain
func StorePasswordInKeychain(password string) error {
	if err := keyring.Set(KeychainService, KeychainAccount, password); err != nil {
		return fmt.Errorf("failed to store password in keychain: %w", err)
	}
	return nil
}

// GetPasswordFromKeychain retrieves the vault password from the OS keychain
func GetPasswordFromKeychain() (string, error) {
	password, err := keyring.Get(KeychainService, KeychainAccount)
	if err == keyring.ErrNotFound {
		return "", fmt.Errorf("no password found in keychain")
	}
	if err != nil {
		return "", fmt.Errorf("failed to get password from keychain: %w", err)
	}
	return password, nil
}

// DeletePasswordFromKeychain removes the vault password from the OS keychain
func DeletePasswordFromKeychain() error {
	err := keyring.Delete(KeychainService, KeychainAccount)
	if err == keyring.ErrNotFound {
		return nil // Already deleted, not an error
	}
	if err != nil {
		return fmt.Errorf("failed to delete password from keychain: %w", err)
	}
	return nil
}

// HasPasswordInKeychain checks if a vault password exists in the keychain
func HasPasswordInKeychain() bool {
	_, err := keyring.Get(KeychainService, KeychainAccount)
	return err == nil
}
