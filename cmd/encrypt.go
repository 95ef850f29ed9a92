package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"careerkit/internal/vault"
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Enable encryption of the key store",
	Long: `Wrap the key store with password encryption.

The currently stored keys are re-written as an encrypted file; the
plaintext keys are gone from disk afterwards. There is no decrypt-back
operation, so keep the password safe.

Keys injected from the environment are never part of the stored file.

Example:
  careerkit encrypt
  careerkit encrypt --password mypassword  # Non-interactive`,
	RunE: runEncrypt,
}

var encryptPassword string

func init() {
	rootCmd.AddCommand(encryptCmd)
	encryptCmd.Flags().StringVarP(&encryptPassword, "password", "p", "", "Vault password (non-interactive mode)")
}

func runEncrypt(cmd *cobra.Command, args []string) error {
	v, cfg, err := newVault()
	if err != nil {
		return err
	}

	var password string
	if encryptPassword != "" {
		// Non-interactive mode
		if len(encryptPassword) < 8 {
			return fmt.Errorf("password must be at least 8 characters")
		}
		password = encryptPassword
	} else {
		password1, err := readPassword("Enter vault password: ")
		if err != nil {
			return err
		}
		if len(password1) < 8 {
			return fmt.Errorf("password must be at least 8 characters")
		}

		password2, err := readPassword("Confirm vault password: ")
		if err != nil {
			return err
		}
		if password1 != password2 {
			return fmt.Errorf("passwords do not match")
		}
		password = password1
	}

	if err := v.EnableEncryption(password); err != nil {
		if errors.Is(err, vault.ErrEncrypted) {
			return fmt.Errorf("key store is already encrypted")
		}
		return fmt.Errorf("failed to enable encryption: %w", err)
	}

	fmt.Printf("Key store encrypted at %s\n", cfg.SecretsPath)
	fmt.Println("There is no password recovery. Keep the password safe.")
	return nil
}
