package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"careerkit/internal/crypto"
)

var keychainCmd = &cobra.Command{
	Use:   "keychain",
	Short: "Manage OS keychain integration",
	Long: `Store the vault password in the OS keychain (macOS Keychain,
Linux Secret Service, Windows Credential Manager) so commands against an
encrypted key store don't prompt for it.

The key store file itself never contains the password.`,
}

var keychainEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Store the vault password in the OS keychain",
	Long: `Verify the password against the encrypted key store, then store it
in the OS keychain.

Example:
  careerkit keychain enable`,
	RunE: runKeychainEnable,
}

var keychainDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Remove the vault password from the OS keychain",
	RunE:  runKeychainDisable,
}

var keychainStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show keychain status",
	RunE:  runKeychainStatus,
}

var keychainPassword string

func init() {
	rootCmd.AddCommand(keychainCmd)
	keychainCmd.AddCommand(keychainEnableCmd)
	keychainCmd.AddCommand(keychainDisableCmd)
	keychainCmd.AddCommand(keychainStatusCmd)

	keychainEnableCmd.Flags().StringVarP(&keychainPassword, "password", "p", "", "Vault password (non-interactive mode)")
}

func runKeychainEnable(cmd *cobra.Command, args []string) error {
	if !crypto.KeychainAvailable() {
		return fmt.Errorf("keychain not available on this system")
	}

	v, _, err := newVault()
	if err != nil {
		return err
	}

	snap := v.Load("")
	if !snap.IsEncrypted {
		return fmt.Errorf("key store is not encrypted: run 'careerkit encrypt' first")
	}

	password := keychainPassword
	if password == "" {
		password, err = readPassword("Enter vault password: ")
		if err != nil {
			return err
		}
	}

	// Verify before storing
	snap = v.Load(password)
	if snap.RequiresUnlock {
		return fmt.Errorf("invalid password")
	}

	if err := crypto.StorePasswordInKeychain(password); err != nil {
		return err
	}

	fmt.Println("Vault password stored in OS keychain")
	return nil
}

func runKeychainDisable(cmd *cobra.Command, args []string) error {
	if err := crypto.DeletePasswordFromKeychain(); err != nil {
		return err
	}
	fmt.Println("Vault password removed from OS keychain")
	return nil
}

func runKeychainStatus(cmd *cobra.Command, args []string) error {
	if !crypto.KeychainAvailable() {
		fmt.Println("Keychain: Not available")
		return nil
	}
	if crypto.HasPasswordInKeychain() {
		fmt.Println("Keychain: Enabled")
	} else {
		fmt.Println("Keychain: Available (not enabled)")
	}
	return nil
}
