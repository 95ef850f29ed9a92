package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"careerkit/internal/config"
	"careerkit/internal/crypto"
	"careerkit/internal/models"
	"careerkit/internal/vault"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show key store status",
	Long: `Show the current state of the key store: whether a file exists,
whether it is encrypted, and whether the OS keychain holds the password.

Example:
  careerkit status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	v, cfg, err := newVault()
	if err != nil {
		return err
	}

	fmt.Printf("Store location: %s\n", cfg.SecretsPath)

	snap := v.Load("")
	switch snap.FileState {
	case vault.FileAbsent:
		fmt.Println("Store: Not created (created on first key add)")
	case vault.FileUnreadable:
		fmt.Println("Store: Unreadable (treated as empty)")
	case vault.FileLegacy:
		fmt.Println("Store: Plaintext")
		fmt.Printf("Keys: %d OpenAI, %d Gemini\n", countStored(snap.OpenAIKeys), countStored(snap.GeminiKeys))
	case vault.FileEncrypted:
		fmt.Println("Store: Encrypted (locked)")
	}

	if crypto.KeychainAvailable() {
		if crypto.HasPasswordInKeychain() {
			fmt.Println("Keychain: Enabled")
		} else {
			fmt.Println("Keychain: Available (not enabled)")
		}
	} else {
		fmt.Println("Keychain: Not available")
	}

	if os.Getenv(config.EnvOpenAIKey) != "" {
		fmt.Printf("Environment: %s set\n", config.EnvOpenAIKey)
	}
	if os.Getenv(config.EnvGeminiKey) != "" {
		fmt.Printf("Environment: %s set\n", config.EnvGeminiKey)
	}

	return nil
}

// countStored counts the on-disk entries, excluding env-injected ones
func countStored(entries []models.KeyEntry) int {
	n := 0
	for _, e := range entries {
		if !e.FromEnv() {
			n++
		}
	}
	return n
}
