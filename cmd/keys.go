package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"careerkit/internal/models"
	"careerkit/internal/vault"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage provider API keys",
}

var keysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored API keys",
	Long: `List the stored API keys for each provider as masked labels.
Keys injected from the environment are marked [env].

If the store is encrypted you will be prompted for the password (or the
OS keychain is used if enabled).

Examples:
  careerkit keys list
  careerkit keys list --password secret123  # Non-interactive`,
	RunE: runKeysList,
}

var keysAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an API key",
	Long: `Add an API key to a provider's list.

Picks the plaintext or encrypted write path from the current store state.
Adding to an encrypted store requires the password.

Examples:
  careerkit keys add --provider OpenAI --name "Work key"
  careerkit keys add --provider Gemini --name "Personal" --key AIza...`,
	RunE: runKeysAdd,
}

var (
	keysPassword    string
	keysAddProvider string
	keysAddName     string
	keysAddKey      string
)

func init() {
	rootCmd.AddCommand(keysCmd)
	keysCmd.AddCommand(keysListCmd)
	keysCmd.AddCommand(keysAddCmd)

	keysListCmd.Flags().StringVarP(&keysPassword, "password", "p", "", "Vault password (non-interactive mode)")

	keysAddCmd.Flags().StringVar(&keysAddProvider, "provider", "", "Provider name: OpenAI or Gemini (required)")
	keysAddCmd.Flags().StringVar(&keysAddName, "name", "Key", "Display name for the key")
	keysAddCmd.Flags().StringVar(&keysAddKey, "key", "", "Key value (prompted if omitted)")
	keysAddCmd.Flags().StringVarP(&keysPassword, "password", "p", "", "Vault password (non-interactive mode)")
	keysAddCmd.MarkFlagRequired("provider")
}

func runKeysList(cmd *cobra.Command, args []string) error {
	v, _, err := newVault()
	if err != nil {
		return err
	}

	snap := v.Load("")
	if snap.RequiresUnlock {
		password, err := resolvePassword(keysPassword)
		if err != nil {
			return err
		}
		snap = v.Load(password)
		if snap.RequiresUnlock {
			return fmt.Errorf("invalid password")
		}
	}

	printProvider(models.ProviderOpenAI, snap.OpenAIKeys)
	printProvider(models.ProviderGemini, snap.GeminiKeys)
	return nil
}

func printProvider(provider models.Provider, entries []models.KeyEntry) {
	fmt.Printf("%s:\n", provider)
	if len(entries) == 0 {
		fmt.Println("  (none)")
		return
	}
	for _, e := range entries {
		marker := ""
		if e.FromEnv() {
			marker = " [env]"
		}
		fmt.Printf("  %s%s\n", e.Label(), marker)
	}
}

func runKeysAdd(cmd *cobra.Command, args []string) error {
	provider := models.Provider(keysAddProvider)
	if !provider.Valid() {
		return fmt.Errorf("unknown provider %q: use OpenAI or Gemini", keysAddProvider)
	}

	v, _, err := newVault()
	if err != nil {
		return err
	}

	key := keysAddKey
	if key == "" {
		key, err = readPassword("Enter key value: ")
		if err != nil {
			return err
		}
		if key == "" {
			return fmt.Errorf("key value must not be empty")
		}
	}

	snap := v.Load("")
	if snap.IsEncrypted {
		password, err := resolvePassword(keysPassword)
		if err != nil {
			return err
		}
		if err := v.AddKeyEncrypted(provider, keysAddName, key, password); err != nil {
			if errors.Is(err, vault.ErrUnlockFailed) {
				return fmt.Errorf("invalid password")
			}
			return fmt.Errorf("failed to add key: %w", err)
		}
	} else {
		if err := v.AddKeyPlain(provider, key, keysAddName); err != nil {
			return fmt.Errorf("failed to add key: %w", err)
		}
	}

	fmt.Printf("Added key %q to %s\n", keysAddName, provider)
	return nil
}
