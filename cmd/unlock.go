package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var unlockCmd = &cobra.Command{
	Use:   "unlock",
	Short: "Verify a password against the encrypted key store",
	Long: `Check that a password unlocks the encrypted key store.

Careerkit holds the password in memory only for the duration of a single
command; unlock does not create a session. Use 'careerkit keychain
enable' to avoid re-entering the password.

Examples:
  careerkit unlock
  careerkit unlock --password secret123  # Non-interactive`,
	RunE: runUnlock,
}

var unlockPassword string

func init() {
	rootCmd.AddCommand(unlockCmd)
	unlockCmd.Flags().StringVarP(&unlockPassword, "password", "p", "", "Vault password (non-interactive mode)")
}

func runUnlock(cmd *cobra.Command, args []string) error {
	v, _, err := newVault()
	if err != nil {
		return err
	}

	snap := v.Load("")
	if !snap.IsEncrypted {
		fmt.Println("Key store is not encrypted; nothing to unlock")
		return nil
	}

	password, err := resolvePassword(unlockPassword)
	if err != nil {
		return err
	}

	snap = v.Load(password)
	if snap.RequiresUnlock {
		return fmt.Errorf("invalid password")
	}

	fmt.Printf("Unlocked: %d OpenAI key(s), %d Gemini key(s)\n",
		len(snap.OpenAIKeys), len(snap.GeminiKeys))
	return nil
}
