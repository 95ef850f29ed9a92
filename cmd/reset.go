package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the key store (factory reset)",
	Long: `Delete the key store file wholesale. All stored API keys are lost;
keys supplied via environment variables are unaffected.

Example:
  careerkit reset
  careerkit reset --force  # Skip confirmation`,
	RunE: runReset,
}

var resetForce bool

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolVar(&resetForce, "force", false, "Skip confirmation prompt")
}

func runReset(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if !cfg.SecretsExist() {
		fmt.Println("No key store to delete")
		return nil
	}

	if !resetForce {
		fmt.Printf("This will delete %s and all stored keys. Type 'yes' to continue: ", cfg.SecretsPath)
		reader := bufio.NewReader(os.Stdin)
		answer, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if strings.TrimSpace(answer) != "yes" {
			fmt.Println("Aborted")
			return nil
		}
	}

	if err := cfg.RemoveSecrets(); err != nil {
		return fmt.Errorf("failed to delete key store: %w", err)
	}

	fmt.Println("Key store deleted")
	return nil
}
