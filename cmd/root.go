package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"careerkit/internal/config"
	"careerkit/internal/crypto"
	"careerkit/internal/vault"
)

var rootCmd = &cobra.Command{
	Use:   "careerkit",
	Short: "Job-application toolkit: provider API key vault and applicant profiles",
	Long: `Careerkit manages the local data of an AI-assisted job-application
toolkit: the provider API keys (OpenAI, Gemini) used for outbound calls,
stored in a single file and optionally encrypted under a password, plus
named applicant profiles.

Keys can also be supplied via the OPENAI_API_KEY and GEMINI_API_KEY
environment variables; those are picked up at load time and never
written to disk.

Example workflow:
  careerkit keys add --provider OpenAI --name "Work key"
  careerkit encrypt                  # Wrap the key store with a password
  careerkit keys list                # Prompts for the password
  careerkit keychain enable          # Remember the password in the OS keychain`,
}

var (
	flagDataDir string
	flagDebug   bool
)

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Data directory (default ~/.careerkit)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
}

// newLogger builds the CLI logger. Warnings only by default so normal
// command output stays clean.
func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if flagDebug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// loadConfig resolves the data directory from the --data-dir flag or the
// default location
func loadConfig() (*config.Config, error) {
	if flagDataDir != "" {
		return config.NewWithDataDir(flagDataDir), nil
	}
	return config.New()
}

// newVault builds a Vault over the configured store file
func newVault() (*vault.Vault, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	return vault.New(cfg, newLogger()), cfg, nil
}

// readPassword prompts for a password without echo
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}

// resolvePassword returns the password for vault operations: the flag value
// if set, else the OS keychain, else an interactive prompt
func resolvePassword(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if crypto.HasPasswordInKeychain() {
		password, err := crypto.GetPasswordFromKeychain()
		if err == nil {
			return password, nil
		}
		fmt.Println("Keychain lookup failed, falling back to password prompt")
	}
	return readPassword("Enter vault password: ")
}
