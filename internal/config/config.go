package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDirName is the default directory name for careerkit data
	DefaultDirName = ".careerkit"
	// SecretsFileName is the provider API key store filename
	SecretsFileName = "secrets_store.json"
	// ProfileDBFileName is the SQLite profile database filename
	ProfileDBFileName = "profiles.db"
)

// Config holds the configuration for careerkit
type Config struct {
	// DataDir is the directory where careerkit stores its data
	DataDir string
	// SecretsPath is the full path to the secrets store file
	SecretsPath string
	// ProfileDBPath is the full path to the SQLite profile database
	ProfileDBPath string
}

// DefaultDataDir returns the default data directory (~/.careerkit)
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, DefaultDirName), nil
}

// New creates a new Config with the default data directory
func New() (*Config, error) {
	dataDir, err := DefaultDataDir()
	if err != nil {
		return nil, err
	}
	return NewWithDataDir(dataDir), nil
}

// NewWithDataDir creates a new Config with a custom data directory
func NewWithDataDir(dataDir string) *Config {
	return &Config{
		DataDir:       dataDir,
		SecretsPath:   filepath.Join(dataDir, SecretsFileName),
		ProfileDBPath: filepath.Join(dataDir, ProfileDBFileName),
	}
}

// EnsureDataDir creates the data directory if it doesn't exist
// Sets permissions to 0700 (owner read/write/execute only)
func (c *Config) EnsureDataDir() error {
	if err := os.MkdirAll(c.DataDir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// SecretsExist checks if the secrets store file exists
func (c *Config) SecretsExist() bool {
	_, err := os.Stat(c.SecretsPath)
	return err == nil
}

// RemoveSecrets deletes the secrets store file (factory reset)
func (c *Config) RemoveSecrets() error {
	err := os.Remove(c.SecretsPath)
	if os.IsNotExist(err) {
		return nil // Already gone, not an error
	}
	return err
}
