package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewWithDataDir(t *testing.T) {
	cfg := NewWithDataDir("/tmp/careerkit-test")

	if cfg.DataDir != "/tmp/careerkit-test" {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, "/tmp/careerkit-test")
	}
	if cfg.SecretsPath != filepath.Join("/tmp/careerkit-test", SecretsFileName) {
		t.Errorf("SecretsPath = %q", cfg.SecretsPath)
	}
	if cfg.ProfileDBPath != filepath.Join("/tmp/careerkit-test", ProfileDBFileName) {
		t.Errorf("ProfileDBPath = %q", cfg.ProfileDBPath)
	}
}

func TestDefaultDataDir(t *testing.T) {
	dir, err := DefaultDataDir()
	if err != nil {
		t.Fatalf("DefaultDataDir() error = %v", err)
	}
	if filepath.Base(dir) != DefaultDirName {
		t.Errorf("DefaultDataDir() = %q, want basename %q", dir, DefaultDirName)
	}
}

func TestEnsureDataDir(t *testing.T) {
	cfg := NewWithDataDir(filepath.Join(t.TempDir(), "nested", "data"))

	if err := cfg.EnsureDataDir(); err != nil {
		t.Fatalf("EnsureDataDir() error = %v", err)
	}

	info, err := os.Stat(cfg.DataDir)
	if err != nil {
		t.Fatalf("data directory not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("data dir path is not a directory")
	}
	if perm := info.Mode().Perm(); perm != 0700 {
		t.Errorf("data dir permissions = %o, want 0700", perm)
	}

	// Idempotent
	if err := cfg.EnsureDataDir(); err != nil {
		t.Errorf("second EnsureDataDir() error = %v", err)
	}
}

func TestSecretsExist(t *testing.T) {
	cfg := NewWithDataDir(t.TempDir())

	if cfg.SecretsExist() {
		t.Error("SecretsExist() = true before any write")
	}

	if err := os.WriteFile(cfg.SecretsPath, []byte("{}"), 0600); err != nil {
		t.Fatalf("failed to write secrets file: %v", err)
	}
	if !cfg.SecretsExist() {
		t.Error("SecretsExist() = false after write")
	}
}

func TestRemoveSecrets(t *testing.T) {
	cfg := NewWithDataDir(t.TempDir())

	// Removing a missing file is not an error
	if err := cfg.RemoveSecrets(); err != nil {
		t.Errorf("RemoveSecrets() on missing file error = %v", err)
	}

	if err := os.WriteFile(cfg.SecretsPath, []byte("{}"), 0600); err != nil {
		t.Fatalf("failed to write secrets file: %v", err)
	}
	if err := cfg.RemoveSecrets(); err != nil {
		t.Fatalf("RemoveSecrets() error = %v", err)
	}
	if cfg.SecretsExist() {
		t.Error("secrets file still present after RemoveSecrets()")
	}
}

func TestParseEnvCredentials(t *testing.T) {
	t.Setenv(EnvOpenAIKey, "sk-fromenv1")
	t.Setenv(EnvGeminiKey, "")

	creds, err := ParseEnvCredentials()
	if err != nil {
		t.Fatalf("ParseEnvCredentials() error = %v", err)
	}
	if creds.OpenAIKey != "sk-fromenv1" {
		t.Errorf("OpenAIKey = %q, want %q", creds.OpenAIKey, "sk-fromenv1")
	}
	if creds.GeminiKey != "" {
		t.Errorf("GeminiKey = %q, want empty", creds.GeminiKey)
	}
}
