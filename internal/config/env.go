package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Environment variables that can supply a zero-configuration credential
// per provider.
const (
	EnvOpenAIKey = "OPENAI_API_KEY"
	EnvGeminiKey = "GEMINI_API_KEY"
)

// EnvCredentials holds provider API keys injected from the process
// environment. These are surfaced as synthetic vault entries at load time
// and are never written to disk.
type EnvCredentials struct {
	OpenAIKey string `env:"OPENAI_API_KEY"`
	GeminiKey string `env:"GEMINI_API_KEY"`
}

// ParseEnvCredentials reads the provider credential environment variables.
// Unset variables leave the corresponding field empty.
func ParseEnvCredentials() (*EnvCredentials, error) {
	var creds EnvCredentials
	if err := env.Parse(&creds); err != nil {
		return nil, fmt.Errorf("error parsing credential env vars: %w", err)
	}
	return &creds, nil
}
