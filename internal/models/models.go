package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Provider identifies an external AI service. It is the partition key for
// the vault's credential lists.
type Provider string

const (
	ProviderOpenAI Provider = "OpenAI"
	ProviderGemini Provider = "Gemini"
)

// Valid reports whether p names a supported provider
func (p Provider) Valid() bool {
	return p == ProviderOpenAI || p == ProviderGemini
}

// SourceEnv marks entries materialized from the process environment.
// Env-sourced entries are computed at load time and never persisted.
const SourceEnv = "env"

// KeyEntry is one stored credential. Two on-disk shapes are accepted: a
// bare JSON string holding only the key value (the legacy layout) and a
// structured object. Bare entries carry an empty Name and marshal back to
// a bare string, so reading and rewriting a legacy list leaves untouched
// entries in their original shape.
type KeyEntry struct {
	Name   string
	Key    string
	Source string
}

// namedEntry is the structured on-disk shape
type namedEntry struct {
	Name   string `json:"name"`
	Key    string `json:"key"`
	Source string `json:"source,omitempty"`
}

// IsBare reports whether the entry is still in the legacy bare-string shape
func (e KeyEntry) IsBare() bool {
	return e.Name == ""
}

// FromEnv reports whether the entry was injected from the environment
func (e KeyEntry) FromEnv() bool {
	return e.Source == SourceEnv
}

// UnmarshalJSON accepts either a bare string or a structured object
func (e *KeyEntry) UnmarshalJSON(data []byte) error {
	var bare string
	if err := json.Unmarshal(data, &bare); err == nil {
		*e = KeyEntry{Key: bare}
		return nil
	}

	var named namedEntry
	if err := json.Unmarshal(data, &named); err != nil {
		return fmt.Errorf("key entry is neither a string nor an object: %w", err)
	}
	*e = KeyEntry(named)
	return nil
}

// MarshalJSON writes bare entries back as bare strings and structured
// entries as objects
func (e KeyEntry) MarshalJSON() ([]byte, error) {
	if e.IsBare() {
		return json.Marshal(e.Key)
	}
	return json.Marshal(namedEntry(e))
}

// Normalize converts a bare entry to the structured shape with a synthesized
// name built from the masked tail of the key value. Structured entries are
// returned unchanged, so applying Normalize twice equals applying it once.
func (e KeyEntry) Normalize() KeyEntry {
	if !e.IsBare() {
		return e
	}
	return KeyEntry{Name: fmt.Sprintf("Legacy (...%s)", tail(e.Key)), Key: e.Key}
}

// NormalizeAll normalizes every entry in a list
func NormalizeAll(entries []KeyEntry) []KeyEntry {
	normalized := make([]KeyEntry, len(entries))
	for i, e := range entries {
		normalized[i] = e.Normalize()
	}
	return normalized
}

// Label renders a human-safe display form. It never exposes more than the
// last 4 characters of the key value and never decrypts anything.
func (e KeyEntry) Label() string {
	if e.IsBare() {
		if len(e.Key) > 4 {
			return fmt.Sprintf("Legacy (...%s)", e.Key[len(e.Key)-4:])
		}
		// Too short to mask meaningfully
		return e.Key
	}
	masked := "***"
	if len(e.Key) > 4 {
		masked = e.Key[len(e.Key)-4:]
	}
	return fmt.Sprintf("%s (...%s)", e.Name, masked)
}

// NewEnvEntry builds the synthetic entry for a credential supplied by the
// environment variable envVar
func NewEnvEntry(envVar, key string) KeyEntry {
	return KeyEntry{
		Name:   fmt.Sprintf("ENV (%s)", envVar),
		Key:    key,
		Source: SourceEnv,
	}
}

// tail returns the last 4 characters of s, or all of s if shorter
func tail(s string) string {
	if len(s) <= 4 {
		return s
	}
	return s[len(s)-4:]
}

// Profile is one saved applicant profile: a named JSON blob the drafting
// features read their defaults from
type Profile struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
